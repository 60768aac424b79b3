// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/cardfight/types"
)

var verbAliases = map[string]string{
	// Play a card
	"p":    "play",
	"use":  "play",
	"cast": "play",

	// End the turn
	"e":    "end",
	"pass": "end",
	"done": "end",
	"wait": "end",
	"z":    "end",

	// Observation
	"h":      "hand",
	"cards":  "hand",
	"s":      "status",
	"stat":   "status",
	"stats":  "status",
	"l":      "look",
	"pile":   "piles",
	"deck":   "piles",
	"intent": "status",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true, "against": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "card": true,
}

// Parse converts a raw command string into an Intent.
//
//	"play 2 slime"      -> {play, "2", "slime"}
//	"play 2 on the rat" -> {play, "2", "rat"}
//	"p 1"               -> {play, "1", ""}
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// A bare number plays that card: "3" -> play 3.
	if isNumber(words[0]) {
		words = append([]string{"play"}, words...)
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	object, target := splitOnPreposition(rest)

	// "play 2 slime": the first word is the card, the rest names the target.
	if verb == "play" && target == "" && len(rest) > 1 {
		object = rest[0]
		target = strings.Join(rest[1:], " ")
	}

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripArticles removes filler words from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
