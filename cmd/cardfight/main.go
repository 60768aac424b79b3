// Cardfight is a turn-based deck-building card battle played in the terminal.
// Usage: cardfight [--version] [--plain] [--list] [--config <file>] [--seed <n>]
//
//	[--encounter <name>] [--player <name>] [--enemy <name>]...
//	[--script <file>] [--trace] [content_directory]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nathoo/cardfight/cli"
	"github.com/nathoo/cardfight/config"
	"github.com/nathoo/cardfight/content"
	"github.com/nathoo/cardfight/engine"
	"github.com/nathoo/cardfight/engine/rng"
	"github.com/nathoo/cardfight/library"
	"github.com/nathoo/cardfight/loader"
	"github.com/nathoo/cardfight/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: cardfight [--version] [--plain] [--list] [--config <file>] [--seed <n>] " +
	"[--encounter <name>] [--player <name>] [--enemy <name>]... [--script <file>] [--trace] [content_directory]"

func main() {
	var (
		configFile string
		scriptFile string
		list       bool
		flags      []func(*config.Config)
	)

	args := os.Args[1:]
	value := func(i *int) string {
		if *i+1 >= len(args) {
			fatalf("%s requires a value\n%s\n", args[*i], usage)
		}
		*i++
		return args[*i]
	}

	enemiesSet := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("cardfight %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--help", "-h":
			fmt.Println(usage)
			return
		case "--plain":
			flags = append(flags, func(c *config.Config) { c.Plain = true })
		case "--trace":
			flags = append(flags, func(c *config.Config) { c.Trace = true })
		case "--list":
			list = true
		case "--config":
			configFile = value(&i)
		case "--script":
			scriptFile = value(&i)
		case "--seed":
			raw := value(&i)
			seed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fatalf("--seed %q is not an integer\n", raw)
			}
			flags = append(flags, func(c *config.Config) { c.Seed = seed })
		case "--encounter":
			name := value(&i)
			flags = append(flags, func(c *config.Config) { c.Encounter = name })
		case "--player":
			name := value(&i)
			flags = append(flags, func(c *config.Config) { c.Player = name })
		case "--enemy":
			name := value(&i)
			first := !enemiesSet
			enemiesSet = true
			flags = append(flags, func(c *config.Config) {
				if first {
					c.Enemies = nil
				}
				c.Enemies = append(c.Enemies, name)
			})
		default:
			if strings.HasPrefix(args[i], "--") {
				fatalf("unknown flag %s\n%s\n", args[i], usage)
			}
			dir := args[i]
			flags = append(flags, func(c *config.Config) { c.Content = dir })
		}
	}

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			fatalf("Error loading config: %v\n", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		fatalf("Error reading environment: %v\n", err)
	}
	for _, apply := range flags {
		apply(cfg)
	}

	lib, err := loadLibrary(cfg.Content)
	if err != nil {
		fatalf("Error loading content: %v\n", err)
	}

	if list {
		printLibrary(lib)
		return
	}

	if cfg.Encounter != "" {
		enc, err := lib.Encounter(cfg.Encounter)
		if err != nil {
			fatalf("Error: %v\n", err)
		}
		cfg.Player = enc.Player
		cfg.Enemies = enc.Enemies
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Error: %v\n", err)
	}

	player, err := lib.Player(cfg.Player)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	enemies, err := lib.Enemies(cfg.Enemies...)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fight, err := engine.New(player, enemies, rng.New(seed))
	if err != nil {
		fatalf("Error starting fight: %v\n", err)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fatalf("Error opening script: %v\n", err)
		}
		defer f.Close()
		c := cli.New(fight, lib.Game)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	// Use plain CLI if --plain or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		c := cli.New(fight, lib.Game)
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	if err := tui.Run(fight, lib.Game, cfg.Trace); err != nil {
		fatalf("Error: %v\n", err)
	}
}

// loadLibrary compiles Lua content from dir, or the embedded sample content
// when dir is empty.
func loadLibrary(dir string) (*library.Library, error) {
	if dir == "" {
		return loader.LoadFS(content.FS)
	}
	return loader.Load(dir)
}

func printLibrary(lib *library.Library) {
	if lib.Game.Title != "" {
		fmt.Println(lib.Game.Title)
	}
	fmt.Printf("Players:    %s\n", strings.Join(lib.PlayerNames(), ", "))
	fmt.Printf("Enemies:    %s\n", strings.Join(lib.EnemyNames(), ", "))
	fmt.Printf("Cards:      %s\n", strings.Join(lib.CardNames(), ", "))
	fmt.Printf("Encounters: %s\n", strings.Join(lib.EncounterNames(), ", "))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
