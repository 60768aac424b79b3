package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Card "name" { ... }, curried: Card("name") returns a function that takes a table.
	L.SetGlobal("Card", curried(L, func(name string, tbl *lua.LTable) {
		coll.cards = append(coll.cards, rawDef{name: name, table: tbl})
	}))

	// Enemy "name" { max_health = ..., start = ..., actions = { ... } }
	L.SetGlobal("Enemy", curried(L, func(name string, tbl *lua.LTable) {
		coll.enemies = append(coll.enemies, rawDef{name: name, table: tbl})
	}))

	// Player "name" { max_health = ..., draw = ..., hand_size = ..., deck = { ... } }
	L.SetGlobal("Player", curried(L, func(name string, tbl *lua.LTable) {
		coll.players = append(coll.players, rawDef{name: name, table: tbl})
	}))

	// Encounter "name" { player = "...", enemies = { ... } }
	L.SetGlobal("Encounter", curried(L, func(name string, tbl *lua.LTable) {
		coll.encounters = append(coll.encounters, rawDef{name: name, table: tbl})
	}))

	// Repeat(n, "Strike") expands to n copies, for deck lists.
	L.SetGlobal("Repeat", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		name := L.CheckString(2)
		tbl := L.NewTable()
		for i := 0; i < n; i++ {
			tbl.Append(lua.LString(name))
		}
		L.Push(tbl)
		return 1
	}))
}

// curried builds a `Kind "name" { ... }` constructor.
func curried(L *lua.LState, store func(name string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			store(name, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func registerEffectHelpers(L *lua.LState) {
	amountHelper := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			amount := L.CheckNumber(1)
			tbl := L.NewTable()
			tbl.RawSetString("type", lua.LString(kind))
			tbl.RawSetString("amount", amount)
			L.Push(tbl)
			return 1
		})
	}

	// Card effects.
	L.SetGlobal("Damage", amountHelper(effectDamage))
	L.SetGlobal("DamageAll", amountHelper(effectDamageAll))
	L.SetGlobal("Block", amountHelper(effectBlock))

	// Heal works for both: a card heals the player, an enemy heals itself.
	L.SetGlobal("Heal", amountHelper(effectHeal))

	// Enemy effects.
	L.SetGlobal("Attack", amountHelper(effectAttack))
	L.SetGlobal("Guard", amountHelper(effectGuard))
}
