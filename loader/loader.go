package loader

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/cardfight/library"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game       *lua.LTable
	cards      []rawDef
	enemies    []rawDef
	players    []rawDef
	encounters []rawDef
}

// Load reads all .lua files from dir and returns the built-in library with
// the loaded content merged over it.
func Load(dir string) (*library.Library, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load over an fs.FS root. Every .lua file at the root is run in
// one sandboxed VM, compiled, validated and merged over library.Default().
// The Lua VM is discarded after loading.
func LoadFS(fsys fs.FS) (*library.Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading content directory: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(strings.NewReader(string(src)), f)
		if err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	c, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	base := library.Default()
	if err := validate(c, base); err != nil {
		return nil, err
	}

	loaded, err := build(c)
	if err != nil {
		return nil, fmt.Errorf("building library: %w", err)
	}
	base.Merge(loaded)
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("building library: %w", err)
	}
	return base, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not reseed; shuffles belong to the fight's RNG.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
