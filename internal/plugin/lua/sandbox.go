package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// dangerousFuncs load code from outside the script.
var dangerousFuncs = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
}

// installSandbox removes functions that could load code from disk.
func installSandbox(L *lua.LState) {
	for _, name := range dangerousFuncs {
		L.SetGlobal(name, lua.LNil)
	}
}
