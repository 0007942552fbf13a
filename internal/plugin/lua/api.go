package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// installAPI creates the global jot table.
func (s *Script) installAPI() {
	L := s.state.L
	tbl := L.NewTable()
	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"command":    s.luaCommand,
		"text":       s.luaText,
		"point":      s.luaPoint,
		"set_point":  s.luaSetPoint,
		"insert":     s.luaInsert,
		"delete":     s.luaDelete,
		"line_start": s.luaLineStart,
		"line_end":   s.luaLineEnd,
		"bell":       s.luaBell,
	})
	L.SetGlobal("jot", tbl)
}

// jot.command(name, fn)
func (s *Script) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := s.register(name, fn); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// requireEngine raises a Lua error outside a command run.
func (s *Script) requireEngine(L *lua.LState) bool {
	if s.engine == nil {
		L.RaiseError("%s", ErrNoBuffer.Error())
		return false
	}
	return true
}

// jot.text() -> string
func (s *Script) luaText(L *lua.LState) int {
	if !s.requireEngine(L) {
		return 0
	}
	L.Push(lua.LString(s.engine.Text()))
	return 1
}

// jot.point() -> offset
func (s *Script) luaPoint(L *lua.LState) int {
	if !s.requireEngine(L) {
		return 0
	}
	L.Push(lua.LNumber(s.engine.Point()))
	return 1
}

// jot.set_point(offset)
func (s *Script) luaSetPoint(L *lua.LState) int {
	offset := L.CheckInt(1)
	if !s.requireEngine(L) {
		return 0
	}
	s.engine.SetPoint(offset)
	return 0
}

// jot.insert(text)
func (s *Script) luaInsert(L *lua.LState) int {
	text := L.CheckString(1)
	if !s.requireEngine(L) {
		return 0
	}
	s.engine.Insert(text)
	return 0
}

// jot.delete(from, to) -> deleted text
func (s *Script) luaDelete(L *lua.LState) int {
	from := L.CheckInt(1)
	to := L.CheckInt(2)
	if !s.requireEngine(L) {
		return 0
	}
	deleted, err := s.engine.Delete(from, to)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(deleted))
	return 1
}

// jot.line_start([offset]) -> offset
func (s *Script) luaLineStart(L *lua.LState) int {
	if !s.requireEngine(L) {
		return 0
	}
	offset := L.OptInt(1, s.engine.Point())
	L.Push(lua.LNumber(s.engine.LineStart(offset)))
	return 1
}

// jot.line_end([offset]) -> offset
func (s *Script) luaLineEnd(L *lua.LState) int {
	if !s.requireEngine(L) {
		return 0
	}
	offset := L.OptInt(1, s.engine.Point())
	L.Push(lua.LNumber(s.engine.LineEnd(offset)))
	return 1
}

// jot.bell()
func (s *Script) luaBell(L *lua.LState) int {
	s.bell = true
	return 0
}
