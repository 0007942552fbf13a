// Package lua lets a user script define extra jot commands.
//
// The script is loaded once at startup in a sandboxed gopher-lua state:
// only the base, table, string and math libraries are open, and the
// file-loading functions are removed. It registers commands through the
// global jot table:
//
//	jot.command("upcase-line", function(count)
//	    local s, e = jot.line_start(), jot.line_end()
//	    local line = string.sub(jot.text(), s + 1, e)
//	    jot.delete(s, e)
//	    jot.set_point(s)
//	    jot.insert(string.upper(line))
//	end)
//
// Offsets are 0-based rune offsets, as in the buffer. The API:
//
//	jot.command(name, fn)   register fn(count) as a command
//	jot.text()              the whole buffer
//	jot.point()             the cursor offset
//	jot.set_point(n)        move the cursor, clamped to the buffer
//	jot.insert(s)           insert s at the cursor
//	jot.delete(from, to)    delete [from, to)
//	jot.line_start([n])     start of the line containing n (default: cursor)
//	jot.line_end([n])       end of the line containing n (default: cursor)
//	jot.bell()              ring the bell when the command finishes
//
// The buffer functions are only usable while a command runs. A Lua error
// inside a command becomes an error result; it never stops the editor.
//
// # Usage
//
//	script, err := lua.Load(path, lua.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer script.Close()
//	if err := dispatcher.RegisterGroup(script); err != nil {
//	    return err
//	}
package lua
