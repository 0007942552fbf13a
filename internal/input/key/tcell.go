package key

import "github.com/gdamore/tcell/v2"

// tcellSpecial maps tcell named keys onto jot keys.
var tcellSpecial = map[tcell.Key]Key{
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyLF:        KeyEnter,
	tcell.KeyTab:       KeyTab,
	tcell.KeyBackspace: KeyBackspace,
	tcell.KeyDEL:       KeyBackspace,
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyDelete:    KeyDelete,
	tcell.KeyInsert:    KeyInsert,
	tcell.KeyHome:      KeyHome,
	tcell.KeyEnd:       KeyEnd,
	tcell.KeyPgUp:      KeyPageUp,
	tcell.KeyPgDn:      KeyPageDown,
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
}

// FromTcell converts a tcell key event into an Event.
//
// tcell reports control letters either as KeyCtrlA..KeyCtrlZ or as the raw
// ASCII code; both become a Ctrl-modified rune. Keys jot has no use for
// (function keys and the like) convert to KeyNone.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMods(ev.Modifiers())
	k := ev.Key()

	// Ctrl-J arrives as LF with the Ctrl flag; keep it a control letter.
	if k == tcell.KeyLF && mods.HasCtrl() {
		return NewRuneEvent('j', mods)
	}

	if special, ok := tcellSpecial[k]; ok {
		// Named keys carry their own meaning; drop the implied Ctrl.
		if k == tcell.KeyBackspace || k == tcell.KeyTab || k == tcell.KeyEnter || k == tcell.KeyEscape {
			mods = mods.Without(ModCtrl)
		}
		return NewSpecialEvent(special, mods)
	}

	switch {
	case k == tcell.KeyBacktab:
		return NewSpecialEvent(KeyTab, mods.With(ModShift))

	case k == tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods)

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl))

	case k == tcell.KeyCtrlSpace || k == tcell.KeyNUL:
		return NewRuneEvent(' ', mods.With(ModCtrl))

	case k >= tcell.KeySOH && k <= tcell.KeySUB:
		return NewRuneEvent('a'+rune(k-tcell.KeySOH), mods.With(ModCtrl))
	}

	return Event{}
}

func fromTcellMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(ModAlt)
	}
	return mods
}
