package buffer

// DefaultKillRingSize is the number of kills retained by New.
const DefaultKillRingSize = 16

// KillRing retains recently killed text, newest last.
type KillRing struct {
	entries []string
	max     int
}

// NewKillRing creates a ring holding at most max entries.
func NewKillRing(max int) *KillRing {
	if max < 1 {
		max = 1
	}
	return &KillRing{max: max}
}

// Push records killed text. Empty kills are ignored.
func (k *KillRing) Push(text string) {
	if text == "" {
		return
	}
	if len(k.entries) == k.max {
		k.entries = k.entries[1:]
	}
	k.entries = append(k.entries, text)
}

// Latest returns the most recent kill.
func (k *KillRing) Latest() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	return k.entries[len(k.entries)-1], true
}

// Len returns the number of retained kills.
func (k *KillRing) Len() int {
	return len(k.entries)
}
