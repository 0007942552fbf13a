package keymap

// suppressed lists the completion, history-search and incremental-search
// commands jot disables in every scope.
var suppressed = map[string]struct{}{
	"complete":                                     {},
	"possible-completions":                         {},
	"insert-completions":                           {},
	"menu-complete":                                {},
	"insert-comment":                               {},
	"reverse-search-history":                       {},
	"forward-search-history":                       {},
	"history-search-forward":                       {},
	"history-search-backward":                      {},
	"non-incremental-forward-search-history":       {},
	"non-incremental-reverse-search-history":       {},
	"non-incremental-forward-search-history-again": {},
	"non-incremental-reverse-search-history-again": {},
}

// IsSuppressed reports whether the named command is disabled in every scope.
func IsSuppressed(command string) bool {
	_, ok := suppressed[command]
	return ok
}

// Suppressed returns the names of all suppressed commands.
func Suppressed() []string {
	names := make([]string, 0, len(suppressed))
	for name := range suppressed {
		names = append(names, name)
	}
	return names
}
