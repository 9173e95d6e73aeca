package chapters

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

// Order is the direction of a chapter listing. The site serves newest first.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = platform.OrderOldest
)

// ParseOrder maps host and CLI order names onto an Order. Anything that is
// not "oldest" keeps the site order.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(Oldest)) {
		return Oldest
	}
	return Newest
}

// Apply returns items in the requested order. The input slice is never
// modified and the records themselves are shared, not copied.
func (o Order) Apply(items []platform.Content) []platform.Content {
	out := make([]platform.Content, len(items))
	copy(out, items)
	if o != Oldest {
		return out
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

var reUnderscore = regexp.MustCompile(`_+`)

// FileName turns a display name into a lowercase, filesystem-safe base name.
func FileName(s string) string {
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = reUnderscore.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}
