package devtools

import "github.com/sahilm/fuzzy"

// NamedHandle pairs a component handle with its display name, the unit
// fuzzy search ranks over.
type NamedHandle struct {
	Handle Handle
	Name   string
}

// nameSource adapts a []NamedHandle to fuzzy.Source.
type nameSource []NamedHandle

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// FindByName ranks candidates against query using fuzzy subsequence
// matching and returns the matched handles best-match first. This
// supplements depth-first Navigator stepping with a jump-to-name search
// convenience over large trees.
func FindByName(query string, candidates []NamedHandle) []Handle {
	matches := fuzzy.FindFrom(query, nameSource(candidates))
	out := make([]Handle, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index].Handle)
	}
	return out
}
