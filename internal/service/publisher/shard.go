package publisher

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

// Group is the slice of the vocabulary sharing one first letter.
type Group struct {
	Label   string
	File    string
	Entries []domain.VocabularyEntry
}

// GroupSummary is the index line for one group.
type GroupSummary struct {
	Label string
	Count int
	File  string
}

// Shard groups entries by the upper-cased first character of their word.
// Groups are sorted by label; entries keep their relative order.
func Shard(entries []domain.VocabularyEntry) []Group {
	byLabel := make(map[string]*Group)
	var labels []string

	for _, e := range entries {
		label := shardLabel(e.Word)
		g, ok := byLabel[label]
		if !ok {
			g = &Group{Label: label, File: shardFile(label)}
			byLabel[label] = g
			labels = append(labels, label)
		}
		g.Entries = append(g.Entries, e)
	}

	slices.Sort(labels)

	groups := make([]Group, 0, len(labels))
	for _, l := range labels {
		groups = append(groups, *byLabel[l])
	}
	return groups
}

// Summary returns one index line per group, in group order.
func Summary(groups []Group) []GroupSummary {
	out := make([]GroupSummary, len(groups))
	for i, g := range groups {
		out[i] = GroupSummary{Label: g.Label, Count: len(g.Entries), File: g.File}
	}
	return out
}

func shardLabel(word string) string {
	word = strings.TrimSpace(word)
	_, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return ""
	}
	return cases.Upper(language.Und).String(word[:size])
}

// shardFile returns the file stem for a label. Labels made only of letters
// and digits are used as-is; anything else is named after its first code
// point.
func shardFile(label string) string {
	if label != "" && strings.IndexFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) < 0 {
		return label
	}
	r, _ := utf8.DecodeRuneInString(label)
	return fmt.Sprintf("U+%04X", r)
}
