package publisher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

// DefaultSlotName is the JavaScript constant the array is embedded into.
const DefaultSlotName = "vocabData"

// jsEscaper makes a value safe inside a double-quoted JavaScript string
// embedded in a script block. "]" is escaped so the text never contains the
// slot terminator, "<" so it never closes the script element.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"]", `\u005d`,
	"<", `\u003c`,
)

// EmbedArray renders entries as the interior of a JavaScript array
// literal: one object per line, joined by ",\n".
func EmbedArray(entries []domain.VocabularyEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf(`{"number": "%s", "word": "%s", "meaning": "%s"}`,
			jsEscaper.Replace(e.Number.String()),
			jsEscaper.Replace(e.Word),
			jsEscaper.Replace(e.Meaning),
		)
	}
	return strings.Join(lines, ",\n")
}

// slotPattern matches `const <name> = [` ... `];` across line breaks.
func slotPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(const ` + regexp.QuoteMeta(name) + ` = \[)(.*?)(\s*\];)`)
}

// ReplaceSlot swaps the interior of every slot in content for array and
// reports how many slots were found. The closing bracket is re-indented so
// that replacing twice gives the same document.
func ReplaceSlot(re *regexp.Regexp, content, array string) (string, int) {
	matches := re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content) + len(array)*len(matches))

	last := 0
	for _, m := range matches {
		// m[2:4] is the opening, m[6:8] the closing.
		b.WriteString(content[last:m[0]])
		b.WriteString(content[m[2]:m[3]])
		b.WriteString("\n")
		b.WriteString(array)
		b.WriteString("\n        ")
		b.WriteString(strings.TrimLeft(content[m[6]:m[7]], " \t\r\n\f\v"))
		last = m[1]
	}
	b.WriteString(content[last:])

	return b.String(), len(matches)
}
