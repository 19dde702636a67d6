// Package reviewlist reads and writes the plain-text list of words that
// still need a hand-written meaning.
package reviewlist

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/vocabmeanings/internal/fsutil"
)

// Write replaces the file at path with one word per line. An empty list
// writes an empty file.
func Write(path string, words []string) error {
	var buf bytes.Buffer
	for i, w := range words {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(w)
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("reviewlist: write %s: %w", path, err)
	}
	return nil
}

// Read parses a list written by Write. Blank lines and lines starting
// with '#' are skipped; surrounding whitespace is trimmed.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reviewlist: open %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reviewlist: read %s: %w", path, err)
	}
	return words, nil
}
