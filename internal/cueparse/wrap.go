package cueparse

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most width runes without splitting
// words. Whitespace runs collapse to one space; a word longer than width
// gets a line of its own. Blank paragraphs come back as empty lines.
func Wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		var (
			line    strings.Builder
			lineLen int
		)
		for _, word := range words {
			wordLen := utf8.RuneCountInString(word)
			if lineLen > 0 && lineLen+1+wordLen > width {
				out = append(out, line.String())
				line.Reset()
				lineLen = 0
			}
			if lineLen > 0 {
				line.WriteByte(' ')
				lineLen++
			}
			line.WriteString(word)
			lineLen += wordLen
		}
		out = append(out, line.String())
	}
	return out
}

// fit wraps line only when it is over budget
func fit(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	return Wrap(line, width)
}
