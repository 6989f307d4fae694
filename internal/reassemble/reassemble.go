// Package reassemble cuts an edited annotated stream back into logical units,
// one per caption, using the timestamp markers as the only boundaries.
package reassemble

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/nguyentantai21042004/vttloc/internal/sentinel"
)

const maxLineSize = 1024 * 1024

// Read scans an annotated stream and returns its logical units
func Read(r io.Reader) ([]string, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Units(lines), nil
}

// ReadLines returns the physical lines of an annotated stream, NFC
// normalised and without line terminators
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, norm.NFC.String(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan annotated text: %w", err)
	}
	return lines, nil
}

// Units merges continuation lines into the preceding unit and splits lines
// holding several timestamp markers. Blank lines are dropped.
func Units(lines []string) []string {
	var units []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		matches := sentinel.TimestampPattern.FindAllStringIndex(line, -1)
		switch {
		case len(matches) == 0:
			units = appendToLast(units, line)
		case len(matches) == 1 && matches[0][0] == 0:
			units = append(units, line)
		default:
			if prefix := line[:matches[0][0]]; strings.TrimSpace(prefix) != "" {
				units = appendToLast(units, strings.TrimSpace(prefix))
			}
			for i, m := range matches {
				end := len(line)
				if i+1 < len(matches) {
					end = matches[i+1][0]
				}
				if segment := strings.TrimSpace(line[m[0]:end]); segment != "" {
					units = append(units, segment)
				}
			}
		}
	}
	return units
}

func appendToLast(units []string, text string) []string {
	if len(units) == 0 {
		return append(units, text)
	}
	units[len(units)-1] += " " + text
	return units
}
