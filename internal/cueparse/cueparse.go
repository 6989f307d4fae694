// Package cueparse rebuilds captions from logical units of the annotated
// stream: it reads the timestamp marker, restores speaker dashes and names,
// and wraps the text to caption line lengths.
package cueparse

import (
	"errors"
	"strings"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
	"github.com/nguyentantai21042004/vttloc/internal/sentinel"
)

// DefaultLineLength is the column budget of a display line
const DefaultLineLength = 36

// Parser turns logical units into captions
type Parser struct {
	width int
}

// New creates a Parser wrapping at width columns; zero or less means
// DefaultLineLength
func New(width int) *Parser {
	if width <= 0 {
		width = DefaultLineLength
	}
	return &Parser{width: width}
}

// Parse rebuilds one caption using DefaultLineLength
func Parse(unit string) (caption.Caption, error) {
	return New(DefaultLineLength).Parse(unit)
}

// ParseAll rebuilds every unit, stopping at the first malformed one
func (p *Parser) ParseAll(units []string) ([]caption.Caption, error) {
	captions := make([]caption.Caption, 0, len(units))
	for i, unit := range units {
		c, err := p.Parse(unit)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Index = i
			}
			return nil, err
		}
		captions = append(captions, c)
	}
	return captions, nil
}

// Parse rebuilds one caption from a logical unit
func (p *Parser) Parse(unit string) (caption.Caption, error) {
	loc := sentinel.TimestampPattern.FindStringSubmatchIndex(unit)
	if loc == nil || loc[0] != 0 {
		return caption.Caption{}, &ParseError{Index: -1, Unit: unit, Err: ErrMissingTimestamp}
	}
	start, end := unit[loc[2]:loc[3]], unit[loc[4]:loc[5]]
	body := strings.TrimSpace(unit[loc[1]:])

	var wrapped []string
	for _, line := range speakerLines(body) {
		wrapped = append(wrapped, fit(line, p.width)...)
	}
	return caption.New(start, end, strings.Join(wrapped, "\n")), nil
}

// speakerLines splits the body into one display line per speaker marker.
// Text ahead of the first marker of a multi-speaker body is dropped.
func speakerLines(body string) []string {
	matches := sentinel.SpeakerPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return []string{body}
	}

	lines := make([]string, 0, len(matches))
	for i, m := range matches {
		segEnd := len(body)
		if i+1 < len(matches) {
			segEnd = matches[i+1][0]
		}
		content := strings.TrimSpace(body[m[1]:segEnd])
		name := ""
		if m[2] >= 0 {
			name = strings.TrimSpace(body[m[2]:m[3]])
		}

		var line string
		switch {
		case len(matches) == 1 && name != "":
			line = name + ": " + content
		case name != "":
			line = "- " + name + ": " + content
		default:
			line = "- " + content
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}
