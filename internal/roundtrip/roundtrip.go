// Package roundtrip verifies that flattening a track and rebuilding it gives
// back the same cues, up to whitespace and dash style.
package roundtrip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
	"github.com/nguyentantai21042004/vttloc/internal/cueparse"
	"github.com/nguyentantai21042004/vttloc/internal/flatten"
	"github.com/nguyentantai21042004/vttloc/internal/reassemble"
)

// Mismatch is one difference between an original and a rebuilt cue
type Mismatch struct {
	Index int // zero-based cue index, -1 for a cue count difference
	Field string
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	if m.Index < 0 {
		return fmt.Sprintf("%s: want %s, got %s", m.Field, m.Want, m.Got)
	}
	return fmt.Sprintf("cue %d %s: want %q, got %q", m.Index+1, m.Field, m.Want, m.Got)
}

// Report is the outcome of a round-trip check
type Report struct {
	Cues       int
	Mismatches []Mismatch
}

// OK reports a clean round trip
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Normalize folds text to the form compared by the round-trip check: lines
// are joined, whitespace collapses, and a speaker dash is always "- ".
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--") {
			line = "- " + strings.TrimSpace(line[1:])
		}
		lines[i] = line
	}
	return strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
}

// Compare lists the differences between original and rebuilt cues
func Compare(original, rebuilt []caption.Caption) Report {
	report := Report{Cues: len(original)}
	if len(original) != len(rebuilt) {
		report.Mismatches = append(report.Mismatches, Mismatch{
			Index: -1,
			Field: "cue count",
			Want:  strconv.Itoa(len(original)),
			Got:   strconv.Itoa(len(rebuilt)),
		})
	}

	n := min(len(original), len(rebuilt))
	for i := 0; i < n; i++ {
		o, r := original[i], rebuilt[i]
		if o.Start != r.Start {
			report.Mismatches = append(report.Mismatches, Mismatch{Index: i, Field: "start", Want: o.Start, Got: r.Start})
		}
		if o.End != r.End {
			report.Mismatches = append(report.Mismatches, Mismatch{Index: i, Field: "end", Want: o.End, Got: r.End})
		}
		if want, got := Normalize(o.Text), Normalize(r.Text); want != got {
			report.Mismatches = append(report.Mismatches, Mismatch{Index: i, Field: "text", Want: want, Got: got})
		}
	}
	return report
}

// Check flattens captions, rebuilds them and compares the result
func Check(captions []caption.Caption, f *flatten.Flattener, p *cueparse.Parser) (Report, error) {
	text, _ := f.String(captions)
	units, err := reassemble.Read(strings.NewReader(text))
	if err != nil {
		return Report{}, fmt.Errorf("reassemble: %w", err)
	}
	rebuilt, err := p.ParseAll(units)
	if err != nil {
		return Report{}, fmt.Errorf("parse: %w", err)
	}
	return Compare(captions, rebuilt), nil
}
