// Package flatten turns caption cues into the annotated text stream handed
// to translators. Each cue becomes a fragment led by its timestamp marker;
// cues that end a sentence end a physical line, the rest run on.
package flatten

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
	"github.com/nguyentantai21042004/vttloc/internal/sentinel"
)

const (
	SeparatorNewline = "newline"
	SeparatorSpace   = "space"
)

var (
	reDashSpeaker = regexp.MustCompile(`^-\s*(?:([A-Z]+):)?`)
	reLeadingName = regexp.MustCompile(`^([A-Z]+):\s*`)
	reSpaceRun    = regexp.MustCompile(` +`)
)

// Options tunes the flattened output
type Options struct {
	// SpeakerSeparator is SeparatorNewline (default) or SeparatorSpace and
	// decides how the contributions of a multi-speaker cue are joined.
	SpeakerSeparator string
}

// Stats summarises one flatten pass
type Stats struct {
	Cues    int
	Lines   int
	AllCaps bool
}

// Flattener converts captions into the annotated stream
type Flattener struct {
	sep string
}

// New creates a Flattener
func New(opts Options) *Flattener {
	sep := "\n"
	if opts.SpeakerSeparator == SeparatorSpace {
		sep = " "
	}
	return &Flattener{sep: sep}
}

// state is the running fold over one file's captions
type state struct {
	allCaps   bool
	brokeLast bool
	cues      int
	lines     int
}

// Flatten writes the annotated stream for captions to w
func (f *Flattener) Flatten(w io.Writer, captions []caption.Caption) (Stats, error) {
	bw := bufio.NewWriter(w)
	// The start of the file counts as a paragraph boundary
	st := state{allCaps: true, brokeLast: true}

	for _, c := range captions {
		var fragment string
		fragment, st = f.step(st, c)
		if _, err := bw.WriteString(fragment); err != nil {
			return Stats{}, err
		}
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, err
	}

	return Stats{
		Cues:    st.cues,
		Lines:   st.lines,
		AllCaps: st.allCaps && st.cues > 0,
	}, nil
}

// String flattens captions into memory
func (f *Flattener) String(captions []caption.Caption) (string, Stats) {
	var sb strings.Builder
	// strings.Builder never fails to write
	stats, _ := f.Flatten(&sb, captions)
	return sb.String(), stats
}

// step renders one caption and advances the fold
func (f *Flattener) step(st state, c caption.Caption) (string, state) {
	raw := c.RawText()
	if hasLower(raw) {
		st.allCaps = false
	}

	body := f.tag(c)
	fragment := sentinel.Timestamp(c.Start, c.End) + " " + body + " "

	kind, _ := classify(cue{raw: raw, body: body, fragment: fragment})
	switch kind {
	case breakAround:
		if st.brokeLast {
			fragment += "\n"
		} else {
			fragment = "\n" + fragment + "\n"
		}
		st.brokeLast = true
	case breakAfter:
		fragment += "\n"
		st.brokeLast = true
	default:
		st.brokeLast = false
	}

	fragment = reSpaceRun.ReplaceAllString(fragment, " ")
	st.cues++
	st.lines += strings.Count(fragment, "\n")
	return fragment, st
}

// tag renders the caption text with speaker markers in place of the dash
// and NAME: conventions
func (f *Flattener) tag(c caption.Caption) string {
	raw := c.RawText()
	lines := c.Lines()

	if isMultiSpeaker(raw) {
		tagged := make([]string, 0, len(lines))
		for _, line := range lines {
			tagged = append(tagged, tagSpeakerLine(line))
		}
		return strings.Join(tagged, f.sep)
	}

	text := strings.Join(lines, " ")
	if m := reLeadingName.FindStringSubmatchIndex(text); m != nil {
		return sentinel.Speaker(text[m[2]:m[3]]) + " " + text[m[1]:]
	}
	return text
}

// isMultiSpeaker reports the dash convention. A double dash is a censoring
// mark, not a speaker change.
func isMultiSpeaker(raw string) bool {
	return strings.HasPrefix(raw, "-") && !strings.HasPrefix(raw, "--")
}

func tagSpeakerLine(line string) string {
	m := reDashSpeaker.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	name := ""
	if m[2] >= 0 {
		name = line[m[2]:m[3]]
	}
	return sentinel.Speaker(name) + " " + strings.TrimLeft(line[m[1]:], " ")
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
