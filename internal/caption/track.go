package caption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/asticode/go-astisub"
	"golang.org/x/text/unicode/norm"
)

// Format identifies a caption container syntax
type Format int

const (
	FormatWebVTT Format = iota
	FormatSRT
)

func (f Format) String() string {
	if f == FormatSRT {
		return "srt"
	}
	return "webvtt"
}

// ErrNoCaptions is returned when asked to write an empty track
var ErrNoCaptions = errors.New("no captions to write")

// ErrTimestampRange reports a cue past 99:59:59.999, which the two-digit
// hour field of the stream markers cannot carry
var ErrTimestampRange = errors.New("timestamp beyond 99:59:59.999")

// FormatFor picks the container syntax from a file extension. Anything that
// is not .srt is treated as WebVTT.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return FormatSRT
	}
	return FormatWebVTT
}

// Read decodes a caption track
func Read(r io.Reader, format Format) ([]Caption, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch format {
	case FormatSRT:
		subs, err = astisub.ReadFromSRT(r)
	default:
		subs, err = astisub.ReadFromWebVTT(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", format, err)
	}

	captions := make([]Caption, 0, len(subs.Items))
	for i, item := range subs.Items {
		if item.StartAt > MaxTimestamp || item.EndAt > MaxTimestamp {
			return nil, fmt.Errorf("caption %d: %w", i+1, ErrTimestampRange)
		}
		captions = append(captions, fromItem(item))
	}
	return captions, nil
}

// ReadFile opens and decodes the caption file at path
func ReadFile(path string) ([]Caption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open caption file: %w", err)
	}
	defer f.Close()
	return Read(f, FormatFor(path))
}

// Write encodes captions in the given container syntax
func Write(w io.Writer, captions []Caption, format Format) error {
	if len(captions) == 0 {
		return ErrNoCaptions
	}

	subs := astisub.NewSubtitles()
	for i, c := range captions {
		item, err := toItem(c)
		if err != nil {
			return fmt.Errorf("caption %d: %w", i+1, err)
		}
		subs.Items = append(subs.Items, item)
	}

	var err error
	switch format {
	case FormatSRT:
		err = subs.WriteToSRT(w)
	default:
		err = subs.WriteToWebVTT(w)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// WriteFile encodes captions to path, creating the parent directory
func WriteFile(path string, captions []Caption) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create caption file: %w", err)
	}
	if err := Write(f, captions, FormatFor(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fromItem flattens an astisub item into display lines. Voice spans are
// folded into the NAME: convention used by broadcast captions.
func fromItem(item *astisub.Item) Caption {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		text := norm.NFC.String(joinItems(line.Items))
		if line.VoiceName != "" {
			text = line.VoiceName + ": " + text
		}
		lines = append(lines, text)
	}
	return New(FormatTimestamp(item.StartAt), FormatTimestamp(item.EndAt), strings.Join(lines, "\n"))
}

// joinItems rebuilds a line that astisub split at inline tags. The tokens
// come back trimmed, so a space is restored except next to punctuation that
// hugs its neighbour.
func joinItems(items []astisub.LineItem) string {
	var sb strings.Builder
	prev := ""
	for _, li := range items {
		if prev != "" && !noSpaceAfter(prev) && !noSpaceBefore(li.Text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(li.Text)
		prev = li.Text
	}
	return sb.String()
}

func noSpaceBefore(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune(",.;:!?)]}…%”’»", r)
}

func noSpaceAfter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune("([{¿¡“‘«", r)
}

func toItem(c Caption) (*astisub.Item, error) {
	start, err := ParseTimestamp(c.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimestamp(c.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	item := &astisub.Item{StartAt: start, EndAt: end}
	for _, line := range c.Lines() {
		// A blank line would terminate the cue in both container formats
		if strings.TrimSpace(line) == "" {
			continue
		}
		item.Lines = append(item.Lines, astisub.Line{
			Items: []astisub.LineItem{{Text: line}},
		})
	}
	return item, nil
}
