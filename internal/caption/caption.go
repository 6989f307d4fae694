package caption

import "strings"

// Caption is one timed cue. Start and End use the fixed-width HH:MM:SS.mmm
// form so that string order matches time order.
type Caption struct {
	Start string
	End   string
	Text  string
}

// New creates a Caption from its timestamps and display text
func New(start, end, text string) Caption {
	return Caption{Start: start, End: end, Text: text}
}

// Lines returns the display lines, top to bottom
func (c Caption) Lines() []string {
	if c.Text == "" {
		return nil
	}
	return strings.Split(c.Text, "\n")
}

// RawText returns the text as authored, one display line per row
func (c Caption) RawText() string {
	return c.Text
}
