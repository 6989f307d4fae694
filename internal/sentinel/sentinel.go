// Package sentinel formats and recognises the in-band markers that carry
// cue timing and speaker attribution through the flattened text stream.
package sentinel

import "regexp"

const (
	Open  = "⎡⎡"
	Close = "⎦⎦"

	speakerWord = "Speaker "
	arrow       = " --> "
)

var (
	// TimestampPattern matches a Timestamp Marker; groups 1 and 2 are start and end
	TimestampPattern = regexp.MustCompile(Open + `(\d{2}:\d{2}:\d{2}\.\d{3})` + arrow + `(\d{2}:\d{2}:\d{2}\.\d{3})` + Close)

	// SpeakerPattern matches a Speaker Marker; group 1 holds the optional name
	SpeakerPattern = regexp.MustCompile(Open + `Speaker (?:([^:⎦]+):?)?` + Close)
)

// Timestamp formats the marker that opens a logical unit
func Timestamp(start, end string) string {
	return Open + start + arrow + end + Close
}

// Speaker formats the marker preceding one speaker's contribution. An empty
// name yields the anonymous form.
func Speaker(name string) string {
	if name == "" {
		return Open + speakerWord + Close
	}
	return Open + speakerWord + name + ":" + Close
}
