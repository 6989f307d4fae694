package flatten

import (
	"regexp"
	"strings"
)

// breakKind says where paragraph breaks go around one caption's fragment
type breakKind int

const (
	noBreak breakKind = iota
	breakAfter
	breakAround
)

func (k breakKind) String() string {
	switch k {
	case breakAfter:
		return "after"
	case breakAround:
		return "around"
	default:
		return "none"
	}
}

// cue is the view of one caption the break rules look at
type cue struct {
	raw      string // caption text as authored
	body     string // tagged text, without the timestamp marker
	fragment string // marker + body + trailing space, before space collapsing
}

type breakRule struct {
	name  string
	kind  breakKind
	match func(c cue) bool
}

var (
	reSoundEffect       = regexp.MustCompile(`^\[[^\]]*\]$`)
	reTaggedSoundEffect = regexp.MustCompile(`^⎡⎡Speaker[^⎦]*⎦⎦ *\[[^\]]*\] *$`)
	reTerminal          = regexp.MustCompile(`[!?.]["']?$`)
)

// breakRules is evaluated top to bottom; the first match wins
var breakRules = []breakRule{
	{
		name: "sound effect",
		kind: breakAround,
		match: func(c cue) bool {
			return reSoundEffect.MatchString(c.raw) || reTaggedSoundEffect.MatchString(c.body)
		},
	},
	{
		name: "closing bracket",
		kind: breakAfter,
		match: func(c cue) bool {
			return strings.HasSuffix(c.fragment, "] ")
		},
	},
	{
		name: "terminal punctuation",
		kind: breakAfter,
		match: func(c cue) bool {
			return reTerminal.MatchString(strings.TrimRight(c.raw, " \t\n"))
		},
	},
}

// classify returns the break kind of the first matching rule, or noBreak
func classify(c cue) (breakKind, string) {
	for _, rule := range breakRules {
		if rule.match(c) {
			return rule.kind, rule.name
		}
	}
	return noBreak, ""
}
