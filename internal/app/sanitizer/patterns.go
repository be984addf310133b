package sanitizer

import "regexp"

var (
	csiSequence     = regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`)
	oscSequence     = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)
	charsetSequence = regexp.MustCompile(`\x1b[()][AB012]`)
)

var escapeSequences = []*regexp.Regexp{
	csiSequence,
	oscSequence,
	charsetSequence,
}

// StripEscapes removes CSI, OSC and charset escape sequences.
func StripEscapes(input string) string {
	for _, pattern := range escapeSequences {
		input = pattern.ReplaceAllString(input, "")
	}
	return input
}
