// Package sanitizer cleans note text received from the service so it can be
// drawn in a terminal without moving the cursor or changing colors.
package sanitizer

import "strings"

// Policy decides what happens to line breaks and tabs. Other control
// characters are always dropped.
type Policy struct {
	KeepNewlines       bool
	NewlineReplacement string
	TabReplacement     string
}

var (
	// LinePolicy flattens text onto one line, for titles and table cells.
	LinePolicy = Policy{NewlineReplacement: " ", TabReplacement: " "}
	// BlockPolicy keeps line structure, for note bodies.
	BlockPolicy = Policy{KeepNewlines: true, TabReplacement: "    "}
)

func (p Policy) Clean(input string) string {
	if input == "" {
		return input
	}
	input = StripEscapes(input)
	input = strings.ReplaceAll(input, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n':
			if p.KeepNewlines {
				b.WriteRune(r)
			} else {
				b.WriteString(p.NewlineReplacement)
			}
		case r == '\t':
			b.WriteString(p.TabReplacement)
		case r < 32 || r == 127:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func Line(input string) string {
	return LinePolicy.Clean(input)
}

func Block(input string) string {
	return BlockPolicy.Clean(input)
}
