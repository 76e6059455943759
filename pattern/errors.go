package pattern

import "fmt"

// Kind classifies a ParseError
type Kind int

const (
	// InvalidGlyph is a character that has no meaning on a data row
	InvalidGlyph Kind = iota + 1
	// MalformedHeader is a dimension header that could not be read. It is only ever logged.
	MalformedHeader
	// UnsupportedRule is an RLE header naming a rule other than B3/S23
	UnsupportedRule
)

func (k Kind) String() string {
	switch k {
	case InvalidGlyph:
		return "invalid glyph"
	case MalformedHeader:
		return "malformed header"
	case UnsupportedRule:
		return "unsupported rule"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseError reports where a pattern file stopped making sense.
// Line and Col are 1-based; Col is zero when the whole line is at fault.
type ParseError struct {
	Kind  Kind
	Line  int
	Col   int
	Glyph rune
	Msg   string
}

func (e *ParseError) Error() string {
	switch {
	case e.Kind == InvalidGlyph && e.Msg != "":
		return fmt.Sprintf("line %d, col %d: %s %q: %s", e.Line, e.Col, e.Kind, e.Glyph, e.Msg)
	case e.Kind == InvalidGlyph:
		return fmt.Sprintf("line %d, col %d: %s %q", e.Line, e.Col, e.Kind, e.Glyph)
	case e.Msg != "":
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}
