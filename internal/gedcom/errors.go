package gedcom

import "fmt"

// SyntaxErrorCode identifies the tokenizer-level failure classes. These are
// the only errors that latch the session and halt forward progress; every
// structural or reference anomaly found later is logged and tolerated.
type SyntaxErrorCode int

const (
	// ErrNone is the clear state.
	ErrNone SyntaxErrorCode = iota
	// ErrLevelMissing: the line does not begin with a level digit.
	ErrLevelMissing
	// ErrLevelInvalid: the level digit run is too long to be a real level.
	ErrLevelInvalid
	// ErrDelimAfterLevel: no delimiter after the level.
	ErrDelimAfterLevel
	// ErrDelimAfterXRef: no delimiter after the xref id.
	ErrDelimAfterXRef
	// ErrDelimAfterTag: no delimiter between tag and value.
	ErrDelimAfterTag
	// ErrTagMissing: the tag is absent.
	ErrTagMissing
	// ErrXRefUnterminated: a defining xref id is missing its closing '@'.
	ErrXRefUnterminated
	// ErrValueInvalid: the value contains bytes the grammar forbids.
	ErrValueInvalid
)

func (c SyntaxErrorCode) String() string {
	switch c {
	case ErrNone:
		return "no error"
	case ErrLevelMissing:
		return "level missing"
	case ErrLevelInvalid:
		return "level invalid"
	case ErrDelimAfterLevel:
		return "missing delimiter after level"
	case ErrDelimAfterXRef:
		return "missing delimiter after xref"
	case ErrDelimAfterTag:
		return "missing delimiter after tag"
	case ErrTagMissing:
		return "tag missing"
	case ErrXRefUnterminated:
		return "unterminated xref"
	case ErrValueInvalid:
		return "value invalid"
	}
	return fmt.Sprintf("syntax error %d", int(c))
}

// SyntaxError is a latched tokenizer failure. It records the first offending
// line; later lines are not processed unless Options.ContinueOnError is set.
type SyntaxError struct {
	Code SyntaxErrorCode
	Line int
	Text string // the raw offending line
}

func newSyntaxError(code SyntaxErrorCode, line int, text string) *SyntaxError {
	return &SyntaxError{Code: code, Line: line, Text: text}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Code)
}

// Anomaly is a non-fatal problem found during assembly or resolution:
// unknown tags, tags at unexpected levels, missing required xrefs, dangling
// references, unmatched citations. Anomalies never abort a parse.
type Anomaly struct {
	Line    int // 0 when discovered post-parse
	Message string
}

func (a Anomaly) String() string {
	if a.Line > 0 {
		return fmt.Sprintf("line %d: %s", a.Line, a.Message)
	}
	return a.Message
}
