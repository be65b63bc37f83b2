package parser

// ParsingContext is the state carried from one line to the next. It is a
// value: a line can only replace it, never mutate it.
type ParsingContext struct {
	// CurrentDate is the ISO date set by the last date-header line.
	CurrentDate string
}

// WithDate returns a context carrying date.
func (c ParsingContext) WithDate(date string) ParsingContext {
	return ParsingContext{CurrentDate: date}
}

// HasDate reports whether a date header has been seen.
func (c ParsingContext) HasDate() bool {
	return c.CurrentDate != ""
}

// Outcome describes what a line produced.
type Outcome int

const (
	// Unparsed lines match no pattern and are forwarded to the AI parser.
	Unparsed Outcome = iota
	// Parsed lines produced a transaction candidate.
	Parsed
	// ContextUpdated lines were date headers.
	ContextUpdated
	// Skipped lines are summaries, zero amounts or blank descriptions.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case ContextUpdated:
		return "context_updated"
	case Skipped:
		return "skipped"
	default:
		return "unparsed"
	}
}
