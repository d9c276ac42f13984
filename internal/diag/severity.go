package diag

// Severity defines the importance of a diagnostic. Larger is more severe.
type Severity uint8

const (
	// SevHelp suggests how to fix something.
	SevHelp Severity = iota
	// SevNote adds context to another finding.
	SevNote
	// SevWarning does not fail the run.
	SevWarning
	// SevError fails the run; output is still produced.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHelp:
		return "help"
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
