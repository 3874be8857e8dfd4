package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ESLint returns the numeric severity ESLint reports (1 = warn, 2 = error).
func (s Severity) ESLint() int {
	switch s {
	case SevError:
		return 2
	case SevWarning:
		return 1
	}
	return 0
}
