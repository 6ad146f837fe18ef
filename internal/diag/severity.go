package diag

// Severity orders diagnostics. Every stage currently reports SevError;
// Bag.HasErrors compares against it, so new levels go below it.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the lowercase name used by the JSON document.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
