package identify

// Severity classifies a status message for a host UI.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// StatusFunc receives progress and error notices (rate-limit waits, quota
// exhaustion, invalid credentials) for display. A nil StatusFunc is valid
// and means no host is listening.
type StatusFunc func(message string, severity Severity)

// Notify invokes fn when non-nil.
func (fn StatusFunc) Notify(message string, severity Severity) {
	if fn != nil {
		fn(message, severity)
	}
}
