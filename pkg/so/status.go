package so

// InstantiationStatus is the state of an SO orchestration request.
type InstantiationStatus string

const (
	StatusInProgress InstantiationStatus = "IN_PROGRESS"
	StatusFailed     InstantiationStatus = "FAILED"
	StatusCompleted  InstantiationStatus = "COMPLETE"
	// StatusUnknown covers request states outside the tracked
	// vocabulary.
	StatusUnknown InstantiationStatus = "UNKNOWN"
)

// ParseInstantiationStatus maps an SO request state onto the tracked
// vocabulary; anything else is UNKNOWN.
func ParseInstantiationStatus(requestState string) InstantiationStatus {
	switch status := InstantiationStatus(requestState); status {
	case StatusInProgress, StatusFailed, StatusCompleted:
		return status
	default:
		return StatusUnknown
	}
}

// Finished reports whether the request reached a terminal state.
func (s InstantiationStatus) Finished() bool {
	return s == StatusCompleted || s == StatusFailed
}
