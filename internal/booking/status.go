package booking

// Status is the lifecycle state of a booking.
//
// waiting is the initial state. approved and rejected are terminal:
// once an owner has decided, the booking never changes again.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Wire returns the upper-cased representation used in the JSON API.
func (s Status) Wire() string {
	switch s {
	case StatusWaiting:
		return "WAITING"
	case StatusApproved:
		return "APPROVED"
	case StatusRejected:
		return "REJECTED"
	default:
		return string(s)
	}
}

// Decide computes the terminal status for an owner decision. It is the
// single place the waiting-only precondition is enforced; callers never
// assign Status directly.
func Decide(current Status, approve bool) (Status, error) {
	if current != StatusWaiting {
		return current, ErrAlreadyDecided
	}
	if approve {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}
