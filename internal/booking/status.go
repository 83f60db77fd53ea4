package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
	StatusOngoing   Status = "ongoing"
	StatusComplete  Status = "complete"
	StatusCanceled  Status = "canceled"
)

// statusLadder is the ordered fulfillment sequence. Cancel sits outside the
// ladder and is only reachable before the trip starts.
var statusLadder = []Status{StatusPending, StatusConfirmed, StatusPaid, StatusOngoing, StatusComplete}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPaid, StatusOngoing, StatusComplete, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// Terminal reports whether no further transition is legal from s.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusCanceled
}

// Event tags a committed transition; the orchestrator uses it to pick a
// notification template. Only EventConfirmed and EventMarkedPaid carry one.
type Event string

const (
	EventConfirmed  Event = "CONFIRMED"
	EventMarkedPaid Event = "MARKED_PAID"
	EventStarted    Event = "STARTED"
	EventCompleted  Event = "COMPLETED"
	EventCanceled   Event = "CANCELED"
)

var advanceEvents = map[Status]Event{
	StatusConfirmed: EventConfirmed,
	StatusPaid:      EventMarkedPaid,
	StatusOngoing:   EventStarted,
	StatusComplete:  EventCompleted,
}

type InvalidTransitionError struct {
	From      Status
	Attempted Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.Attempted)
}

// Next returns the status one rung up the ladder from current.
func Next(current Status) (Status, error) {
	for i, s := range statusLadder {
		if s == current && i < len(statusLadder)-1 {
			return statusLadder[i+1], nil
		}
	}
	return "", InvalidTransitionError{From: current, Attempted: ""}
}

// CanCancel reports whether a booking may still be canceled. A trip already
// underway or finished cannot be.
func CanCancel(current Status) bool {
	switch current {
	case StatusPending, StatusConfirmed, StatusPaid:
		return true
	default:
		return false
	}
}

// Transition validates a requested status change and returns the transition
// event tag. It is pure: persistence and side effects belong to the caller.
func Transition(current, requested Status) (Event, error) {
	if requested == StatusCanceled {
		if !CanCancel(current) {
			return "", InvalidTransitionError{From: current, Attempted: requested}
		}
		return EventCanceled, nil
	}

	if current.Terminal() {
		return "", InvalidTransitionError{From: current, Attempted: requested}
	}
	next, err := Next(current)
	if err != nil || next != requested {
		return "", InvalidTransitionError{From: current, Attempted: requested}
	}
	return advanceEvents[requested], nil
}
