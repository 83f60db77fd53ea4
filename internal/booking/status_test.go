package booking

import (
	"errors"
	"testing"
)

func TestTransition_AdvanceLadder(t *testing.T) {
	cases := []struct {
		from  Status
		to    Status
		event Event
	}{
		{StatusPending, StatusConfirmed, EventConfirmed},
		{StatusConfirmed, StatusPaid, EventMarkedPaid},
		{StatusPaid, StatusOngoing, EventStarted},
		{StatusOngoing, StatusComplete, EventCompleted},
	}
	for _, c := range cases {
		ev, err := Transition(c.from, c.to)
		if err != nil {
			t.Fatalf("%s -> %s: unexpected error: %v", c.from, c.to, err)
		}
		if ev != c.event {
			t.Fatalf("%s -> %s: expected event %s, got %s", c.from, c.to, c.event, ev)
		}
	}
}

func TestTransition_Cancel(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed, StatusPaid} {
		ev, err := Transition(from, StatusCanceled)
		if err != nil {
			t.Fatalf("%s -> canceled: unexpected error: %v", from, err)
		}
		if ev != EventCanceled {
			t.Fatalf("%s -> canceled: expected %s, got %s", from, EventCanceled, ev)
		}
	}

	// A trip underway or finished cannot be canceled.
	for _, from := range []Status{StatusOngoing, StatusComplete, StatusCanceled} {
		if _, err := Transition(from, StatusCanceled); err == nil {
			t.Fatalf("%s -> canceled: expected error", from)
		}
	}
}

func TestTransition_RejectsEverythingElse(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusPaid, StatusOngoing, StatusComplete, StatusCanceled}

	legal := map[Status]Status{
		StatusPending:   StatusConfirmed,
		StatusConfirmed: StatusPaid,
		StatusPaid:      StatusOngoing,
		StatusOngoing:   StatusComplete,
	}

	for _, from := range all {
		for _, to := range all {
			if legal[from] == to {
				continue
			}
			if to == StatusCanceled && CanCancel(from) {
				continue
			}
			_, err := Transition(from, to)
			if err == nil {
				t.Fatalf("%s -> %s: expected InvalidTransition", from, to)
			}
			var terr InvalidTransitionError
			if !errors.As(err, &terr) {
				t.Fatalf("%s -> %s: expected InvalidTransitionError, got %T", from, to, err)
			}
			if terr.From != from || terr.Attempted != to {
				t.Fatalf("%s -> %s: error carries %s -> %s", from, to, terr.From, terr.Attempted)
			}
		}
	}
}

func TestTransition_TerminalStatesRejectEverything(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusPaid, StatusOngoing, StatusComplete, StatusCanceled}
	for _, from := range []Status{StatusComplete, StatusCanceled} {
		if !from.Terminal() {
			t.Fatalf("%s should be terminal", from)
		}
		for _, to := range all {
			if _, err := Transition(from, to); err == nil {
				t.Fatalf("%s -> %s: expected error from terminal state", from, to)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("shipped"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
