package domain

import "fmt"

// TransitionPolicy decides whether a complaint may move from one status to another.
// A nil error allows the transition.
type TransitionPolicy func(from, to ComplaintStatus) error

// PermissiveTransitions allows any known status to follow any other,
// including reopening resolved or rejected complaints.
func PermissiveTransitions(from, to ComplaintStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	return nil
}

var strictTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintStatusPending:    {ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusRejected},
	ComplaintStatusInProgress: {ComplaintStatusInProgress, ComplaintStatusPending, ComplaintStatusResolved, ComplaintStatusRejected},
	ComplaintStatusResolved:   {ComplaintStatusResolved},
	ComplaintStatusRejected:   {ComplaintStatusRejected},
}

// StrictTransitions treats resolved and rejected as terminal.
// Re-applying the current status is allowed so comments can still be edited.
func StrictTransitions(from, to ComplaintStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	for _, candidate := range strictTransitions[from] {
		if candidate == to {
			return nil
		}
	}
	return fmt.Errorf("cannot move complaint from %s to %s", from, to)
}
