package checkout

// Status is the checkout flow state.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusSubmitting Status = "SUBMITTING"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

// transitions lists the legal moves. Succeeded reverts to Idle on a
// display timer; Failed reverts once the user has been notified.
var transitions = map[Status][]Status{
	StatusIdle:       {StatusSubmitting},
	StatusSubmitting: {StatusSucceeded, StatusFailed},
	StatusSucceeded:  {StatusIdle},
	StatusFailed:     {StatusIdle},
}

// CanTransitionTo reports whether moving from one status to another is
// legal.
func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
