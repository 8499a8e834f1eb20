package provision

import "fmt"

// LaunchOutcome tags how the optional notebook server launch ended
type LaunchOutcome int

const (
	// LaunchDeclined means the operator did not ask for a launch
	LaunchDeclined LaunchOutcome = iota
	// LaunchCompleted means the server ran and exited on its own
	LaunchCompleted
	// LaunchStopped means the operator interrupted the server
	LaunchStopped
	// LaunchFailed means the server could not be started or exited with an error
	LaunchFailed
)

func (o LaunchOutcome) String() string {
	switch o {
	case LaunchDeclined:
		return "declined"
	case LaunchCompleted:
		return "completed"
	case LaunchStopped:
		return "stopped"
	case LaunchFailed:
		return "failed"
	default:
		return fmt.Sprintf("LaunchOutcome(%d)", int(o))
	}
}

// LaunchResult is the outcome of MaybeLaunch. Message is set for LaunchFailed.
type LaunchResult struct {
	Outcome LaunchOutcome
	Message string
}

// Declined reports whether no launch was attempted
func (r LaunchResult) Declined() bool { return r.Outcome == LaunchDeclined }

// Stopped reports whether the operator interrupted the server
func (r LaunchResult) Stopped() bool { return r.Outcome == LaunchStopped }

// Failed reports whether the launch failed
func (r LaunchResult) Failed() bool { return r.Outcome == LaunchFailed }
