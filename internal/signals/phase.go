package signals

// suspendPhase is a step of suspend handling
type suspendPhase int

const (
	phaseNotifyHost suspendPhase = iota
	phaseRestoreDefault
	phaseReRaise
	phaseDone
)

// String returns the string representation of the phase
func (p suspendPhase) String() string {
	switch p {
	case phaseNotifyHost:
		return "notify-host"
	case phaseRestoreDefault:
		return "restore-default"
	case phaseReRaise:
		return "re-raise"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}
