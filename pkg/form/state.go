package form

// State is a step of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateReading
	StateInvalid
	StateComputing
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateInvalid:
		return "invalid"
	case StateComputing:
		return "computing"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}
