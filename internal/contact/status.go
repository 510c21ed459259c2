package contact

// Status is the submission state machine
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
