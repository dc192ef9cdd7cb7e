package thirdvm

import "fmt"

// SignalKind tags the condition carried by a Signal.
type SignalKind int

// The signal taxonomy. None is normal progress; every other kind suspends
// stepping on the owning Process until the host clears it.
const (
	SignalNone SignalKind = iota
	SignalExit
	SignalException
	SignalWordIDOutOfRange
	SignalWordNotImplemented
	SignalValueStackUnderflow
)

func (k SignalKind) String() string {
	switch k {
	case SignalNone:
		return "None"
	case SignalExit:
		return "Exit"
	case SignalException:
		return "Exception"
	case SignalWordIDOutOfRange:
		return "WordIdOutOfRange"
	case SignalWordNotImplemented:
		return "WordNotImplemented"
	case SignalValueStackUnderflow:
		return "ValueStackUnderflow"
	default:
		return fmt.Sprintf("SignalKind(%d)", int(k))
	}
}

// Signal is a Process's most recent asynchronous/exceptional condition.
// Code carries the exception code for SignalException, the offending id for
// SignalWordIDOutOfRange/SignalWordNotImplemented, and the exit status for
// SignalExit. A non-None signal suspends stepping until the host clears it
// by assigning Signal{}.
type Signal struct {
	Kind SignalKind
	Code uint32
}

func (s Signal) String() string {
	if s.Kind == SignalNone {
		return "None"
	}
	return fmt.Sprintf("%v(%d)", s.Kind, s.Code)
}
