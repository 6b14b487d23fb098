package i2c

import (
	"errors"
	"fmt"
)

// NackSource identifies which part of a transaction was not acknowledged.
type NackSource int

const (
	// NackAddress means the target never acknowledged the address byte.
	NackAddress NackSource = iota
	// NackData means the address was acknowledged but a data byte was not.
	NackData
)

func (s NackSource) String() string {
	switch s {
	case NackAddress:
		return "address"
	case NackData:
		return "data"
	default:
		return "unknown"
	}
}

// NackError reports that a transaction was not acknowledged at Source.
type NackError struct {
	Source NackSource
}

func (e *NackError) Error() string { return "i2c: no acknowledge (" + e.Source.String() + ")" }

// ErrPeerLost is returned by the simulator's Listen when the channel from
// its controller half has been closed. Context cancellation is reported as
// the context's own error, not as ErrPeerLost.
var ErrPeerLost = errors.New("i2c: peer lost")

// ProtocolMisuse is panicked when a caller violates the handler contract by
// using a handle after it has gone terminal, or when an Expect is built from
// a Yield whose Kind is not one of the defined variants.
type ProtocolMisuse struct {
	Msg string
}

func (e *ProtocolMisuse) Error() string { return "i2c: protocol misuse: " + e.Msg }

func misuse(format string, args ...any) {
	panic(&ProtocolMisuse{Msg: fmt.Sprintf(format, args...)})
}
