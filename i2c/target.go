package i2c

import "context"

// YieldKind discriminates the variants of Yield.
type YieldKind int

const (
	// YieldDeselect reports a stop or restart-with-different-address since
	// the last transaction. It may be yielded more than once in a row.
	YieldDeselect YieldKind = iota
	// YieldRead is a read transaction with its address byte received but
	// not yet acknowledged.
	YieldRead
	// YieldWrite is a write transaction with its address byte received but
	// not yet acknowledged.
	YieldWrite
)

// Yield is what Target.Listen produces: a tagged union over Deselect/Read/
// Write. Only the fields matching Kind are populated. Discarding a Read/
// Write Yield does not NACK anything by itself: the transaction stays
// pending until the handle is driven to completion or Released, and
// Release on an unused handle is what NACKs the address.
type Yield struct {
	Kind    YieldKind
	Address Address
	Read    ReadHandle
	Write   WriteHandle
}

// Target is an I2C peripheral's listening half: it blocks until the
// controller starts a transaction addressed to (or at least directed at)
// this target, or until a deselect needs reporting.
type Target interface {
	Listen(ctx context.Context) (Yield, error)
}

// ExpectWriteListener is an optional capability a Target may implement to
// accelerate ListenExpectWrite beyond the default Listen-then-HandlePart
// composition.
type ExpectWriteListener interface {
	ListenExpectWrite(ctx context.Context, expected Address, writeBuffer []byte) (Expect, error)
}

// ExpectReadListener is the read-direction analog of ExpectWriteListener.
type ExpectReadListener interface {
	ListenExpectRead(ctx context.Context, expected Address, readBuffer []byte) (Expect, error)
}

// ExpectEitherListener is the direction-agnostic analog of
// ExpectWriteListener/ExpectReadListener.
type ExpectEitherListener interface {
	ListenExpectEither(ctx context.Context, expected Address, writeBuffer, readBuffer []byte) (Expect, error)
}
