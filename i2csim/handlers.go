package i2csim

import (
	"context"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
	"github.com/tweedegolf/embedded-hal-i2c/internal/mathx"
)

// fillByte is the overrun character a read handler provides once its
// operation's data is exhausted but the master keeps clocking bytes out.
const fillByte = 0x2a

// handlerState is the dynamically-asserted stand-in for the reference
// implementation's affine ownership: a handle starts unacked, becomes
// active on its first non-empty HandlePart, and goes terminal exactly
// once, at which point every method panics except the now-idempotent
// Release.
type handlerState int

const (
	stateUnacked handlerState = iota
	stateActive
	stateTerminal
)

// onRead is SimTarget's i2c.ReadHandle.
type onRead struct {
	target *SimTarget
	filled int
	state  handlerState
}

func newOnRead(target *SimTarget) *onRead {
	return &onRead{target: target}
}

func (h *onRead) remaining() []byte {
	op := &h.target.current.ops[h.target.current.index]
	return op.Read[h.filled:]
}

func (h *onRead) HandlePart(ctx context.Context, buffer []byte) (i2c.ReadResult, error) {
	if h.state == stateTerminal {
		panic(&i2c.ProtocolMisuse{Msg: "read handle used after release"})
	}
	if len(buffer) == 0 {
		return i2c.ReadResult{}, nil
	}
	h.state = stateActive

	target := h.remaining()
	n := mathx.Min(len(target), len(buffer))
	copy(target[:n], buffer[:n])
	h.filled += n

	if len(h.remaining()) == 0 {
		h.state = stateTerminal
		h.target.next()
		return i2c.ReadResult{Done: true, N: n}, nil
	}
	return i2c.ReadResult{Done: false, N: n}, nil
}

func (h *onRead) HandleComplete(ctx context.Context, buffer []byte, ovc byte) (int, error) {
	return i2c.HandleReadComplete(ctx, h, buffer, ovc)
}

// Release is the idempotent drop-action: NACK the address if nothing was
// ever sent, otherwise fill the remainder of the op with fillByte and move
// on, exactly as the reference OnRead's Drop impl does.
func (h *onRead) Release() {
	switch h.state {
	case stateUnacked:
		h.state = stateTerminal
		h.target.nak(i2c.NackAddress)
	case stateActive:
		h.state = stateTerminal
		remaining := h.remaining()
		for i := range remaining {
			remaining[i] = fillByte
		}
		h.target.next()
	}
}

// onWrite is SimTarget's i2c.WriteHandle.
type onWrite struct {
	target *SimTarget
	read   int
	state  handlerState
}

func newOnWrite(target *SimTarget) *onWrite {
	return &onWrite{target: target}
}

func (h *onWrite) remaining() []byte {
	op := &h.target.current.ops[h.target.current.index]
	return op.Write[h.read:]
}

func (h *onWrite) HandlePart(ctx context.Context, buffer []byte) (i2c.WriteResult, error) {
	if h.state == stateTerminal {
		panic(&i2c.ProtocolMisuse{Msg: "write handle used after release"})
	}
	if len(buffer) == 0 {
		return i2c.WriteResult{}, nil
	}
	h.state = stateActive

	source := h.remaining()
	n := mathx.Min(len(source), len(buffer))
	copy(buffer[:n], source[:n])
	h.read += n

	if len(h.remaining()) == 0 {
		if len(buffer) == n {
			// buffer was exactly sized to the remaining source: the last
			// byte copied is held unacknowledged, awaiting a further call.
			return i2c.WriteResult{Done: false, N: n}, nil
		}
		// the op's data ran out before buffer was filled: the master
		// supplied fewer bytes than the destination could hold.
		h.target.next()
		h.state = stateTerminal
		return i2c.WriteResult{Done: true, N: n}, nil
	}
	return i2c.WriteResult{Done: false, N: n}, nil
}

func (h *onWrite) HandleComplete(ctx context.Context, buffer []byte) (int, error) {
	return i2c.HandleWriteComplete(ctx, h, buffer)
}

// Release is the idempotent drop-action: NACK the address if nothing was
// ever received, otherwise NACK the held-but-unacknowledged data byte.
func (h *onWrite) Release() {
	switch h.state {
	case stateUnacked:
		h.state = stateTerminal
		h.target.nak(i2c.NackAddress)
	case stateActive:
		h.state = stateTerminal
		h.target.nak(i2c.NackData)
	}
}
