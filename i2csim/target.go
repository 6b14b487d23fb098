package i2csim

import (
	"context"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
)

// SimTarget is the peripheral-side half of a simulated bus. It satisfies
// i2c.Target.
type SimTarget struct {
	current        *transaction
	fromController chan *transaction
	needDeselect   bool
}

// Listen implements i2c.Target, mirroring the five-step reference
// algorithm: report a pending deselect first, otherwise wait for (or
// continue) a transaction and yield its current op, or deselect and
// acknowledge the transaction once its ops are exhausted.
func (s *SimTarget) Listen(ctx context.Context) (i2c.Yield, error) {
	if s.needDeselect {
		s.needDeselect = false
		return i2c.Yield{Kind: i2c.YieldDeselect}, nil
	}

	if s.current == nil {
		select {
		case t, ok := <-s.fromController:
			if !ok {
				return i2c.Yield{}, i2c.ErrPeerLost
			}
			s.current = t
		case <-ctx.Done():
			return i2c.Yield{}, ctx.Err()
		}
	}

	cur := s.current
	if cur.index >= len(cur.ops) {
		s.current = nil
		cur.respond(nil)
		return i2c.Yield{Kind: i2c.YieldDeselect}, nil
	}

	op := cur.ops[cur.index]
	switch op.Kind {
	case i2c.OpRead:
		return i2c.Yield{Kind: i2c.YieldRead, Address: cur.addr, Read: newOnRead(s)}, nil
	default:
		return i2c.Yield{Kind: i2c.YieldWrite, Address: cur.addr, Write: newOnWrite(s)}, nil
	}
}

// nak aborts the in-flight transaction: it reports NackError(src) to the
// waiting controller and arms a Deselect to be reported on the next
// Listen, exactly as a real bus would force a stop/restart after a NACK.
func (s *SimTarget) nak(src i2c.NackSource) {
	t := s.current
	s.current = nil
	s.needDeselect = true
	t.respond(&i2c.NackError{Source: src})
}

// next advances to the next op within the current transaction. Once the
// last op is done it acknowledges the transaction to the waiting controller
// right away and arms a Deselect for the next Listen.
func (s *SimTarget) next() {
	s.current.index++
	if s.current.index >= len(s.current.ops) {
		t := s.current
		s.current = nil
		s.needDeselect = true
		t.respond(nil)
	}
}
