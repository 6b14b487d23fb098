// Package i2cram implements a simple byte-addressed RAM as an i2c.Target: a
// write of a little-endian uint16 selects the cursor, any following write
// stores at the cursor (advancing it), and any following read returns from
// the cursor (advancing it, filling overrun with 0xFF).
package i2cram

import (
	"context"
	"encoding/binary"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
	"github.com/tweedegolf/embedded-hal-i2c/internal/mathx"
)

// TargetAddr is the fixed seven-bit address the reference RAM listens on.
var TargetAddr = i2c.Seven(0x20)

// BufLen is the RAM's capacity in bytes.
const BufLen = 512

// overrunFill is returned for bytes read past the end of the buffer.
const overrunFill = 0xFF

// Target is an in-memory RAM servicing the address-register protocol.
type Target struct {
	buf [BufLen]byte
}

// New returns an empty RAM.
func New() *Target {
	return &Target{}
}

// Run services transactions against listener until ctx is cancelled or
// Listen returns an error. curAddr persists across transactions;
// expectRead is cleared by every Deselect. Once a write leaves the cursor
// positioned validly, the next op of the same transaction is expected to be
// a read from that cursor, but a write is still accepted instead (it simply
// repositions the cursor again).
func (t *Target) Run(ctx context.Context, listener i2c.Target) error {
	curAddr := 0
	expectRead := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var e i2c.Expect
		var err error
		var topAddr [2]byte
		if expectRead && curAddr < BufLen {
			e, err = i2c.ListenExpectRead(ctx, listener, TargetAddr, t.buf[curAddr:])
		} else {
			e, err = i2c.ListenExpectWrite(ctx, listener, TargetAddr, topAddr[:])
		}
		if err != nil {
			return err
		}

		switch e.Kind {
		case i2c.ExpectDeselect:
			expectRead = false

		case i2c.ExpectRead:
			// A read arrived without an address register write before it
			// in the same transaction: it reads from the persisting cursor,
			// unless that cursor is past the end of the RAM.
			if curAddr >= BufLen {
				e.Read.Release()
				continue
			}
			n, err := i2c.HandleReadComplete(ctx, e.Read, t.buf[curAddr:], overrunFill)
			if err != nil {
				return err
			}
			curAddr = mathx.Min(curAddr+n, BufLen)

		case i2c.ExpectCompleteRead:
			curAddr = mathx.Min(curAddr+e.Size, BufLen)

		case i2c.ExpectPartialRead:
			n, err := i2c.HandleReadComplete(ctx, e.Read, nil, overrunFill)
			if err != nil {
				return err
			}
			size := len(t.buf[curAddr:]) + n
			curAddr = mathx.Min(curAddr+size, BufLen)

		case i2c.ExpectWrite:
			// A write arrived mid read-cursor-expectation: reinterpret as a
			// fresh address register selection.
			var addr [2]byte
			res, err := e.Write.HandlePart(ctx, addr[:])
			if err != nil {
				return err
			}
			if !res.Done {
				newAddr := int(binary.LittleEndian.Uint16(addr[:]))
				if newAddr >= BufLen {
					e.Write.Release()
					continue
				}
				curAddr = newAddr
				expectRead = true
				n, err := i2c.HandleWriteComplete(ctx, e.Write, t.buf[curAddr:])
				if err != nil {
					return err
				}
				curAddr += n
			}
			// res.Done with fewer than 2 address bytes: incomplete address
			// write, ignored.

		case i2c.ExpectCompleteWrite:
			// Fewer than two bytes written as an address register select;
			// ignored.

		case i2c.ExpectPartialWrite:
			// The top-level write filled topAddr exactly (2 bytes) and the
			// master kept writing: this is a combined address+data write.
			newAddr := int(binary.LittleEndian.Uint16(topAddr[:]))
			if newAddr >= BufLen {
				e.Write.Release()
				continue
			}
			curAddr = newAddr
			expectRead = true
			n, err := i2c.HandleWriteComplete(ctx, e.Write, t.buf[curAddr:])
			if err != nil {
				return err
			}
			curAddr += n
		}
	}
}
