// Package ioexpander implements a register-addressed I/O expander as an
// i2c.Target: one write transaction selects or writes a register, an
// optional following read transaction returns its value.
package ioexpander

import (
	"context"

	"github.com/tweedegolf/embedded-hal-i2c/bus"
	"github.com/tweedegolf/embedded-hal-i2c/i2c"
)

// Interface is the register file backing a Target. ReadReg returns the
// register's current bytes written into buf (and the slice actually
// filled); WriteReg stores data at addr.
type Interface interface {
	ReadReg(addr uint8, buf []byte) ([]byte, error)
	WriteReg(addr uint8, data []byte) error
}

// bufLen is the scratch buffer size for one register-address-plus-data
// write, matching the reference implementation's 64-byte working buffer.
const bufLen = 64

// Target runs the register-file protocol against an Interface.
type Target struct {
	addr  i2c.Address
	iface Interface
	bus   *bus.Connection
}

// New creates a Target listening at addr and backed by iface. conn is
// optional; when non-nil, register reads and writes are published
// retained on the topic ("ioexpander", "reg") for observability.
func New(addr i2c.Address, iface Interface, conn *bus.Connection) *Target {
	return &Target{addr: addr, iface: iface, bus: conn}
}

var regTopic = bus.T("ioexpander", "reg")

func (t *Target) publish(op string, reg uint8) {
	if t.bus == nil {
		return
	}
	t.bus.Publish(t.bus.NewMessage(regTopic, map[string]any{"op": op, "reg": reg}, true))
}

// Run services transactions against listener until ctx is cancelled or
// Listen returns an error.
//
// A transaction must start with a write: either a single register-address
// byte (the prelude to a read) or a multi-byte [address, data...] write.
// Anything else (a bare read, a mismatched address, or a write too large
// for the internal buffer) is released unacknowledged and ignored, the
// same "I dunno what they wanted" tolerance the reference implementation
// uses.
func (t *Target) Run(ctx context.Context, listener i2c.Target) error {
	buf := make([]byte, bufLen)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		e, err := i2c.ListenExpectWrite(ctx, listener, t.addr, buf)
		if err != nil {
			return err
		}
		if e.Kind != i2c.ExpectCompleteWrite {
			release(e)
			continue
		}

		used := buf[:e.Size]
		switch {
		case len(used) == 0:
			continue
		case len(used) == 1:
			regAddr := used[0]
			data, err := t.iface.ReadReg(regAddr, buf)
			if err != nil {
				continue
			}
			t.publish("read", regAddr)
			e2, err := i2c.ListenExpectRead(ctx, listener, t.addr, data)
			if err != nil {
				return err
			}
			if e2.Kind != i2c.ExpectCompleteRead {
				release(e2)
			}
		default:
			regAddr := used[0]
			if err := t.iface.WriteReg(regAddr, used[1:]); err == nil {
				t.publish("write", regAddr)
			}
		}
	}
}

// release abandons whatever live handle an Expect still carries, the Go
// equivalent of letting a Rust Transaction value drop unused.
func release(e i2c.Expect) {
	if e.Read != nil {
		e.Read.Release()
	}
	if e.Write != nil {
		e.Write.Release()
	}
}
