// Package i2cdrivers bridges package i2c's Controller contract to
// tinygo.org/x/drivers.I2C, the controller-side shape this corpus's own
// hardware abstraction layer already standardizes its device drivers on.
package i2cdrivers

import (
	"context"
	"time"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
	"github.com/tweedegolf/embedded-hal-i2c/internal/mathx"
	"tinygo.org/x/drivers"
)

// minTimeout/maxTimeout bound WithTimeout's argument: below minTimeout a Tx
// would fail before the bus could plausibly respond, above maxTimeout a
// stuck peer would wedge the caller far longer than any real I2C transfer.
const (
	minTimeout = time.Millisecond
	maxTimeout = time.Second
)

// I2C adapts an i2c.Controller (including *i2csim.SimController) to
// tinygo.org/x/drivers.I2C's Tx(addr, w, r) shape, so a driver written
// against that interface can run unmodified against the simulator.
type I2C struct {
	c       i2c.Controller
	timeout time.Duration
}

var _ drivers.I2C = I2C{}

// Adapt wraps c for use as a tinygo.org/x/drivers.I2C.
func Adapt(c i2c.Controller) I2C {
	return I2C{c: c, timeout: 25 * time.Millisecond}
}

// WithTimeout overrides the per-Tx deadline (default 25ms), clamped to
// [minTimeout, maxTimeout].
func (s I2C) WithTimeout(d time.Duration) I2C {
	s.timeout = mathx.Clamp(d, minTimeout, maxTimeout)
	return s
}

// Tx performs a write of w (if non-empty) followed by a read into r (if
// non-empty), as a single restart-joined transaction when both are given.
// addr is treated as a 7-bit address unless it exceeds that range.
func (s I2C) Tx(addr uint16, w, r []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var ops []i2c.Op
	if len(w) > 0 {
		ops = append(ops, i2c.Op{Kind: i2c.OpWrite, Write: w})
	}
	if len(r) > 0 {
		ops = append(ops, i2c.Op{Kind: i2c.OpRead, Read: r})
	}
	if len(ops) == 0 {
		return nil
	}

	return s.c.Transaction(ctx, address(addr), ops)
}

func address(a uint16) i2c.Address {
	if a > 0x7F {
		return i2c.Ten(a)
	}
	return i2c.Seven(uint8(a))
}
