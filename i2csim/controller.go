package i2csim

import (
	"context"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
)

// SimController is the master-side half of a simulated bus. It satisfies
// i2c.Controller, and through package i2cdrivers can also be driven as a
// tinygo.org/x/drivers.I2C.
type SimController struct {
	toTarget chan *transaction
}

// Transaction sends ops to the paired SimTarget and blocks until every op
// has been serviced or the target NACKs. The channel to the target holds
// one transaction: a second caller blocks on the send until the target has
// taken the earlier transaction off the channel, and each caller then waits
// on its own responder.
func (c *SimController) Transaction(ctx context.Context, addr i2c.Address, ops []i2c.Op) error {
	t := &transaction{addr: addr, ops: ops, responder: make(chan error, 1)}

	select {
	case c.toTarget <- t:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.responder:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
