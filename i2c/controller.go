package i2c

import "context"

// Controller is the master-side half of a bus: it issues one multi-op
// transaction at a time, restarting between ops and stopping at the end.
// A NackError aborts the transaction at the op/byte where the target
// declined to continue. This is the minimal shape the reference simulator
// needs on its controller half; real hardware drivers typically also
// satisfy tinygo.org/x/drivers.I2C, bridged via package i2cdrivers.
type Controller interface {
	Transaction(ctx context.Context, addr Address, ops []Op) error
}

// Write performs a single-operation write transaction.
func Write(ctx context.Context, c Controller, addr Address, data []byte) error {
	return c.Transaction(ctx, addr, []Op{{Kind: OpWrite, Write: data}})
}

// Read performs a single-operation read transaction, filling buf.
func Read(ctx context.Context, c Controller, addr Address, buf []byte) error {
	return c.Transaction(ctx, addr, []Op{{Kind: OpRead, Read: buf}})
}

// WriteRead performs a write immediately followed (with a restart) by a
// read into buf, the common register-address-then-read idiom.
func WriteRead(ctx context.Context, c Controller, addr Address, data []byte, buf []byte) error {
	return c.Transaction(ctx, addr, []Op{
		{Kind: OpWrite, Write: data},
		{Kind: OpRead, Read: buf},
	})
}
