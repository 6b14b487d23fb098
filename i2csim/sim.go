// Package i2csim provides an in-process reference simulator pairing a
// SimController and a SimTarget over a Go channel, so an i2c.Target
// implementation can be exercised without real hardware. It is the direct
// counterpart of the target/controller split used for conformance tests.
package i2csim

import "github.com/tweedegolf/embedded-hal-i2c/i2c"

// transaction is the in-flight descriptor shared between a SimController
// call and the SimTarget goroutine servicing it. Unlike a cross-process
// design, ops' Read/Write slices point directly at the controller caller's
// buffers: the target writes/reads them in place, since both halves live
// in the same address space and only one side touches the buffer at a
// time (the controller blocks on responder while the target is active).
type transaction struct {
	addr      i2c.Address
	ops       []i2c.Op
	index     int
	responder chan error
}

func (t *transaction) respond(err error) {
	select {
	case t.responder <- err:
	default:
	}
}

// NewSimulator creates a linked SimController/SimTarget pair. Address
// filtering is not performed here: per the reference design, only
// application-level target code decides whether to service or drop a
// transaction addressed to it.
func NewSimulator() (*SimController, *SimTarget) {
	ch := make(chan *transaction, 1)
	return &SimController{toTarget: ch}, &SimTarget{fromController: ch}
}
