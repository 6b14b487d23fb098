package i2cdrivers

import (
	"context"
	"testing"
	"time"

	"github.com/tweedegolf/embedded-hal-i2c/i2c"
	"github.com/tweedegolf/embedded-hal-i2c/i2csim"
)

func TestTxWriteRead(t *testing.T) {
	ctrl, tgt := i2csim.NewSimulator()
	adapted := Adapt(ctrl)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		y, err := tgt.Listen(ctx)
		if err != nil || y.Kind != i2c.YieldWrite {
			t.Errorf("unexpected yield: %+v err=%v", y, err)
			return
		}
		var buf [1]byte
		if n, err := y.Write.HandleComplete(ctx, buf[:]); err != nil || n != 1 {
			t.Errorf("write handle_complete: n=%d err=%v", n, err)
		}
		if buf[0] != 0x10 {
			t.Errorf("unexpected register byte: 0x%02x", buf[0])
		}

		y, err = tgt.Listen(ctx)
		if err != nil || y.Kind != i2c.YieldDeselect {
			t.Errorf("expected deselect, got %+v err=%v", y, err)
		}

		y, err = tgt.Listen(ctx)
		if err != nil || y.Kind != i2c.YieldRead {
			t.Errorf("unexpected yield: %+v err=%v", y, err)
			return
		}
		if n, err := y.Read.HandleComplete(ctx, []byte{0xAB}, 0xff); err != nil || n != 1 {
			t.Errorf("read handle_complete: n=%d err=%v", n, err)
		}
	}()

	var reg [1]byte
	if err := adapted.Tx(0x50, []byte{0x10}, nil); err != nil {
		t.Fatalf("write Tx: %v", err)
	}
	if err := adapted.Tx(0x50, nil, reg[:]); err != nil {
		t.Fatalf("read Tx: %v", err)
	}
	if reg[0] != 0xAB {
		t.Fatalf("unexpected read-back value: 0x%02x", reg[0])
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("target goroutine did not finish in time")
	}
}
