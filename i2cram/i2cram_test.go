package i2cram

import (
	"context"
	"errors"
	"testing"

	"github.com/tweedegolf/embedded-hal-i2c/i2csim"
)

func runTarget() (*Client, func()) {
	ctrl, tgt := i2csim.NewSimulator()
	target := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		target.Run(ctx, tgt)
	}()
	return NewClient(ctrl, TargetAddr), func() {
		cancel()
		<-done
	}
}

func TestBasicReadWrite(t *testing.T) {
	client, stop := runTarget()
	defer stop()
	ctx := context.Background()

	buf := make([]byte, 513)
	if err := client.Read(ctx, 0, buf); err != nil {
		t.Fatalf("initial read: %v", err)
	}
	for i, b := range buf[:512] {
		if b != 0 {
			t.Fatalf("byte %d: expected zero, got 0x%02x", i, b)
		}
	}
	if buf[512] != 0xFF {
		t.Fatalf("overrun byte: expected 0xFF, got 0x%02x", buf[512])
	}

	if err := client.Read(ctx, 513, buf); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for an out-of-range read, got %v", err)
	}

	data := make([]byte, 8)
	for i := range data {
		data[i] = byte(i)
	}
	if err := client.Write(ctx, 0, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	readback := make([]byte, 16)
	if err := client.Read(ctx, 0, readback); err != nil {
		t.Fatalf("readback: %v", err)
	}
	for i, b := range readback[:8] {
		if b != data[i] {
			t.Fatalf("byte %d: expected 0x%02x, got 0x%02x", i, data[i], b)
		}
	}
	for i, b := range readback[8:] {
		if b != 0 {
			t.Fatalf("byte %d: expected zero, got 0x%02x", 8+i, b)
		}
	}
}
