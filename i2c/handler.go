package i2c

import "context"

// ReadResult is returned by ReadHandle.HandlePart. Done reports whether the
// master ended the read; otherwise the handle remains usable for further
// parts. N counts only the bytes transferred by this call, not those of
// earlier calls on the same handle.
type ReadResult struct {
	Done bool
	N    int
}

// WriteResult is returned by WriteHandle.HandlePart, with the same shape
// and meaning as ReadResult but for the write direction.
type WriteResult struct {
	Done bool
	N    int
}

// ReadHandle services a single in-progress read transaction. Exactly one of
// HandlePart/HandleComplete/Release must be the last call made on a given
// handle; calling any method after the handle has gone terminal is a
// ProtocolMisuse. Release is the explicit stand-in for the reference
// implementation's drop-based NACK: call it to abandon a handle you are
// done with without having driven it to completion yourself.
type ReadHandle interface {
	// HandlePart offers buffer to the master as the next chunk of read
	// data. The address (and any earlier bytes) are acknowledged as a side
	// effect of this call.
	HandlePart(ctx context.Context, buffer []byte) (ReadResult, error)
	// HandleComplete offers buffer, then fills the remainder of the read
	// with ovc until the master ends the transaction.
	HandleComplete(ctx context.Context, buffer []byte, ovc byte) (int, error)
	// Release abandons the handle. If the address was never acknowledged
	// this NACKs the address; otherwise it completes the read with the
	// target's overrun byte. Idempotent.
	Release()
}

// WriteHandle services a single in-progress write transaction, with the
// same lifecycle rules as ReadHandle.
type WriteHandle interface {
	// HandlePart accepts up to len(buffer) bytes from the master,
	// acknowledging all but the last byte received (the last byte is held
	// unacknowledged until the next call, per the wire-level ACK timing
	// invariant).
	HandlePart(ctx context.Context, buffer []byte) (WriteResult, error)
	// HandleComplete accepts up to len(buffer) bytes, acknowledging all of
	// them; any overrun beyond buffer is not acknowledged.
	HandleComplete(ctx context.Context, buffer []byte) (int, error)
	// Release abandons the handle. If the address was never acknowledged
	// this NACKs the address; otherwise it NACKs the last held-but-pending
	// data byte. Idempotent.
	Release()
}

// HandleReadComplete drives h to completion using only HandlePart, the
// default composition a ReadHandle implementation may use for its own
// HandleComplete rather than hand-rolling the loop.
func HandleReadComplete(ctx context.Context, h ReadHandle, buffer []byte, ovc byte) (int, error) {
	res, err := h.HandlePart(ctx, buffer)
	if err != nil {
		return 0, err
	}
	if res.Done {
		return res.N, nil
	}
	total := len(buffer)
	single := [1]byte{ovc}
	for {
		res, err := h.HandlePart(ctx, single[:])
		if err != nil {
			return 0, err
		}
		if res.Done {
			return total + res.N, nil
		}
		total++
	}
}

// HandleWriteComplete drives h to completion using only HandlePart: the
// final held-back byte is acknowledged by offering a throwaway one-byte
// sink, exactly as the reference implementation's default handle_complete
// forces the last byte's ACK before returning.
func HandleWriteComplete(ctx context.Context, h WriteHandle, buffer []byte) (int, error) {
	res, err := h.HandlePart(ctx, buffer)
	if err != nil {
		return 0, err
	}
	if res.Done {
		return res.N, nil
	}
	var sink [1]byte
	res, err = h.HandlePart(ctx, sink[:])
	if err != nil {
		return 0, err
	}
	if !res.Done {
		// The sink byte only forces the ACK of the byte held back by the
		// first HandlePart; if the handle is still not Done, the master
		// wrote more than buffer can hold. Release it so the handle is
		// driven to its NACK/terminal state, mirroring the Rust
		// reference's implicit drop of the discarded Partial(handler).
		h.Release()
	}
	return len(buffer), nil
}
