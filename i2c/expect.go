package i2c

import "context"

// ExpectKind discriminates the variants of Expect.
type ExpectKind int

const (
	ExpectDeselect ExpectKind = iota
	// ExpectRead/ExpectWrite are the "wrong direction or wrong address"
	// fallback variants: the base Yield is reported unchanged so the
	// caller can still service it (or drop it, NACKing the address).
	ExpectRead
	ExpectWrite
	ExpectCompleteRead
	ExpectPartialRead
	ExpectCompleteWrite
	ExpectPartialWrite
)

// Expect is the result of ListenExpectWrite/ListenExpectRead/
// ListenExpectEither: like Yield, but a matching transaction has already
// had HandlePart applied to the caller-supplied buffer.
type Expect struct {
	Kind    ExpectKind
	Address Address // set for ExpectRead/ExpectWrite
	Size    int      // set for ExpectComplete{Read,Write}
	Read    ReadHandle  // set for ExpectPartialRead/ExpectRead
	Write   WriteHandle // set for ExpectPartialWrite/ExpectWrite
}

func expectFromYield(y Yield) Expect {
	switch y.Kind {
	case YieldDeselect:
		return Expect{Kind: ExpectDeselect}
	case YieldRead:
		return Expect{Kind: ExpectRead, Address: y.Address, Read: y.Read}
	case YieldWrite:
		return Expect{Kind: ExpectWrite, Address: y.Address, Write: y.Write}
	default:
		misuse("invalid yield kind %d", y.Kind)
		panic("unreachable")
	}
}

// ListenExpectWrite listens for a transaction, and if it is a write
// addressed to expected, immediately applies HandlePart(writeBuffer) to
// it. Any other outcome (deselect, a read, or a write to a different
// address) is returned as-is via the ExpectRead/ExpectWrite/ExpectDeselect
// fallback variants.
func ListenExpectWrite(ctx context.Context, t Target, expected Address, writeBuffer []byte) (Expect, error) {
	if accel, ok := t.(ExpectWriteListener); ok {
		return accel.ListenExpectWrite(ctx, expected, writeBuffer)
	}
	y, err := t.Listen(ctx)
	if err != nil {
		return Expect{}, err
	}
	if y.Kind == YieldWrite && y.Address.Equal(expected) {
		res, err := y.Write.HandlePart(ctx, writeBuffer)
		if err != nil {
			return Expect{}, err
		}
		if res.Done {
			return Expect{Kind: ExpectCompleteWrite, Size: res.N}, nil
		}
		return Expect{Kind: ExpectPartialWrite, Write: y.Write}, nil
	}
	return expectFromYield(y), nil
}

// ListenExpectRead is the read-direction analog of ListenExpectWrite.
func ListenExpectRead(ctx context.Context, t Target, expected Address, readBuffer []byte) (Expect, error) {
	if accel, ok := t.(ExpectReadListener); ok {
		return accel.ListenExpectRead(ctx, expected, readBuffer)
	}
	y, err := t.Listen(ctx)
	if err != nil {
		return Expect{}, err
	}
	if y.Kind == YieldRead && y.Address.Equal(expected) {
		res, err := y.Read.HandlePart(ctx, readBuffer)
		if err != nil {
			return Expect{}, err
		}
		if res.Done {
			return Expect{Kind: ExpectCompleteRead, Size: res.N}, nil
		}
		return Expect{Kind: ExpectPartialRead, Read: y.Read}, nil
	}
	return expectFromYield(y), nil
}

// ListenExpectEither listens without committing to a direction up front:
// whichever direction the controller actually chose (its R/W bit) decides
// which buffer is consulted. A write is only matched against writeBuffer, a
// read only against readBuffer; the other buffer is ignored for that call.
func ListenExpectEither(ctx context.Context, t Target, expected Address, writeBuffer, readBuffer []byte) (Expect, error) {
	if accel, ok := t.(ExpectEitherListener); ok {
		return accel.ListenExpectEither(ctx, expected, writeBuffer, readBuffer)
	}
	y, err := t.Listen(ctx)
	if err != nil {
		return Expect{}, err
	}
	switch {
	case y.Kind == YieldWrite && y.Address.Equal(expected):
		res, err := y.Write.HandlePart(ctx, writeBuffer)
		if err != nil {
			return Expect{}, err
		}
		if res.Done {
			return Expect{Kind: ExpectCompleteWrite, Size: res.N}, nil
		}
		return Expect{Kind: ExpectPartialWrite, Write: y.Write}, nil
	case y.Kind == YieldRead && y.Address.Equal(expected):
		res, err := y.Read.HandlePart(ctx, readBuffer)
		if err != nil {
			return Expect{}, err
		}
		if res.Done {
			return Expect{Kind: ExpectCompleteRead, Size: res.N}, nil
		}
		return Expect{Kind: ExpectPartialRead, Read: y.Read}, nil
	default:
		return expectFromYield(y), nil
	}
}
