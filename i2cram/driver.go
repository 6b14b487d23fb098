package i2cram

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/tweedegolf/embedded-hal-i2c/errcode"
	"github.com/tweedegolf/embedded-hal-i2c/i2c"
)

// ErrOutOfBounds is returned when the target NACKs a request because the
// address register fell outside the RAM's capacity.
var ErrOutOfBounds error = &errcode.E{C: errcode.OutOfBounds, Op: "i2cram", Msg: "address out of bounds"}

// writeChunkSize is the number of data bytes sent per write transaction, the
// same chunking the reference driver uses to keep any one transaction small.
const writeChunkSize = 16

// Client is the controller-side driver for a Target reachable at address
// over c.
type Client struct {
	c       i2c.Controller
	address i2c.Address
}

// NewClient builds a Client addressing a Target over c.
func NewClient(c i2c.Controller, address i2c.Address) *Client {
	return &Client{c: c, address: address}
}

// Read positions the RAM's cursor at address and reads len(buf) bytes into
// buf in one combined write-then-restart-read transaction. A NACK arising
// from an out-of-range address is reported as ErrOutOfBounds.
func (cl *Client) Read(ctx context.Context, address uint16, buf []byte) error {
	var addrBytes [2]byte
	binary.LittleEndian.PutUint16(addrBytes[:], address)
	err := i2c.WriteRead(ctx, cl.c, cl.address, addrBytes[:], buf)
	return mapNack(err)
}

// Write stores buf starting at address, split into writeChunkSize-byte
// pages each prefixed with its own little-endian address register, mirroring
// the reference driver's chunking.
func (cl *Client) Write(ctx context.Context, address uint16, buf []byte) error {
	var chunkBuf [2 + writeChunkSize]byte

	for i := 0; i < len(buf); i += writeChunkSize {
		end := i + writeChunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunk := buf[i:end]

		chunkAddress := address + uint16(i)
		binary.LittleEndian.PutUint16(chunkBuf[:2], chunkAddress)
		n := copy(chunkBuf[2:], chunk)

		if err := i2c.Write(ctx, cl.c, cl.address, chunkBuf[:2+n]); err != nil {
			return mapNack(err)
		}
	}
	return nil
}

func mapNack(err error) error {
	var nack *i2c.NackError
	if errors.As(err, &nack) {
		return ErrOutOfBounds
	}
	return err
}
