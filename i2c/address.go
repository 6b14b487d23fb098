// Package i2c defines the target-side transaction contract for an I2C
// peripheral: address types, the handler sub-protocol that binds ACK/NACK
// semantics to handler release, and the Target/Controller interfaces a
// simulator or real driver must satisfy.
package i2c

import "fmt"

// AddressWidth distinguishes 7-bit from 10-bit addressing.
type AddressWidth int

const (
	Width7 AddressWidth = iota
	Width10
)

// Address is an I2C target address, either 7-bit or 10-bit. The zero value
// is not a valid address; construct one with Seven or Ten.
type Address struct {
	width AddressWidth
	value uint16
}

// Seven constructs a 7-bit address.
func Seven(a uint8) Address {
	return Address{width: Width7, value: uint16(a)}
}

// Ten constructs a 10-bit address.
func Ten(a uint16) Address {
	return Address{width: Width10, value: a}
}

func (a Address) Width() AddressWidth { return a.width }

// Value returns the numeric address, regardless of width.
func (a Address) Value() uint16 { return a.value }

// Equal reports whether two addresses have the same width and value. A
// 7-bit and a 10-bit address are never equal even if numerically alike,
// matching AnyAddress's derived Eq in the reference implementation.
func (a Address) Equal(b Address) bool {
	return a.width == b.width && a.value == b.value
}

func (a Address) String() string {
	switch a.width {
	case Width7:
		return fmt.Sprintf("0x%02X", a.value)
	default:
		return fmt.Sprintf("0x%03X(10b)", a.value)
	}
}
