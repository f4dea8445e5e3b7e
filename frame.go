// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"encoding/binary"
)

// frameLen is the fixed size of a TMC51xx SPI datagram: one address/control
// byte followed by 32 bits of data, MSB first.
const frameLen = 5

// writeBit marks the address byte of a write datagram.
const writeBit = 0x80

// packFrame fills buf with a 5 byte datagram for the given register address.
// The caller masks value to the register width first so that the sign bits of
// a negative value do not leak beyond it.
func packFrame(buf []byte, addr uint8, write bool, value uint32) {
	buf[0] = addr &^ writeBit
	if write {
		buf[0] |= writeBit
	}
	binary.BigEndian.PutUint32(buf[1:frameLen], value)
}

// unpackValue reassembles the data bytes of a response datagram.
func unpackValue(buf []byte) uint32 {
	return binary.BigEndian.Uint32(buf[1:frameLen])
}

// signExtend reinterprets a width-limited raw value as two's complement.
// bits must be in [2,32].
func signExtend(raw uint32, bits uint) int64 {
	v := int64(raw)
	if raw&(1<<(bits-1)) != 0 {
		v -= int64(1) << bits
	}
	return v
}
