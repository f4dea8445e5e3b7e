// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"bytes"
	"testing"
)

func TestPackFrame(t *testing.T) {
	var buf [frameLen]byte
	packFrame(buf[:], 0x27, true, 0x00012345)
	if want := []byte{0xA7, 0x00, 0x01, 0x23, 0x45}; !bytes.Equal(buf[:], want) {
		t.Errorf("write frame: got % 02x, want % 02x", buf, want)
	}
	packFrame(buf[:], 0x21, false, 0)
	if want := []byte{0x21, 0x00, 0x00, 0x00, 0x00}; !bytes.Equal(buf[:], want) {
		t.Errorf("read frame: got % 02x, want % 02x", buf, want)
	}
}

func TestUnpackValue(t *testing.T) {
	// The first byte is the status byte and must not leak into the value.
	buf := []byte{0xFF, 0xDE, 0xAD, 0xBE, 0xEF}
	if got := unpackValue(buf); got != 0xDEADBEEF {
		t.Errorf("got %#x, want 0xDEADBEEF", got)
	}
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		raw  uint32
		bits uint
		want int64
	}{
		{0, 24, 0},
		{1, 24, 1},
		{0x7FFFFF, 24, 1<<23 - 1},
		{0x800000, 24, -(1 << 23)},
		{0xFFFFFF, 24, -1},
		{0xFFFFFF9C, 32, -100},
		{0x7FFFFFFF, 32, 1<<31 - 1},
		{0x80000000, 32, -(1 << 31)},
		{0x2, 2, -2},
		{0x1, 2, 1},
	}
	for _, tt := range tests {
		if got := signExtend(tt.raw, tt.bits); got != tt.want {
			t.Errorf("signExtend(%#x, %d): got %d, want %d", tt.raw, tt.bits, got, tt.want)
		}
	}
}

func TestSignExtendRoundTrip(t *testing.T) {
	// Masking a sign extended value and extending it again must be the
	// identity for every representable value at the width boundaries.
	for _, bits := range []uint{2, 8, 16, 24, 32} {
		m := widthMask(bits)
		for _, v := range []int64{0, 1, -1, int64(1)<<(bits-1) - 1, -(int64(1) << (bits - 1))} {
			if got := signExtend(uint32(v)&m, bits); got != v {
				t.Errorf("bits=%d: round trip of %d gave %d", bits, v, got)
			}
		}
	}
}
