// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

// identityOpts makes the velocity conversion exact: with the chip clock at
// 2^24Hz one velocity unit is one microstep per second.
func identityOpts() Opts {
	opts := DefaultOpts
	opts.Clock = 16777216 * physic.Hertz
	return opts
}

func TestVelocityConversion(t *testing.T) {
	opts := identityOpts()
	d, err := newDev(nil, TMC5130, tmc5130Regs, &opts)
	if err != nil {
		t.Fatal(err)
	}
	// 60rpm is one rev per second, i.e. 200*256 microsteps per second.
	if got := d.VelocityForRPM(60); got != 51200 {
		t.Errorf("60rpm encodes as %d, want 51200", got)
	}
	if got := d.RPMForVelocity(51200); got != 60 {
		t.Errorf("51200 decodes as %grpm, want 60", got)
	}
	for _, rpm := range []float64{7.5, 60, 120} {
		if got := d.RPMForVelocity(d.VelocityForRPM(rpm)); got != rpm {
			t.Errorf("%grpm round trips as %g", rpm, got)
		}
	}
	if got := d.PositionFor(2.5); got != 128000 {
		t.Errorf("2.5 revs is %d microsteps, want 128000", got)
	}
	if got := d.RevsForPosition(-51200); got != -1 {
		t.Errorf("-51200 microsteps is %g revs, want -1", got)
	}
	// Speeds beyond the VMAX ceiling are refused before touching the bus.
	if _, err := d.rpmToVelocity(1e9); !errors.Is(err, ErrValueRange) {
		t.Errorf("got %v, want ErrValueRange", err)
	}
}

func motionDev(t *testing.T, ops []conntest.IO) (*Dev, *spitest.Playback) {
	t.Helper()
	opts := identityOpts()
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: ops, DontPanic: true}}
	d, err := NewSPI(pb, TMC5130, &opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, pb
}

func TestGoTo(t *testing.T) {
	ops := []conntest.IO{
		{W: frame(0x27, true, 51200)},                      // seed: VMAX for 60rpm
		{W: frame(0x2D, true, 51200), R: response(0x08, 0)}, // XTARGET: one rev
		{W: frame(0x20, true, 0), R: response(0x08, 0)},     // RAMPMODE position
		{W: frame(0x20, false, 0), R: response(0x00, 0)},    // flush
	}
	d, pb := motionDev(t, ops)
	if err := d.GoTo(1.0, 60); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetVelocityReverse(t *testing.T) {
	ops := []conntest.IO{
		{W: frame(0x27, true, 51200)},
		{W: frame(0x20, true, uint32(RampModeVelocityNeg)), R: response(0x00, 0)},
		{W: frame(0x20, false, uint32(RampModeVelocityNeg)), R: response(0x00, 0)},
	}
	d, pb := motionDev(t, ops)
	if err := d.SetVelocity(-60); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWaitStop(t *testing.T) {
	// First poll sees motion, second sees standstill.
	ops := []conntest.IO{
		{W: frame(0x22, false, 0)},
		{W: frame(0x22, false, 0), R: response(0x00, 500)},
		{W: frame(0x22, false, 0)},
		{W: frame(0x22, false, 0), R: response(0x08, 0)},
	}
	d, pb := motionDev(t, ops)
	if err := d.WaitStop(context.Background(), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWaitStopCancelled(t *testing.T) {
	ops := []conntest.IO{
		{W: frame(0x22, false, 0)},
		{W: frame(0x22, false, 0), R: response(0x00, 500)},
	}
	d, pb := motionDev(t, ops)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.WaitStop(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWaitTargetReached(t *testing.T) {
	ops := []conntest.IO{
		{W: frame(0x35, false, 0)},
		{W: frame(0x35, false, 0), R: response(0x28, 0x00000200)}, // pos_reached
	}
	d, pb := motionDev(t, ops)
	if err := d.WaitTargetReached(context.Background(), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}
