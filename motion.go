// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"context"
	"fmt"
	"math"
	"time"

	"periph.io/x/conn/v3/physic"
)

// The chip expresses velocities in microsteps per 2^24 clock periods, so the
// scale between register units and physical speed depends on the clock
// frequency and the microsteps per revolution.

// VelocityForRPM converts a speed in revolutions per minute to the register
// encoding used by VMAX, V1 and friends.
func (d *Dev) VelocityForRPM(rpm float64) int64 {
	return int64(math.Round(rpm * d.uStepsPerRev() / 60 / d.tconst()))
}

// RPMForVelocity converts a velocity register value back to revolutions per
// minute.
func (d *Dev) RPMForVelocity(velocity int64) float64 {
	return float64(velocity) * 60 * d.tconst() / d.uStepsPerRev()
}

// PositionFor converts a position in revolutions to microsteps as held in
// XACTUAL and XTARGET.
func (d *Dev) PositionFor(revs float64) int64 {
	return int64(math.Round(revs * d.uStepsPerRev()))
}

// RevsForPosition converts a microstep position to revolutions.
func (d *Dev) RevsForPosition(position int64) float64 {
	return float64(position) / d.uStepsPerRev()
}

func (d *Dev) tconst() float64 {
	hz := float64(d.opts.Clock) / float64(physic.Hertz)
	return hz / (1 << 24)
}

func (d *Dev) uStepsPerRev() float64 {
	return float64(d.opts.StepsPerRev) * float64(d.opts.Microsteps)
}

func (d *Dev) rpmToVelocity(rpm float64) (int64, error) {
	v := d.VelocityForRPM(rpm)
	if v < 0 || v > 1<<23-512 {
		return 0, fmt.Errorf("%w: %g rpm encodes as velocity %d", ErrValueRange, rpm, v)
	}
	return v, nil
}

// GoTo ramps the motor to the given position in revolutions. A zero rpm uses
// the configured maximum speed. It returns as soon as the move is programmed;
// use WaitTargetReached to block until the position is reached.
func (d *Dev) GoTo(revs, rpm float64) error {
	if rpm == 0 {
		rpm = float64(d.opts.MaxRPM)
	}
	vmax, err := d.rpmToVelocity(rpm)
	if err != nil {
		return err
	}
	if err := d.EnableDrive(true); err != nil {
		return err
	}
	_, err = d.Batch([]BatchOp{
		{Name: "VMAX", Action: ActionWrite, Value: vmax},
		{Name: "XTARGET", Action: ActionWrite, Value: d.PositionFor(revs)},
		{Name: "RAMPMODE", Action: ActionWrite, Value: int64(RampModePosition)},
	})
	return err
}

// SetVelocity ramps the motor to a constant speed in revolutions per minute.
// Negative values run in reverse.
func (d *Dev) SetVelocity(rpm float64) error {
	vmax, err := d.rpmToVelocity(math.Abs(rpm))
	if err != nil {
		return err
	}
	mode := RampModeVelocityPos
	if rpm < 0 {
		mode = RampModeVelocityNeg
	}
	if err := d.EnableDrive(true); err != nil {
		return err
	}
	_, err = d.Batch([]BatchOp{
		{Name: "VMAX", Action: ActionWrite, Value: vmax},
		{Name: "RAMPMODE", Action: ActionWrite, Value: int64(mode)},
	})
	return err
}

// StopHere stops motion by declaring the current position as the new target.
// The chip ramps down and repositions the rotor back to where it was when the
// call was made. Blocks until the motor stands still, then disables the
// output stage.
func (d *Dev) StopHere(ctx context.Context) error {
	x, err := d.ReadRegister("XACTUAL")
	if err != nil {
		return err
	}
	vmax, err := d.rpmToVelocity(float64(d.opts.MaxRPM))
	if err != nil {
		return err
	}
	if _, err := d.Batch([]BatchOp{
		{Name: "XTARGET", Action: ActionWrite, Value: x},
		{Name: "VMAX", Action: ActionWrite, Value: vmax},
		{Name: "RAMPMODE", Action: ActionWrite, Value: int64(RampModePosition)},
	}); err != nil {
		return err
	}
	if err := d.WaitStop(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	return d.EnableDrive(false)
}

// SoftStop stops motion by switching to positioning mode with VSTART and VMAX
// forced to zero, so the chip ramps down using A1 and AMAX. The previous
// VSTART and VMAX are restored once the motor stands still. See "Early Ramp
// Termination" in the datasheet.
func (d *Dev) SoftStop(ctx context.Context) error {
	vstart, err := d.Register("VSTART")
	if err != nil {
		return err
	}
	vmax, err := d.Register("VMAX")
	if err != nil {
		return err
	}
	oldVStart, oldVMax := vstart.Value(), vmax.Value()
	if _, err := d.Batch([]BatchOp{
		{Name: "RAMPMODE", Action: ActionWrite, Value: int64(RampModePosition)},
		{Name: "VSTART", Action: ActionWrite, Value: 0},
		{Name: "VMAX", Action: ActionWrite, Value: 0},
	}); err != nil {
		return err
	}
	if err := d.WaitStop(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	x, err := d.ReadRegister("XACTUAL")
	if err != nil {
		return err
	}
	if _, err := d.Batch([]BatchOp{
		{Name: "XTARGET", Action: ActionWrite, Value: x},
		{Name: "VSTART", Action: ActionWrite, Value: oldVStart},
		{Name: "VMAX", Action: ActionWrite, Value: oldVMax},
	}); err != nil {
		return err
	}
	return d.EnableDrive(false)
}

// HardStop stops the motor immediately, without a deceleration ramp, by
// arming the reference switch stop function and inverting the switch
// polarities so both appear triggered. See "Early Ramp Termination" in the
// datasheet.
//
// REFL and REFR must be tied to a fixed level for this to work. Avoid hard
// stops at high velocity, the abrupt halt can cause severe overcurrent.
func (d *Dev) HardStop(ctx context.Context) error {
	saved, err := d.ReadRegister("SWMODE")
	if err != nil {
		return err
	}
	sw, err := d.Register("SWMODE")
	if err != nil {
		return err
	}
	if err := sw.SetFlag(SWModeSoftStop, false); err != nil {
		return err
	}
	if err := sw.SetFlag(SWModeStopLEnable|SWModeStopREnable, true); err != nil {
		return err
	}
	if err := sw.ToggleFlag(SWModePolStopL | SWModePolStopR); err != nil {
		return err
	}
	if err := d.WriteRegisterCached("SWMODE"); err != nil {
		return err
	}
	if err := d.WaitStop(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	x, err := d.ReadRegister("XACTUAL")
	if err != nil {
		return err
	}
	if _, err := d.Batch([]BatchOp{
		{Name: "XTARGET", Action: ActionWrite, Value: x},
		{Name: "VMAX", Action: ActionWrite, Value: 0},
	}); err != nil {
		return err
	}
	if err := sw.SetValue(saved); err != nil {
		return err
	}
	if err := d.WriteRegisterCached("SWMODE"); err != nil {
		return err
	}
	return d.EnableDrive(false)
}

// WaitStop polls VACTUAL until the motor reports zero velocity or the context
// is cancelled.
func (d *Dev) WaitStop(ctx context.Context, interval time.Duration) error {
	return d.pollUntil(ctx, interval, func() (bool, error) {
		v, err := d.ReadRegister("VACTUAL")
		return v == 0, err
	})
}

// WaitTargetReached polls the ramp status until the chip reports the target
// position reached or the context is cancelled.
func (d *Dev) WaitTargetReached(ctx context.Context, interval time.Duration) error {
	ramp, err := d.Register("RAMPSTAT")
	if err != nil {
		return err
	}
	return d.pollUntil(ctx, interval, func() (bool, error) {
		if _, err := d.Batch([]BatchOp{{Name: "RAMPSTAT", Action: ActionRead}}); err != nil {
			return false, err
		}
		return ramp.TestFlag(RampStatPosReached), nil
	})
}

func (d *Dev) pollUntil(ctx context.Context, interval time.Duration, done func() (bool, error)) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		ok, err := done()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
