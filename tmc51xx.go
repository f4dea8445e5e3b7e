// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrProtocol is returned when an SPI exchange fails or returns a
	// malformed datagram.
	ErrProtocol = errors.New("protocol failure")

	// ErrNotReadable is returned when reading a register the chip cannot
	// report over SPI.
	ErrNotReadable = errors.New("register is not readable")

	// ErrNotWritable is returned when writing a register the chip does not
	// accept over SPI.
	ErrNotWritable = errors.New("register is not writable")

	// ErrValueRange is returned when a value does not fit the register's
	// declared width or bounds.
	ErrValueRange = errors.New("value out of range")

	// ErrUnknownEnumValue is returned when a value is not in a register's
	// set of named values.
	ErrUnknownEnumValue = errors.New("unknown enum value")

	// ErrNotFound is returned when a path names a node that does not exist.
	ErrNotFound = errors.New("no such register")

	// ErrDuplicateName is returned when a register table declares two
	// siblings with the same name.
	ErrDuplicateName = errors.New("duplicate register name")

	// ErrInvalidSetting is returned when you provide an invalid option or
	// batch action.
	ErrInvalidSetting = errors.New("invalid setting")
)

// TraceFunc receives a printf style trace of every SPI exchange.
type TraceFunc func(format string, v ...interface{})

func noopTrace(string, ...interface{}) {}

// Variant selects the register map of the driven chip.
type Variant string

const (
	TMC5130 Variant = "TMC5130"
	TMC5160 Variant = "TMC5160"
)

// Opts holds the configuration for the device.
type Opts struct {
	// Freq is the SPI bus speed. The chips are specified up to 4MHz with
	// the internal clock.
	Freq physic.Frequency

	// Clock is the clock the chip itself runs at. It scales every velocity
	// and acceleration register. Use the internal clock value from the
	// datasheet unless an external clock is wired up.
	Clock physic.Frequency

	// StepsPerRev is the motor's full steps per revolution.
	StepsPerRev int

	// Microsteps is the microstep resolution, 256 unless CHOPCONF says
	// otherwise.
	Microsteps int

	// MaxRPM is the speed used for motion commands that do not give one.
	MaxRPM int

	// DriveEnable is the pin wired to DRV_ENN, which is active low. Leave
	// nil if the output stage is enabled in hardware.
	DriveEnable gpio.PinOut

	// Name is used as the root of the register tree, to tell chips apart
	// when driving more than one. Defaults to the variant name.
	Name string
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Freq:        1 * physic.MegaHertz,
	Clock:       13200 * physic.KiloHertz, // internal clock, nominal
	StepsPerRev: 200,
	Microsteps:  256,
	MaxRPM:      120,
}

// Dev is a handle to a TMC5130 or TMC5160 motion controller on an SPI port.
//
// All chip registers are exposed as a tree of named nodes under "chipregs",
// so "chipregs/VMAX" is the velocity limit and "chipregs/IHOLD_IRUN/IRUN" the
// run current field inside its register. Driver level settings live under
// "settings" in the same tree.
type Dev struct {
	c       conn.Conn
	variant Variant
	opts    Opts
	tree    *Tree
	regs    *Node // the chipregs branch
	status  *Node // the SHORTSTAT pseudo register
	trace   TraceFunc
}

var _ conn.Resource = &Dev{}

// NewSPI returns an object that communicates with a TMC5130 or TMC5160 over
// SPI.
//
// The chips require SPI mode 3.
func NewSPI(p spi.Port, variant Variant, opts *Opts) (*Dev, error) {
	var table []regDef
	switch variant {
	case TMC5130:
		table = tmc5130Regs
	case TMC5160:
		table = tmc5160Regs
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidSetting, variant)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Clock == 0 || opts.StepsPerRev <= 0 || opts.Microsteps <= 0 {
		return nil, fmt.Errorf("%w: clock, steps per rev and microsteps must be positive", ErrInvalidSetting)
	}
	freq := opts.Freq
	if freq == 0 {
		freq = DefaultOpts.Freq
	}
	c, err := p.Connect(freq, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return newDev(c, variant, table, opts)
}

func newDev(c conn.Conn, variant Variant, table []regDef, opts *Opts) (*Dev, error) {
	name := opts.Name
	if name == "" {
		name = string(variant)
	}
	d := &Dev{
		c:       c,
		variant: variant,
		opts:    *opts,
		tree:    newTree(name),
		trace:   noopTrace,
	}
	regs, err := d.tree.attach(d.tree.root(), "chipregs", kindBranch)
	if err != nil {
		return nil, err
	}
	d.regs = regs
	d.status, err = newRegister(d.tree, regs, &shortStatDef)
	if err != nil {
		return nil, err
	}
	for i := range table {
		if _, err := newRegister(d.tree, regs, &table[i]); err != nil {
			return nil, err
		}
	}
	if err := d.addSettings(); err != nil {
		return nil, err
	}
	return d, nil
}

// shortStatDef is the pseudo register holding the status byte that prefixes
// every response datagram. It has no chip address.
var shortStatDef = regDef{name: "SHORTSTAT", kind: kindStatus, flags: statusFlags}

// addSettings builds the driver settings branch of the tree.
func (d *Dev) addSettings() error {
	s, err := d.tree.attach(d.tree.root(), "settings", kindBranch)
	if err != nil {
		return err
	}
	for _, v := range []struct {
		name  string
		value int64
	}{
		{"stepsPerRev", int64(d.opts.StepsPerRev)},
		{"maxrpm", int64(d.opts.MaxRPM)},
		{"uSteps", int64(d.opts.Microsteps)},
		{"uStepsPerRev", int64(d.opts.StepsPerRev) * int64(d.opts.Microsteps)},
	} {
		n, err := d.tree.attach(s, v.name, kindValue)
		if err != nil {
			return err
		}
		if err := n.SetValue(v.value); err != nil {
			return err
		}
	}
	return nil
}

// EnableTrace arranges for f to receive a line per SPI exchange.
func (d *Dev) EnableTrace(f TraceFunc) {
	if f == nil {
		f = noopTrace
	}
	d.trace = f
}

// Resolve returns the tree node for a path relative to the device root, e.g.
// "chipregs/RAMPSTAT" or "settings/maxrpm".
func (d *Dev) Resolve(path string) (*Node, error) {
	return d.tree.root().Resolve(path)
}

// Register returns the node for a chip register or subfield name, e.g. "VMAX"
// or "IHOLD_IRUN/IRUN".
func (d *Dev) Register(name string) (*Node, error) {
	return d.regs.Resolve(name)
}

// Status returns the status byte of the most recent response datagram.
func (d *Dev) Status() uint8 {
	return uint8(d.status.Value())
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s}", d.tree.root().Name(), d.c)
}

// Halt disables the chip's output stage so the motor freewheels.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return d.EnableDrive(false)
}

// EnableDrive drives the DRV_ENN pin, which is active low. It is a no-op when
// no drive enable pin was configured.
func (d *Dev) EnableDrive(enabled bool) error {
	if d.opts.DriveEnable == nil {
		return nil
	}
	l := gpio.High
	if enabled {
		l = gpio.Low
	}
	return d.opts.DriveEnable.Out(l)
}

// Init clears latching status flags, reads the chip version, switches on
// stealthChop and programs a conservative motion ramp, with VMAX derived from
// the configured maximum speed. Call it once after power up, then adjust
// individual registers as needed.
func (d *Dev) Init() error {
	ihold, err := d.Register("IHOLD_IRUN")
	if err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value int64
	}{
		{"IHOLD", 10},
		{"IRUN", 15},
		{"IHOLDDELAY", 8},
	} {
		n, err := ihold.Resolve(f.name)
		if err != nil {
			return err
		}
		if err := n.SetValue(f.value); err != nil {
			return err
		}
	}
	vmax, err := d.rpmToVelocity(float64(d.opts.MaxRPM))
	if err != nil {
		return err
	}
	_, err = d.Batch([]BatchOp{
		{Name: "GSTAT", Action: ActionRead},
		{Name: "IOIN", Action: ActionRead},
		{Name: "GCONF", Action: ActionUpdate, Value: int64(GCONFEnPWMMode)},
		{Name: "CHOPCONF", Action: ActionWrite, Value: 0x000100C3},
		{Name: "IHOLD_IRUN", Action: ActionWrite, Cached: true},
		{Name: "TPOWERDOWN", Action: ActionWrite, Value: 10},
		{Name: "TPWMTHRS", Action: ActionWrite, Value: 0x1F4},
		{Name: "VSTART", Action: ActionWrite, Value: 30},
		{Name: "A1", Action: ActionWrite, Value: 1500},
		{Name: "V1", Action: ActionWrite, Value: 100000},
		{Name: "AMAX", Action: ActionWrite, Value: 1000},
		{Name: "VMAX", Action: ActionWrite, Value: vmax},
		{Name: "DMAX", Action: ActionWrite, Value: 1100},
		{Name: "D1", Action: ActionWrite, Value: 600},
		{Name: "VSTOP", Action: ActionWrite, Value: 40},
	})
	return err
}
