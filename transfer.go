// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"fmt"
)

// Action tells a batch what to do with one register.
type Action byte

const (
	// ActionRead reads the register.
	ActionRead Action = 'R'
	// ActionWrite writes the register.
	ActionWrite Action = 'W'
	// ActionUpdate writes the register and reads the value back.
	ActionUpdate Action = 'U'
)

// BatchOp is one register access inside a Batch call.
type BatchOp struct {
	// Name of the register relative to chipregs, e.g. "VMAX".
	Name string
	// Action is what to do with it.
	Action Action
	// Value is the value to write for ActionWrite and ActionUpdate.
	Value int64
	// Cached writes the node's cached value instead of Value. Useful after
	// assembling a register through its subfields or flags.
	Cached bool
}

// Batch reads and writes several registers in one pass over the bus.
//
// The chip pipelines SPI: the response to a datagram carries the data
// requested by the one before it. Batching therefore needs one exchange per
// register plus a single trailing exchange to collect the last response,
// where reading N registers one by one would take 2N exchanges.
//
// The returned map, keyed by the operations' names as given, holds the value
// read back for every ActionRead and ActionUpdate register. The status byte
// prefixing each response is recorded in the SHORTSTAT pseudo register as it
// arrives.
//
// Registers are validated as the batch proceeds, so on error the earlier
// operations have already reached the chip and the failing one has not.
func (d *Dev) Batch(ops []BatchOp) (map[string]int64, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidSetting)
	}
	resp := make(map[string]int64, len(ops))
	var w, r [frameLen]byte

	prev, err := d.prepare(w[:], ops[0])
	if err != nil {
		return nil, err
	}
	prevName := ops[0].Name
	// Seed the pipeline. The response to this exchange answers whatever
	// came before the batch, so it is discarded.
	if err := d.exchange(w[:], nil); err != nil {
		return nil, err
	}
	readback := ops[0].Action != ActionWrite

	for _, op := range ops[1:] {
		n, err := d.prepare(w[:], op)
		if err != nil {
			return nil, err
		}
		if err := d.exchange(w[:], r[:]); err != nil {
			return nil, err
		}
		d.status.loadByte(r[0])
		if readback {
			if err := prev.loadFrame(r[:]); err != nil {
				return nil, err
			}
			resp[prevName] = prev.Value()
		}
		prev, prevName = n, op.Name
		readback = op.Action != ActionWrite
	}

	// Flush the pipeline by repeating the last datagram with the write bit
	// cleared, then collect the trailing response.
	w[0] &^= writeBit
	if err := d.exchange(w[:], r[:]); err != nil {
		return nil, err
	}
	d.status.loadByte(r[0])
	if readback {
		if err := prev.loadFrame(r[:]); err != nil {
			return nil, err
		}
		resp[prevName] = prev.Value()
	}
	d.trace("batch of %d ops done, status %#x", len(ops), d.Status())
	return resp, nil
}

// ReadRegister reads one register from the chip and returns its decoded
// value. For several registers prefer Batch.
func (d *Dev) ReadRegister(name string) (int64, error) {
	resp, err := d.Batch([]BatchOp{{Name: name, Action: ActionRead}})
	if err != nil {
		return 0, err
	}
	return resp[name], nil
}

// WriteRegister validates value against the register and writes it to the
// chip in a single exchange.
func (d *Dev) WriteRegister(name string, value int64) error {
	var w [frameLen]byte
	if _, err := d.prepare(w[:], BatchOp{Name: name, Action: ActionWrite, Value: value}); err != nil {
		return err
	}
	return d.exchange(w[:], nil)
}

// WriteRegisterCached writes the register's cached value to the chip, e.g.
// after setting its subfields or flags.
func (d *Dev) WriteRegisterCached(name string) error {
	var w [frameLen]byte
	if _, err := d.prepare(w[:], BatchOp{Name: name, Action: ActionWrite, Cached: true}); err != nil {
		return err
	}
	return d.exchange(w[:], nil)
}

// prepare resolves one batch operation and fills buf with its datagram.
func (d *Dev) prepare(buf []byte, op BatchOp) (*Node, error) {
	n, err := d.regs.Resolve(op.Name)
	if err != nil {
		return nil, err
	}
	switch op.Action {
	case ActionRead:
		err = n.readFrame(buf)
	case ActionWrite, ActionUpdate:
		// An update wants the value read back later, so the register must
		// be readable too. Catch that here, before any frame goes out.
		if op.Action == ActionUpdate && !n.readable() {
			err = fmt.Errorf("%w: register %s", ErrNotReadable, n.name)
			break
		}
		if !op.Cached {
			if err = n.SetValue(op.Value); err != nil {
				break
			}
		}
		err = n.writeFrame(buf)
	default:
		err = fmt.Errorf("%w: unknown batch action %q", ErrInvalidSetting, op.Action)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// exchange runs one full duplex SPI transaction. r may be nil when the
// response is of no interest.
func (d *Dev) exchange(w, r []byte) error {
	if err := d.c.Tx(w, r); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	d.trace("spi tx % 02x rx % 02x", w, r)
	return nil
}
