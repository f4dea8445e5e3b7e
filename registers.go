// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"fmt"
)

// AccessMode describes whether a register can be read from or written to the
// chip. Registers marked AccessNone exist in the datasheet but are not usable
// over SPI (e.g. the UART-only SLAVECONF).
type AccessMode uint8

const (
	AccessNone      AccessMode = 0x0
	AccessRead      AccessMode = 0x1
	AccessWrite     AccessMode = 0x2
	AccessReadWrite AccessMode = AccessRead | AccessWrite
)

// regKind is the closed set of register encodings. Every node operation
// dispatches on it with a single switch, so a new kind shows up as a missing
// case rather than a silent fallthrough.
type regKind uint8

const (
	kindBranch   regKind = iota // plain container node, holds no value
	kindRaw                     // 32 bit value with no further interpretation
	kindUnsigned                // width-limited unsigned integer
	kindSigned                  // width-limited two's complement integer
	kindMixed                   // bit flags plus optional subfield children
	kindEnum                    // value restricted to a finite named set
	kindSubfield                // bit-range view into a mixed parent
	kindStatus                  // pseudo register for the per-exchange status byte
	kindValue                   // driver setting held in the tree, no chip address
)

// flagDef names one bit of a flag register.
type flagDef struct {
	mask uint32
	name string
}

// enumDef names one legal value of an enum register or enum subfield.
type enumDef struct {
	value uint32
	name  string
}

// subDef describes a numeric or enum field embedded in a mixed register.
type subDef struct {
	name   string
	lowBit uint
	bits   uint
	enum   []enumDef // nil for plain integer fields
}

// regDef is the static description of one chip register.
type regDef struct {
	name   string
	addr   uint8
	access AccessMode
	kind   regKind
	bits   uint      // significant bits for kindUnsigned/kindSigned
	max    uint32    // optional override of the unsigned upper bound
	flags  []flagDef // flag vocabulary for kindMixed/kindStatus
	enum   []enumDef // value set for kindEnum
	subs   []subDef  // subfield children for kindMixed
}

// Node is one element of a register tree: a chip register, a bit-range view
// into one, a driver setting, or a plain container.
//
// A node caches the last value seen on or sent to the chip; Value never
// performs I/O and is stale until an exchange refreshes it. Subfield nodes
// hold no value of their own, they operate on the cached value of their
// parent register.
type Node struct {
	tree     *Tree
	id       int
	parent   int // -1 for the root
	name     string
	children []int
	index    map[string]int

	kind     regKind
	def      *regDef
	sub      *subDef
	value    uint32 // raw cached value, in the chip's encoding
	min      int64
	max      int64
	mask     uint32
	flagMask uint32
}

// newRegister attaches a node for def under parent, including any subfield
// children.
func newRegister(t *Tree, parent *Node, def *regDef) (*Node, error) {
	n, err := t.attach(parent, def.name, def.kind)
	if err != nil {
		return nil, err
	}
	n.def = def
	switch def.kind {
	case kindRaw, kindStatus:
		n.mask = 0xFFFFFFFF
	case kindUnsigned:
		n.mask = widthMask(def.bits)
		n.max = int64(n.mask)
		if def.max != 0 {
			n.max = int64(def.max)
		}
	case kindSigned:
		n.mask = widthMask(def.bits)
		n.max = int64(1)<<(def.bits-1) - 1
		n.min = -n.max - 1
	case kindMixed:
		n.mask = 0xFFFFFFFF
		for _, f := range def.flags {
			n.flagMask |= f.mask
		}
	case kindEnum:
		n.mask = 0xFFFFFFFF
	}
	if def.kind == kindStatus {
		for _, f := range def.flags {
			n.flagMask |= f.mask
		}
	}
	for i := range def.subs {
		sd := &def.subs[i]
		c, err := t.attach(n, sd.name, kindSubfield)
		if err != nil {
			return nil, err
		}
		c.sub = sd
		c.mask = widthMask(sd.bits) << sd.lowBit
	}
	return n, nil
}

func widthMask(bits uint) uint32 {
	return uint32(uint64(1)<<bits - 1)
}

// Value returns the node's cached value: the last value read from the chip
// for readable registers, or the last value queued for writing. Signed
// registers are sign extended, subfields are extracted from their parent.
// Value never performs I/O.
func (n *Node) Value() int64 {
	switch n.kind {
	case kindSigned:
		return signExtend(n.value&n.mask, n.def.bits)
	case kindSubfield:
		p := n.parentNode()
		return int64((p.value & n.mask) >> n.sub.lowBit)
	default:
		return int64(n.value)
	}
}

// SetValue validates value against the node's kind and bounds and stores its
// raw encoding in the cache (for subfields, in the parent's cache). It does
// not touch the chip; use WriteRegister or a batch for that.
func (n *Node) SetValue(value int64) error {
	switch n.kind {
	case kindRaw:
		n.value = uint32(value)
	case kindUnsigned, kindSigned:
		if value < n.min || value > n.max {
			return fmt.Errorf("%w: %d is outside [%d,%d] for %s", ErrValueRange, value, n.min, n.max, n.name)
		}
		n.value = uint32(value) & n.mask
	case kindMixed, kindValue:
		n.value = uint32(value)
	case kindEnum:
		raw := uint32(value)
		if !n.enumMember(raw) {
			return fmt.Errorf("%w: %d is not a %s value", ErrUnknownEnumValue, value, n.name)
		}
		n.value = raw
	case kindSubfield:
		if value < 0 || value > int64(widthMask(n.sub.bits)) {
			return fmt.Errorf("%w: %d does not fit in %d bits for %s", ErrValueRange, value, n.sub.bits, n.name)
		}
		if n.sub.enum != nil && !n.enumMember(uint32(value)) {
			return fmt.Errorf("%w: %d is not a %s value", ErrUnknownEnumValue, value, n.name)
		}
		p := n.parentNode()
		p.value = p.value&^n.mask | uint32(value)<<n.sub.lowBit
	default:
		return fmt.Errorf("%w: %s holds no value", ErrNotWritable, n.name)
	}
	return nil
}

func (n *Node) enumMember(raw uint32) bool {
	set := n.sub.enumSet()
	if n.def != nil {
		set = n.def.enum
	}
	for _, e := range set {
		if e.value == raw {
			return true
		}
	}
	return false
}

func (s *subDef) enumSet() []enumDef {
	if s == nil {
		return nil
	}
	return s.enum
}

// TestFlag reports whether every requested flag bit is set in the cached
// value.
func (n *Node) TestFlag(bits uint32) bool {
	return n.value&bits == bits
}

// SetFlag sets or clears flag bits in the cached value, leaving subfield bits
// of the register untouched. The bits must belong to the register's flag
// vocabulary.
func (n *Node) SetFlag(bits uint32, on bool) error {
	if err := n.checkFlags(bits); err != nil {
		return err
	}
	flags := n.value & n.flagMask
	if on {
		flags |= bits
	} else {
		flags &^= bits
	}
	n.value = n.value&^n.flagMask | flags
	return nil
}

// ToggleFlag inverts flag bits in the cached value.
func (n *Node) ToggleFlag(bits uint32) error {
	if err := n.checkFlags(bits); err != nil {
		return err
	}
	n.value ^= bits & n.flagMask
	return nil
}

func (n *Node) checkFlags(bits uint32) error {
	if n.flagMask == 0 {
		return fmt.Errorf("%w: %s has no flag vocabulary", ErrValueRange, n.name)
	}
	if bits&^n.flagMask != 0 {
		return fmt.Errorf("%w: %#x has bits outside the %s flags", ErrValueRange, bits, n.name)
	}
	return nil
}

// FlagNames returns the names of the vocabulary flags set in bits, in
// declaration order.
func (n *Node) FlagNames(bits uint32) []string {
	if n.def == nil {
		return nil
	}
	var names []string
	for _, f := range n.def.flags {
		if bits&f.mask == f.mask {
			names = append(names, f.name)
		}
	}
	return names
}

// readable reports whether the register, or its parent for subfields, can be
// read over SPI.
func (n *Node) readable() bool {
	if n.kind == kindSubfield {
		return n.parentNode().readable()
	}
	return n.def != nil && n.def.access&AccessRead != 0
}

// readFrame fills buf with the read datagram for the register. Subfields
// read through their parent register.
func (n *Node) readFrame(buf []byte) error {
	if n.kind == kindSubfield {
		return n.parentNode().readFrame(buf)
	}
	if !n.readable() {
		return fmt.Errorf("%w: register %s", ErrNotReadable, n.name)
	}
	packFrame(buf, n.def.addr, false, 0)
	return nil
}

// writeFrame fills buf with the write datagram carrying the cached value.
// Subfields write their whole parent register, which holds the assembled
// value.
func (n *Node) writeFrame(buf []byte) error {
	if n.kind == kindSubfield {
		return n.parentNode().writeFrame(buf)
	}
	if n.def == nil || n.def.access&AccessWrite == 0 {
		return fmt.Errorf("%w: register %s", ErrNotWritable, n.name)
	}
	packFrame(buf, n.def.addr, true, n.value&n.mask)
	return nil
}

// loadFrame decodes a response datagram into the cache. On a validation
// failure the previous cached value is kept.
func (n *Node) loadFrame(buf []byte) error {
	if n.kind == kindSubfield {
		return n.parentNode().loadFrame(buf)
	}
	if n.def == nil || n.def.access&AccessRead == 0 {
		return fmt.Errorf("%w: register %s", ErrNotReadable, n.name)
	}
	raw := unpackValue(buf)
	switch n.kind {
	case kindRaw, kindMixed:
		n.value = raw
	case kindUnsigned:
		raw &= n.mask
		if int64(raw) > n.max {
			return fmt.Errorf("%w: %d is outside [%d,%d] for %s", ErrValueRange, raw, n.min, n.max, n.name)
		}
		n.value = raw
	case kindSigned:
		n.value = raw & n.mask
	case kindEnum:
		if !n.enumMember(raw) {
			return fmt.Errorf("%w: %#x is not a %s value", ErrUnknownEnumValue, raw, n.name)
		}
		n.value = raw
	default:
		return fmt.Errorf("%w: register %s", ErrNotReadable, n.name)
	}
	return nil
}

// loadByte records the status byte that prefixes every response datagram.
func (n *Node) loadByte(b byte) {
	n.value = uint32(b)
}
