// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"errors"
	"strings"
	"testing"
)

func testDev(t *testing.T, variant Variant) *Dev {
	t.Helper()
	table := tmc5130Regs
	if variant == TMC5160 {
		table = tmc5160Regs
	}
	opts := DefaultOpts
	d, err := newDev(nil, variant, table, &opts)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestResolveEquivalentPaths(t *testing.T) {
	d := testDev(t, TMC5130)
	paths := []string{
		"chipregs/VMAX",
		"chipregs/../chipregs/VMAX",
		"chipregs/IHOLD_IRUN/../VMAX",
		"/chipregs/VMAX",
		"settings/../chipregs/VMAX",
	}
	want, err := d.Resolve(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range paths[1:] {
		n, err := d.Resolve(p)
		if err != nil {
			t.Errorf("Resolve(%q): %v", p, err)
			continue
		}
		if n != want {
			t.Errorf("Resolve(%q) = %s, want %s", p, n.Path(), want.Path())
		}
	}
}

func TestResolveRelative(t *testing.T) {
	d := testDev(t, TMC5130)
	ihold, err := d.Register("IHOLD_IRUN/IHOLD")
	if err != nil {
		t.Fatal(err)
	}
	irun, err := ihold.Resolve("../IRUN")
	if err != nil {
		t.Fatal(err)
	}
	if got := irun.Path(); got != "TMC5130/chipregs/IHOLD_IRUN/IRUN" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	d := testDev(t, TMC5130)
	_, err := d.Register("IHOLD_IRUN/NOSUCH")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	// The error names the failing segment and the available children.
	for _, s := range []string{"NOSUCH", "IHOLD", "IRUN", "IHOLDDELAY"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %q", err, s)
		}
	}
	if _, err := d.tree.root().Resolve("../x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("parent of root: got %v, want ErrNotFound", err)
	}
}

func TestAttachDuplicate(t *testing.T) {
	tr := newTree("dup")
	if _, err := tr.attach(tr.root(), "a", kindBranch); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.attach(tr.root(), "a", kindBranch); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestChildrenOrder(t *testing.T) {
	d := testDev(t, TMC5130)
	regs, err := d.Resolve("chipregs")
	if err != nil {
		t.Fatal(err)
	}
	names := regs.Children()
	if len(names) != len(tmc5130Regs)+1 {
		t.Fatalf("got %d children, want %d", len(names), len(tmc5130Regs)+1)
	}
	// SHORTSTAT comes first, then the table in declaration order.
	if names[0] != "SHORTSTAT" {
		t.Errorf("first child is %q, want SHORTSTAT", names[0])
	}
	for i, def := range tmc5130Regs {
		if names[i+1] != def.name {
			t.Errorf("child %d is %q, want %q", i+1, names[i+1], def.name)
		}
	}
	sub, err := d.Register("IHOLD_IRUN")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"IHOLD", "IRUN", "IHOLDDELAY"}
	got := sub.Children()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subfield %d is %q, want %q", i, got[i], want[i])
		}
	}
}
