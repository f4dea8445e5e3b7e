// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

import (
	"fmt"
	"strings"
)

// pathSep separates the segments of a hierarchic node path, e.g.
// "chipregs/IHOLD_IRUN/IRUN". A leading separator restarts navigation at the
// tree root and ".." moves to the parent, so "chipregs/../chipregs/VMAX" and
// "chipregs/VMAX" name the same node.
const pathSep = "/"

// Tree is a hierarchic namespace of register nodes.
//
// Nodes live in a flat arena indexed by id; parent and child links are ids
// rather than pointers, so the structure stays acyclic while still allowing
// ".." navigation. Children keep insertion order, which follows the
// declaration order of the register table.
type Tree struct {
	nodes []*Node
}

func newTree(rootName string) *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &Node{
		tree:   t,
		id:     0,
		parent: -1,
		name:   rootName,
		kind:   kindBranch,
		index:  map[string]int{},
	})
	return t
}

func (t *Tree) root() *Node {
	return t.nodes[0]
}

// attach creates a new node under parent. Siblings must not share a name.
func (t *Tree) attach(parent *Node, name string, kind regKind) (*Node, error) {
	if _, ok := parent.index[name]; ok {
		return nil, fmt.Errorf("%w: %s already has a child %s", ErrDuplicateName, parent.name, name)
	}
	n := &Node{
		tree:   t,
		id:     len(t.nodes),
		parent: parent.id,
		name:   name,
		kind:   kind,
		index:  map[string]int{},
	}
	t.nodes = append(t.nodes, n)
	parent.children = append(parent.children, n.id)
	parent.index[name] = n.id
	return n, nil
}

// Name returns the node's own name.
func (n *Node) Name() string {
	return n.name
}

// Path returns the full hierarchic name of the node from the tree root.
func (n *Node) Path() string {
	if n.parent < 0 {
		return n.name
	}
	return n.tree.nodes[n.parent].Path() + pathSep + n.name
}

// Children returns the names of the node's children in insertion order.
func (n *Node) Children() []string {
	names := make([]string, len(n.children))
	for i, id := range n.children {
		names[i] = n.tree.nodes[id].name
	}
	return names
}

// Resolve navigates from the node to the one named by path. Navigation only
// looks nodes up, it never creates them; a missing segment is an error naming
// the segment and the names that would have matched.
func (n *Node) Resolve(path string) (*Node, error) {
	cur := n
	for _, seg := range strings.Split(path, pathSep) {
		switch seg {
		case "":
			cur = n.tree.root()
		case "..":
			if cur.parent < 0 {
				return nil, fmt.Errorf("%w: no parent above %s", ErrNotFound, cur.name)
			}
			cur = n.tree.nodes[cur.parent]
		default:
			id, ok := cur.index[seg]
			if !ok {
				return nil, fmt.Errorf("%w: %s not among %v", ErrNotFound, seg, cur.Children())
			}
			cur = n.tree.nodes[id]
		}
	}
	return cur, nil
}

func (n *Node) parentNode() *Node {
	if n.parent < 0 {
		return nil
	}
	return n.tree.nodes[n.parent]
}
