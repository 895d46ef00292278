// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry tracks the reserved precompile address range this
// module occupies, the same AddressRange/Contains/sorted-insertion pattern
// the teacher's module registerer used, scoped to the single verifier
// precompile spec.md 6 describes instead of a general module table.
package registry

import (
	"errors"
	"sort"

	"github.com/luxfi/geth/common"
)

var (
	ErrOverlappingRange = errors.New("registry: address range overlaps an existing entry")
	ErrNotRegistered    = errors.New("registry: address not in any registered range")
)

// AddressRange is an inclusive [Start,End] span of precompile addresses.
type AddressRange struct {
	Start, End common.Address
}

// Contains reports whether addr falls within r.
func (r AddressRange) Contains(addr common.Address) bool {
	return bytesCmp(addr, r.Start) >= 0 && bytesCmp(addr, r.End) <= 0
}

func bytesCmp(a, b common.Address) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Entry binds one registered address range to the name of the precompile
// serving it.
type Entry struct {
	Range AddressRange
	Name  string
}

// Registry is a sorted, non-overlapping table of reserved address ranges.
type Registry struct {
	entries []Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds name at r, rejecting any overlap with an already
// registered range.
func (reg *Registry) Register(name string, r AddressRange) error {
	for _, e := range reg.entries {
		if bytesCmp(r.Start, e.Range.End) <= 0 && bytesCmp(r.End, e.Range.Start) >= 0 {
			return ErrOverlappingRange
		}
	}

	reg.entries = append(reg.entries, Entry{Range: r, Name: name})
	sort.Slice(reg.entries, func(i, j int) bool {
		return bytesCmp(reg.entries[i].Range.Start, reg.entries[j].Range.Start) < 0
	})
	return nil
}

// Lookup returns the entry whose range contains addr.
func (reg *Registry) Lookup(addr common.Address) (Entry, error) {
	for _, e := range reg.entries {
		if e.Range.Contains(addr) {
			return e, nil
		}
	}
	return Entry{}, ErrNotRegistered
}

// Entries returns a copy of the registered entries in address order.
func (reg *Registry) Entries() []Entry {
	out := make([]Entry, len(reg.entries))
	copy(out, reg.entries)
	return out
}
