// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps a state key to the permissions a transaction holds over it.
// Use [Add] rather than assignment so permissions requested by multiple
// instructions are unioned instead of overwritten.
type Keys map[string]Permissions

type Permissions byte

func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

// Writes returns true if [p] allows any mutation.
func (p Permissions) Writes() bool {
	return p&(Allocate|Write)&^Read != 0
}

func (p Permissions) String() string {
	switch p {
	case None:
		return "none"
	case Read:
		return "read"
	}
	parts := make([]string, 0, 3)
	if p.Has(Read) {
		parts = append(parts, "read")
	}
	if p.Has(Allocate) {
		parts = append(parts, "allocate")
	}
	if p.Has(Write) {
		parts = append(parts, "write")
	}
	return strings.Join(parts, "|")
}

// Sorted returns the keys in a deterministic order, used for lock
// acquisition.
func (k Keys) Sorted() []string {
	out := maps.Keys(k)
	sort.Strings(out)
	return out
}

// Conflicts returns true if [k] and [o] share a key that either side may
// mutate.
func (k Keys) Conflicts(o Keys) bool {
	small, large := k, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for name, p := range small {
		q, ok := large[name]
		if !ok {
			continue
		}
		if p.Writes() || q.Writes() {
			return true
		}
	}
	return false
}
