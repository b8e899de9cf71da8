// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

// InternedString is a string that has been deduplicated against every
// other string seen by the same Interner, so equal values share one
// underlying allocation for the lifetime of a single parse/lower call.
// It is never shared across concurrent parses — each call to Build
// constructs its own Interner, scoped per parse rather than global.
type InternedString struct {
	value string
}

func (s InternedString) String() string { return s.value }

// Interner deduplicates strings encountered while lowering a single
// dsl.File. It is not safe for concurrent use, and is not meant to be:
// lowering and evaluation never depend on shared mutable state between
// calls.
type Interner struct {
	table map[string]InternedString
}

// NewInterner returns an empty Interner, ready for one lowering pass.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]InternedString)}
}

// Intern returns the InternedString for s, reusing a prior entry with
// the same value if one was already interned by this Interner.
func (in *Interner) Intern(s string) InternedString {
	if existing, ok := in.table[s]; ok {
		return existing
	}
	interned := InternedString{value: s}
	in.table[s] = interned
	return interned
}
