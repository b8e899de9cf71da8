// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "github.com/jonhteper/minos-go/query"

// Rule is an AND of Requirements: it holds only if every requirement
// resolves to true. This is the one place the tri-state
// Requirement.Apply result collapses to a plain bool — a None
// (not-applicable) requirement makes the whole rule fail, the same as
// an explicit false.
type Rule struct {
	Requirements []Requirement
}

// Holds evaluates every requirement against actor/resource and
// reports whether all of them held.
func (r Rule) Holds(actor *query.Actor, resource *query.Resource) bool {
	for _, req := range r.Requirements {
		result := req.Apply(actor, resource)
		if result == nil || !*result {
			return false
		}
	}
	return true
}
