// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "github.com/jonhteper/minos-go/query"

// Policy is a set of permissions granted when at least one of its
// rules holds. Multiple rule blocks inside one policy are ORed
// together — a policy with no rules at all never fires, since there
// is no rule for "at least one" to range over.
type Policy struct {
	Permissions []string
	Rules       []Rule

	// permissionSet backs HasPermission's fast path: an O(1) pre-check
	// of whether this policy even names the requested permission,
	// avoiding a Rule.Holds evaluation entirely when it does not.
	permissionSet map[string]struct{}
}

// NewPolicy builds a Policy and its permission-membership index.
func NewPolicy(permissions []string, rules []Rule) Policy {
	set := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return Policy{Permissions: permissions, Rules: rules, permissionSet: set}
}

// HasPermission reports whether name is among the permissions this
// policy declares, independent of whether its rules currently hold.
func (p Policy) HasPermission(name string) bool {
	_, ok := p.permissionSet[name]
	return ok
}

// Applies reports whether at least one rule in the policy holds for
// the given actor/resource pair. A policy with no rules never
// applies.
func (p Policy) Applies(actor *query.Actor, resource *query.Resource) bool {
	for _, rule := range p.Rules {
		if rule.Holds(actor, resource) {
			return true
		}
	}
	return false
}

// Grant returns the policy's permissions if it applies, or nil
// otherwise.
func (p Policy) Grant(actor *query.Actor, resource *query.Resource) []string {
	if !p.Applies(actor, resource) {
		return nil
	}
	return p.Permissions
}
