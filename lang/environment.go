// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "github.com/jonhteper/minos-go/query"

// Environment is a named group of policies attached to a resource.
// Every resource carries at least the DefaultEnvironment; named
// environments are additional, layered on top of it: DEFAULT is
// always applied first, and a requested named environment's policies
// are appended after.
type Environment struct {
	Name     Identifier
	Policies []Policy
}

// Authorize returns, in policy declaration order, every permission
// granted by a policy in this environment whose rules hold for
// actor/resource. Permissions are not deduplicated here — that is
// left to the caller.
func (e Environment) Authorize(actor *query.Actor, resource *query.Resource) []string {
	var out []string
	for _, policy := range e.Policies {
		out = append(out, policy.Grant(actor, resource)...)
	}
	return out
}

// HasPermission reports whether any policy in this environment both
// declares name and currently applies, short-circuiting on the first
// match.
func (e Environment) HasPermission(name string, actor *query.Actor, resource *query.Resource) bool {
	for _, policy := range e.Policies {
		if policy.HasPermission(name) && policy.Applies(actor, resource) {
			return true
		}
	}
	return false
}
