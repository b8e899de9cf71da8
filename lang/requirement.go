// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "github.com/jonhteper/minos-go/query"

// Requirement is one condition inside a Rule: `Left Op Right`. Left
// must always be an actor or resource attribute reference — lowering
// rejects any other form with errors.InvalidToken — while Right may
// be either kind of attribute reference or a literal Value.
type Requirement struct {
	Left  Value
	Op    Operator
	Right Value
}

type valueKind int

const (
	kindSingle valueKind = iota
	kindMulti
)

// attrSide marks which query object, if any, an operand's value was
// extracted from. Two operands extracted from the same side (both
// actor attributes, or both resource attributes) are never comparable
// and resolve the requirement to None.
type attrSide int

const (
	sideNone attrSide = iota
	sideActor
	sideResource
)

// resolved is the outcome of resolving one operand of a Requirement
// against the query objects. ok is false when the referenced
// attribute is optional and absent on the query object, in which case
// the whole requirement yields None rather than false. groupsOrRoles
// marks a resolution that came specifically from actor.groups or
// actor.roles, the only Left shape Search accepts.
type resolved struct {
	ok            bool
	kind          valueKind
	single        string
	multi         []string
	groupsOrRoles bool
	side          attrSide
}

func resolveValue(v Value, actor *query.Actor, resource *query.Resource) resolved {
	switch v.Kind {
	case ValueString, ValueIdentifier:
		s := v.Str
		if v.Kind == ValueIdentifier {
			s = string(v.Ident)
		}
		return resolved{ok: true, kind: kindSingle, single: s}
	case ValueArray:
		return resolved{ok: true, kind: kindMulti, multi: v.Array}
	case ValueActorAttr:
		return resolveActorAttr(v.ActorAttr, actor)
	case ValueResourceAttr:
		return resolveResourceAttr(v.ResourceAttr, resource)
	default:
		return resolved{}
	}
}

func resolveActorAttr(kind ActorAttributeKind, actor *query.Actor) resolved {
	if actor == nil {
		return resolved{}
	}
	switch kind {
	case ActorType:
		return resolved{ok: true, kind: kindSingle, single: actor.Type, side: sideActor}
	case ActorID:
		return resolved{ok: true, kind: kindSingle, single: actor.ID, side: sideActor}
	case ActorGroups:
		return resolved{ok: true, kind: kindMulti, multi: actor.Groups, groupsOrRoles: true, side: sideActor}
	case ActorRoles:
		return resolved{ok: true, kind: kindMulti, multi: actor.Roles, groupsOrRoles: true, side: sideActor}
	case ActorStatus:
		if actor.Status == nil {
			return resolved{}
		}
		return resolved{ok: true, kind: kindSingle, single: *actor.Status, side: sideActor}
	default:
		return resolved{}
	}
}

func resolveResourceAttr(kind ResourceAttributeKind, resource *query.Resource) resolved {
	if resource == nil {
		return resolved{}
	}
	switch kind {
	case ResourceType:
		return resolved{ok: true, kind: kindSingle, single: resource.Type, side: sideResource}
	case ResourceID:
		if resource.ID == nil {
			return resolved{}
		}
		return resolved{ok: true, kind: kindSingle, single: *resource.ID, side: sideResource}
	case ResourceOwner:
		if resource.Owner == nil {
			return resolved{}
		}
		return resolved{ok: true, kind: kindSingle, single: *resource.Owner, side: sideResource}
	case ResourceStatus:
		if resource.Status == nil {
			return resolved{}
		}
		return resolved{ok: true, kind: kindSingle, single: *resource.Status, side: sideResource}
	default:
		return resolved{}
	}
}

func contains(set []string, needle string) bool {
	for _, s := range set {
		if s == needle {
			return true
		}
	}
	return false
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		if !contains(haystack, n) {
			return false
		}
	}
	return true
}

func elementwiseEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Apply evaluates the requirement against a concrete actor/resource
// pair, returning a tri-state result: nil means the requirement could
// not be meaningfully evaluated — an attribute either side referenced
// was absent on the query object; for "=" and "!=", the two resolved
// operands are of mismatched kind (a single value against a list) or
// both came from the same query object; for "*=", Left did not
// resolve from actor.groups or actor.roles — and is collapsed to false
// only at the Rule boundary, never inside Requirement.Apply itself.
func (r Requirement) Apply(actor *query.Actor, resource *query.Resource) *bool {
	left := resolveValue(r.Left, actor, resource)
	right := resolveValue(r.Right, actor, resource)
	if !left.ok || !right.ok {
		return nil
	}

	switch r.Op {
	case Search:
		return applySearch(left, right)
	case Negation:
		eq := evalEquality(left, right)
		if eq == nil {
			return nil
		}
		negated := !*eq
		return &negated
	default: // Assertion
		return evalEquality(left, right)
	}
}

// evalEquality implements "=": matching-kind single values compare by
// string equality, matching-kind lists compare elementwise, mismatched
// kinds yield None, and two operands extracted from the same side
// (actor-vs-actor or resource-vs-resource) yield None regardless of
// kind — only actor-vs-resource or either side against a literal is
// comparable.
func evalEquality(left, right resolved) *bool {
	if left.kind != right.kind {
		return nil
	}
	if left.side != sideNone && left.side == right.side {
		return nil
	}
	var result bool
	if left.kind == kindSingle {
		result = left.single == right.single
	} else {
		result = elementwiseEqual(left.multi, right.multi)
	}
	return &result
}

// applySearch implements "*=": only defined when Left resolved from
// actor.groups or actor.roles; any other combination is None. Right
// may be a list (every element must be present in Left) or a single
// value (Left must contain it).
func applySearch(left, right resolved) *bool {
	if !left.groupsOrRoles {
		return nil
	}
	var result bool
	if right.kind == kindMulti {
		result = containsAll(left.multi, right.multi)
	} else {
		result = contains(left.multi, right.single)
	}
	return &result
}
