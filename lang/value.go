// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "strings"

// ActorAttributeKind enumerates the dotted actor.* attributes a
// requirement may reference.
type ActorAttributeKind string

const (
	ActorType   ActorAttributeKind = "type"
	ActorID     ActorAttributeKind = "id"
	ActorGroups ActorAttributeKind = "groups"
	ActorRoles  ActorAttributeKind = "roles"
	ActorStatus ActorAttributeKind = "status"
)

// ResourceAttributeKind enumerates the dotted resource.* attributes a
// requirement may reference.
type ResourceAttributeKind string

const (
	ResourceID     ResourceAttributeKind = "id"
	ResourceType   ResourceAttributeKind = "type"
	ResourceOwner  ResourceAttributeKind = "owner"
	ResourceStatus ResourceAttributeKind = "status"
)

// Operator is the comparison a Requirement applies between its two
// operands: Assertion ("="), Negation ("!="), or Search ("*=",
// set-containment).
type Operator int

const (
	Assertion Operator = iota
	Negation
	Search
)

// String renders the operator's grammar token.
func (op Operator) String() string {
	switch op {
	case Assertion:
		return "="
	case Negation:
		return "!="
	case Search:
		return "*="
	default:
		return "?"
	}
}

// ParseOperator maps a lexed operator token back to an Operator.
func ParseOperator(token string) Operator {
	switch token {
	case "!=":
		return Negation
	case "*=":
		return Search
	default:
		return Assertion
	}
}

// ValueKind tags which alternative of Value is populated.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueIdentifier
	ValueArray
	ValueActorAttr
	ValueResourceAttr
)

// Value is a tagged union: a plain string, a bare Identifier, an
// Array of strings, or one of the dotted attribute references
// (actor.* / resource.*), which Requirement.Apply resolves against
// the query objects at evaluation time.
type Value struct {
	Kind         ValueKind
	Str          string
	Ident        Identifier
	Array        []string
	ActorAttr    ActorAttributeKind
	ResourceAttr ResourceAttributeKind
}

func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

func IdentifierValue(id Identifier) Value { return Value{Kind: ValueIdentifier, Ident: id} }

func ArrayValue(values []string) Value { return Value{Kind: ValueArray, Array: values} }

func ActorAttrValue(kind ActorAttributeKind) Value {
	return Value{Kind: ValueActorAttr, ActorAttr: kind}
}

func ResourceAttrValue(kind ResourceAttributeKind) Value {
	return Value{Kind: ValueResourceAttr, ResourceAttr: kind}
}

// IsAttribute reports whether v must be resolved against a query
// object rather than compared literally.
func (v Value) IsAttribute() bool {
	return v.Kind == ValueActorAttr || v.Kind == ValueResourceAttr
}

// String renders v back to its grammar source form, used by the
// canonical renderer and by error messages.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return `"` + v.Str + `"`
	case ValueIdentifier:
		return string(v.Ident)
	case ValueArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, s := range v.Array {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(s)
			b.WriteByte('"')
		}
		b.WriteByte(']')
		return b.String()
	case ValueActorAttr:
		return "actor." + string(v.ActorAttr)
	case ValueResourceAttr:
		return "resource." + string(v.ResourceAttr)
	default:
		return "<invalid value>"
	}
}
