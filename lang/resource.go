// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

// Resource groups environments under a bare resource type, with no
// particular instance identity. It always has at least the
// DefaultEnvironment once lowered.
type Resource struct {
	Type         Identifier
	Environments map[Identifier]Environment
}

// NewResource builds an empty Resource for the given type.
func NewResource(resourceType Identifier) Resource {
	return Resource{Type: resourceType, Environments: make(map[Identifier]Environment)}
}

// AttributedResource is a Resource narrowed to one concrete instance
// by ID. An AttributedResource takes strict precedence over a
// same-typed Resource: when both exist for a request, only the
// attributed one is consulted.
type AttributedResource struct {
	Type         Identifier
	ID           string
	Environments map[Identifier]Environment
}

// NewAttributedResource builds an empty AttributedResource.
func NewAttributedResource(resourceType Identifier, id string) AttributedResource {
	return AttributedResource{Type: resourceType, ID: id, Environments: make(map[Identifier]Environment)}
}

// mergeEnvironments unions two environment maps; a name present in
// both has its policy lists concatenated in left-then-right order,
// which keeps merge associative but makes the resulting policy order
// depend on which side is the receiver.
func mergeEnvironments(a, b map[Identifier]Environment) map[Identifier]Environment {
	out := make(map[Identifier]Environment, len(a)+len(b))
	for name, env := range a {
		out[name] = env
	}
	for name, env := range b {
		if existing, ok := out[name]; ok {
			out[name] = Environment{
				Name:     name,
				Policies: append(append([]Policy{}, existing.Policies...), env.Policies...),
			}
			continue
		}
		out[name] = env
	}
	return out
}

// Merge combines r with other, which must share r's Type. Used when
// two Resource declarations for the same type appear across merged
// files; merge has an identity (a Resource with no environments), and
// a shared environment keeps r's policies ahead of other's.
func (r Resource) Merge(other Resource) Resource {
	return Resource{Type: r.Type, Environments: mergeEnvironments(r.Environments, other.Environments)}
}

// Merge combines ar with other, which must share ar's Type and ID.
func (ar AttributedResource) Merge(other AttributedResource) AttributedResource {
	return AttributedResource{
		Type:         ar.Type,
		ID:           ar.ID,
		Environments: mergeEnvironments(ar.Environments, other.Environments),
	}
}
