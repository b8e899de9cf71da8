// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

// attrKey is the composite key an AttributedResource is stored under:
// its type and its instance ID, distinct from a bare Resource keyed
// by type alone.
type attrKey struct {
	Type Identifier
	ID   string
}

// Storage is the fully lowered, immutable policy model produced by
// parsing and lowering one or more source files. Nothing in the
// Storage, Resource, Environment, Policy, or Rule layers mutates once
// built; Merge always returns a new Storage.
type Storage struct {
	Resources           map[Identifier]Resource
	AttributedResources map[attrKey]AttributedResource
}

// NewStorage returns an empty Storage.
func NewStorage() Storage {
	return Storage{
		Resources:           make(map[Identifier]Resource),
		AttributedResources: make(map[attrKey]AttributedResource),
	}
}

// Merge returns the union of s and other: associative, commutative
// when s and other share no key, with NewStorage() as its identity. A
// Resource or AttributedResource present in both is combined via its
// own Merge rather than one side winning outright; its policies are
// then ordered s's first, so on shared keys the order of the merged
// policies depends on which side is the receiver.
func (s Storage) Merge(other Storage) Storage {
	out := NewStorage()
	for key, r := range s.Resources {
		out.Resources[key] = r
	}
	for key, r := range other.Resources {
		if existing, ok := out.Resources[key]; ok {
			out.Resources[key] = existing.Merge(r)
			continue
		}
		out.Resources[key] = r
	}

	for key, ar := range s.AttributedResources {
		out.AttributedResources[key] = ar
	}
	for key, ar := range other.AttributedResources {
		if existing, ok := out.AttributedResources[key]; ok {
			out.AttributedResources[key] = existing.Merge(ar)
			continue
		}
		out.AttributedResources[key] = ar
	}

	return out
}

// Resource looks up a bare resource by type.
func (s Storage) Resource(resourceType Identifier) (Resource, bool) {
	r, ok := s.Resources[resourceType]
	return r, ok
}

// AttributedResource looks up an attributed resource by type and ID.
func (s Storage) AttributedResource(resourceType Identifier, id string) (AttributedResource, bool) {
	ar, ok := s.AttributedResources[attrKey{Type: resourceType, ID: id}]
	return ar, ok
}

// PutResource inserts or replaces a bare resource, keyed by its Type.
func (s Storage) PutResource(r Resource) {
	s.Resources[r.Type] = r
}

// PutAttributedResource inserts or replaces an attributed resource,
// keyed by its Type and ID.
func (s Storage) PutAttributedResource(ar AttributedResource) {
	s.AttributedResources[attrKey{Type: ar.Type, ID: ar.ID}] = ar
}

// PoliciesLen counts every policy across every resource and
// attributed resource in the Storage, a small introspection helper
// callers can use to size caches.
func (s Storage) PoliciesLen() int {
	count := 0
	for _, r := range s.Resources {
		for _, env := range r.Environments {
			count += len(env.Policies)
		}
	}
	for _, ar := range s.AttributedResources {
		for _, env := range ar.Environments {
			count += len(env.Policies)
		}
	}
	return count
}
