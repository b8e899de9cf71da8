// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package engine is the public query-time API over a lang.Storage:
// Authorize, ActorHasPermission, and ActorHasPermissions. It performs
// no logging and no I/O — every call is a pure function of its
// Storage and its arguments. Permission grants are purely additive;
// there is no deny rule or override to reconcile.
package engine

import (
	"github.com/jonhteper/minos-go/errors"
	"github.com/jonhteper/minos-go/lang"
	"github.com/jonhteper/minos-go/query"
)

// Engine wraps an immutable Storage and answers authorization queries
// against it. Construct one per Storage; it holds no other state.
type Engine struct {
	storage lang.Storage
}

// New wraps storage in an Engine.
func New(storage lang.Storage) *Engine {
	return &Engine{storage: storage}
}

// resolve picks the Resource or AttributedResource backing a request,
// giving the attributed one strict precedence over the bare one when
// both exist for the same type.
func (e *Engine) resolve(res *query.Resource) (map[lang.Identifier]lang.Environment, bool) {
	resourceType, err := lang.NewIdentifier(res.Type)
	if err != nil {
		return nil, false
	}

	if res.ID != nil {
		if ar, ok := e.storage.AttributedResource(resourceType, *res.ID); ok {
			return ar.Environments, true
		}
	}

	if r, ok := e.storage.Resource(resourceType); ok {
		return r.Environments, true
	}

	return nil, false
}

// Authorize returns every permission the actor holds against resource,
// optionally scoped to a named environment. DEFAULT is always
// evaluated first; if env is non-nil and not "DEFAULT", that
// named environment's permissions are appended after DEFAULT's, in
// policy declaration order with no deduplication. Returns
// errors.ActorNotAuthorized if the resulting list is empty, and
// errors.EnvironmentNotFound if env names an environment the resolved
// resource does not declare.
func (e *Engine) Authorize(env *string, actor *query.Actor, resource *query.Resource) ([]string, error) {
	environments, ok := e.resolve(resource)
	if !ok {
		return nil, errors.ActorNotAuthorized(actor.ID)
	}

	var permissions []string
	if defaultEnv, ok := environments[lang.DefaultEnvironment]; ok {
		permissions = append(permissions, defaultEnv.Authorize(actor, resource)...)
	}

	if env != nil {
		name, err := lang.NewIdentifier(*env)
		if err != nil {
			return nil, err
		}
		if name != lang.DefaultEnvironment {
			named, ok := environments[name]
			if !ok {
				return nil, errors.EnvironmentNotFound(*env)
			}
			permissions = append(permissions, named.Authorize(actor, resource)...)
		}
	}

	if len(permissions) == 0 {
		return nil, errors.ActorNotAuthorized(actor.ID)
	}

	return permissions, nil
}

// ActorHasPermission reports whether actor holds permission against
// resource in the given environment (DEFAULT if env is nil), using
// the per-policy permission-membership fast path instead of building
// the full ordered list Authorize returns. Absence is reported as
// (false, nil), not as an error — errors are reserved for malformed
// requests, not for unauthorized ones.
func (e *Engine) ActorHasPermission(env *string, actor *query.Actor, resource *query.Resource, permission string) (bool, error) {
	environments, ok := e.resolve(resource)
	if !ok {
		return false, nil
	}

	if defaultEnv, ok := environments[lang.DefaultEnvironment]; ok {
		if defaultEnv.HasPermission(permission, actor, resource) {
			return true, nil
		}
	}

	if env == nil {
		return false, nil
	}

	name, err := lang.NewIdentifier(*env)
	if err != nil {
		return false, err
	}
	if name == lang.DefaultEnvironment {
		return false, nil
	}

	named, ok := environments[name]
	if !ok {
		return false, errors.EnvironmentNotFound(*env)
	}
	return named.HasPermission(permission, actor, resource), nil
}

// ActorHasPermissions reports whether actor holds every permission in
// permissions, stopping at and reporting the first one that is
// missing via errors.PermissionNotFound.
func (e *Engine) ActorHasPermissions(env *string, actor *query.Actor, resource *query.Resource, permissions []string) (bool, error) {
	for _, permission := range permissions {
		ok, err := e.ActorHasPermission(env, actor, resource, permission)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, errors.PermissionNotFound(permission)
		}
	}
	return true, nil
}
