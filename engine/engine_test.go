// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package engine_test

import (
	"testing"

	"github.com/jonhteper/minos-go/dsl"
	"github.com/jonhteper/minos-go/engine"
	"github.com/jonhteper/minos-go/errors"
	"github.com/jonhteper/minos-go/lang"
	"github.com/jonhteper/minos-go/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engineSource = `syntax = 0.16;

resource document {
    id = "doc-1";

    policy {
        allow = ["read", "write"];

        rule {
            actor.type = "editor";
        }
    }

    env review {
        policy {
            allow = ["comment"];

            rule {
                actor.groups *= "reviewers";
            }
        }
    }
}

resource document {
    policy {
        allow = ["list"];

        rule {
            actor.type = "viewer";
        }
    }
}
`

const userSource = `syntax = 0.16;

resource User {
    env DEFAULT {
        policy {
            allow = ["create", "read", "update", "delete"];
            rule { actor.type = RootUser; }
            rule {
                actor.type = resource.type;
                actor.id   = resource.id;
            }
            rule { resource.owner = actor.id; }
        }
    }
}
`

const roleSource = `syntax = 0.16;

resource document {
    policy {
        allow = ["read"];

        rule {
            resource.type = "document";
        }
    }

    env ADMIN {
        policy {
            allow = ["delete"];

            rule {
                actor.roles *= ["admin"];
            }
        }
    }
}
`

func newEngine(t *testing.T, source string) *engine.Engine {
	t.Helper()
	file, err := dsl.Parse(source)
	require.NoError(t, err)
	storage, err := lang.Build(file)
	require.NoError(t, err)
	return engine.New(storage)
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return newEngine(t, engineSource)
}

func TestEngine_AuthorizePrefersAttributedResource(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "editor"}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}

	permissions, err := e.Authorize(nil, actor, resource)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"read", "write"}, permissions)
}

func TestEngine_AuthorizeFallsBackToBareResource(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "viewer"}
	resource := &query.Resource{Type: "document"}

	permissions, err := e.Authorize(nil, actor, resource)
	require.NoError(t, err)
	assert.Equal(t, []string{"list"}, permissions)
}

func TestEngine_AuthorizeAppendsNamedEnvironmentAfterDefault(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "editor", Groups: []string{"reviewers"}}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}
	env := "review"

	permissions, err := e.Authorize(&env, actor, resource)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write", "comment"}, permissions)
}

func TestEngine_AuthorizeReturnsActorNotAuthorizedWhenEmpty(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u2", Type: "guest"}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}

	_, err := e.Authorize(nil, actor, resource)
	require.Error(t, err)
	code, ok := errors.Code(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeActorNotAuthorized, code)
}

func TestEngine_AuthorizeUnknownEnvironmentReturnsEnvironmentNotFound(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "editor"}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}
	env := "staging"

	_, err := e.Authorize(&env, actor, resource)
	require.Error(t, err)
	code, ok := errors.Code(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeEnvironmentNotFound, code)
}

func TestEngine_ActorHasPermissionFastPath(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "editor"}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}

	ok, err := e.ActorHasPermission(nil, actor, resource, "write")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.ActorHasPermission(nil, actor, resource, "delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_ActorHasPermissionsAllOrFirstMissing(t *testing.T) {
	e := newTestEngine(t)
	actor := &query.Actor{ID: "u1", Type: "editor"}
	docID := "doc-1"
	resource := &query.Resource{Type: "document", ID: &docID}

	ok, err := e.ActorHasPermissions(nil, actor, resource, []string{"read", "write"})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.ActorHasPermissions(nil, actor, resource, []string{"read", "delete"})
	require.Error(t, err)
	code, ok2 := errors.Code(err)
	require.True(t, ok2)
	assert.Equal(t, errors.CodePermissionNotFound, code)
}

func TestEngine_AuthorizeIdentitySelfAccess(t *testing.T) {
	e := newEngine(t, userSource)
	actor := &query.Actor{ID: "u1", Type: "User"}
	resource := &query.Resource{Type: "User", ID: ptr("u1")}

	permissions, err := e.Authorize(nil, actor, resource)
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "read", "update", "delete"}, permissions)
}

func TestEngine_AuthorizeOwnerBasedAccess(t *testing.T) {
	e := newEngine(t, userSource)
	actor := &query.Actor{ID: "u1", Type: "User"}
	resource := &query.Resource{Type: "User", ID: ptr("u2"), Owner: ptr("u1")}

	permissions, err := e.Authorize(nil, actor, resource)
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "read", "update", "delete"}, permissions)
}

func TestEngine_AuthorizeDeniedThirdParty(t *testing.T) {
	e := newEngine(t, userSource)
	actor := &query.Actor{ID: "u3", Type: "User"}
	resource := &query.Resource{Type: "User", ID: ptr("u2"), Owner: ptr("u1")}

	_, err := e.Authorize(nil, actor, resource)
	require.Error(t, err)
	code, ok := errors.Code(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeActorNotAuthorized, code)
}

func TestEngine_AuthorizeNamedEnvironmentGatedByRole(t *testing.T) {
	e := newEngine(t, roleSource)
	actor := &query.Actor{ID: "u1", Type: "staff", Roles: []string{"admin"}}
	resource := &query.Resource{Type: "document"}
	env := "ADMIN"

	permissions, err := e.Authorize(&env, actor, resource)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "delete"}, permissions)
}

func ptr(s string) *string { return &s }
