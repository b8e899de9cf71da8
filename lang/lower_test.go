// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang_test

import (
	"testing"

	"github.com/jonhteper/minos-go/dsl"
	"github.com/jonhteper/minos-go/lang"
	"github.com/jonhteper/minos-go/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, source string) lang.Storage {
	t.Helper()
	file, err := dsl.Parse(source)
	require.NoError(t, err)
	storage, err := lang.Build(file)
	require.NoError(t, err)
	return storage
}

const docSource = `syntax = 0.16;

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
    }
}
`

func TestBuild_LowersResourcesAndAttributedResources(t *testing.T) {
	storage := mustBuild(t, docSource)

	// Property P3: an AttributedResource takes strict precedence over
	// a same-typed bare Resource; both must still be retrievable
	// independently.
	_, hasBare := storage.Resource("document")
	assert.True(t, hasBare)

	ar, hasAttributed := storage.AttributedResource("document", "doc-1")
	require.True(t, hasAttributed)

	defaultEnv := ar.Environments[lang.DefaultEnvironment]
	require.Len(t, defaultEnv.Policies, 1)
	assert.True(t, defaultEnv.Policies[0].HasPermission("read"))

	reviewEnv, ok := ar.Environments["review"]
	require.True(t, ok)
	require.Len(t, reviewEnv.Policies, 1)
}

func TestRequirement_ApplyOperators(t *testing.T) {
	storage := mustBuild(t, docSource)
	ar, _ := storage.AttributedResource("document", "doc-1")
	policy := ar.Environments[lang.DefaultEnvironment].Policies[0]

	editor := &query.Actor{ID: "u1", Type: "editor"}
	guest := &query.Actor{ID: "u2", Type: "guest"}
	resource := &query.Resource{Type: "document"}

	assert.True(t, policy.Applies(editor, resource))
	assert.False(t, policy.Applies(guest, resource))
}

func TestRequirement_SearchOperatorMembership(t *testing.T) {
	storage := mustBuild(t, docSource)
	ar, _ := storage.AttributedResource("document", "doc-1")
	reviewPolicy := ar.Environments["review"].Policies[0]

	reviewer := &query.Actor{ID: "u3", Type: "editor", Groups: []string{"reviewers", "staff"}}
	outsider := &query.Actor{ID: "u4", Type: "editor", Groups: []string{"staff"}}
	resource := &query.Resource{Type: "document"}

	assert.True(t, reviewPolicy.Applies(reviewer, resource))
	assert.False(t, reviewPolicy.Applies(outsider, resource))
}

func TestRequirement_AbsentOptionalAttributeCollapsesToFalseAtRule(t *testing.T) {
	source := `syntax = 0.16;

resource document {
    policy {
        allow = ["read"];

        rule {
            resource.owner = "alice";
        }
    }
}
`
	storage := mustBuild(t, source)
	r, _ := storage.Resource("document")
	policy := r.Environments[lang.DefaultEnvironment].Policies[0]

	actor := &query.Actor{ID: "u1", Type: "editor"}
	resourceWithoutOwner := &query.Resource{Type: "document"}

	assert.False(t, policy.Applies(actor, resourceWithoutOwner))
}

func TestStorage_MergeIsCommutativeAndHasIdentity(t *testing.T) {
	a := mustBuild(t, docSource)
	b := mustBuild(t, `syntax = 0.16;

resource document {
    policy {
        allow = ["archive"];
    }
}
`)

	merged1 := a.Merge(b)
	merged2 := b.Merge(a)

	assert.Equal(t, merged1.PoliciesLen(), merged2.PoliciesLen())

	identity := lang.NewStorage()
	assert.Equal(t, a.PoliciesLen(), a.Merge(identity).PoliciesLen())
	assert.Equal(t, a.PoliciesLen(), identity.Merge(a).PoliciesLen())
}

func TestStorage_PoliciesLenCountsEveryPolicy(t *testing.T) {
	storage := mustBuild(t, docSource)
	// bare resource (1 policy) + attributed resource (default: 1, review: 1)
	assert.Equal(t, 3, storage.PoliciesLen())
}

func TestBuild_RejectsLiteralOnRequirementLeft(t *testing.T) {
	source := `syntax = 0.16;

resource document {
    policy {
        allow = ["read"];

        rule {
            "alice" = actor.id;
        }
    }
}
`
	file, err := dsl.Parse(source)
	require.NoError(t, err)

	_, err = lang.Build(file)
	require.Error(t, err)
}

func TestRequirement_MixedKindComparisonIsNone(t *testing.T) {
	source := `syntax = 0.16;

resource document {
    policy {
        allow = ["read"];

        rule {
            actor.groups = "reviewers";
        }
    }
}
`
	storage := mustBuild(t, source)
	r, _ := storage.Resource("document")
	policy := r.Environments[lang.DefaultEnvironment].Policies[0]

	// actor.groups resolves to a list; "reviewers" resolves to a
	// single value — mismatched kinds yield None, which Rule.Holds
	// treats as false.
	actor := &query.Actor{ID: "u1", Type: "editor", Groups: []string{"reviewers"}}
	resource := &query.Resource{Type: "document"}
	assert.False(t, policy.Applies(actor, resource))
}

func TestRequirement_SameSideAttributeComparisonIsNone(t *testing.T) {
	source := `syntax = 0.16;

resource document {
    policy {
        allow = ["read"];

        rule {
            resource.owner = resource.type;
        }
    }
}
`
	storage := mustBuild(t, source)
	r, _ := storage.Resource("document")
	policy := r.Environments[lang.DefaultEnvironment].Policies[0]

	actor := &query.Actor{ID: "u1", Type: "editor"}
	owner := "document"
	resource := &query.Resource{Type: "document", Owner: &owner}

	// Even though resource.owner and resource.type resolve to the
	// same string, comparing two resource attributes against each
	// other is None, not true — Rule.Holds treats None as false.
	assert.False(t, policy.Applies(actor, resource))
}
