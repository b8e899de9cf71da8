// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl_test

import (
	"testing"

	"github.com/jonhteper/minos-go/dsl"
	"github.com/jonhteper/minos-go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `syntax = 0.16;

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
`

func TestParse_BaseGrammar(t *testing.T) {
	file, err := dsl.Parse(sampleSource)
	require.NoError(t, err)
	require.Len(t, file.Resources, 1)

	resource := file.Resources[0]
	assert.Equal(t, "document", resource.Name)
	require.NotNil(t, resource.ID)
	assert.Equal(t, "doc-1", *resource.ID)
	assert.Len(t, resource.Items, 2)
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantMacros bool
		wantErr    bool
	}{
		{"base grammar", "syntax = 0.16;\n", false, false},
		{"macro grammar", "syntax = 0.16-macros;\n", true, false},
		{"unsupported version", "syntax = 9.9;\n", false, true},
		{"missing preamble", "resource foo {}\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := dsl.DetectVersion(tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMacros, version.Macros)
		})
	}
}

func TestParse_InvalidSyntaxReportsInvalidToken(t *testing.T) {
	_, err := dsl.Parse("syntax = 0.16;\n\nresource {\n")
	assert.Error(t, err)
	code, ok := errors.Code(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidToken, code)
}

func TestParse_RoundTripsComparableForms(t *testing.T) {
	src := `syntax = 0.16;

resource room {
    policy {
        allow = ["enter"];

        rule {
            resource.owner = actor.id;
            actor.roles *= ["admin", "moderator"];
            resource.status != "locked";
        }
    }
}
`
	file, err := dsl.Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Resources, 1)

	rules := file.Resources[0].Items[0].Policy.Rules
	require.Len(t, rules, 1)
	require.Len(t, rules[0].Requirements, 3)

	first := rules[0].Requirements[0]
	assert.Equal(t, "owner", *first.Left.ResourceAttr)
	assert.Equal(t, "=", first.Op)
	assert.Equal(t, "id", *first.Right.ActorAttr)
}
