// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package render renders a lang.Storage back to canonical Minos
// source text: an allow line first inside a policy, a blank line
// between it and the policy's rules, one rule per block with a blank line between rules, a
// blank line between environments, and a blank line between the
// plain-resource block and the attributed-resource block.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonhteper/minos-go/lang"
)

const grammarVersion = "0.16"

// Storage renders every resource and attributed resource in s, sorted
// by name/ID for a deterministic, diffable result.
func Storage(s lang.Storage) string {
	var b strings.Builder
	b.WriteString("syntax = " + grammarVersion + ";\n\n")

	names := make([]lang.Identifier, 0, len(s.Resources))
	for name := range s.Resources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		r, _ := s.Resource(name)
		writeResource(&b, string(r.Type), nil, r.Environments)
	}

	if len(names) > 0 && len(s.AttributedResources) > 0 {
		b.WriteString("\n")
	}

	type attrEntry struct {
		Type, ID string
		Envs     map[lang.Identifier]lang.Environment
	}
	var attrs []attrEntry
	for _, ar := range s.AttributedResources {
		attrs = append(attrs, attrEntry{Type: string(ar.Type), ID: ar.ID, Envs: ar.Environments})
	}
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].Type != attrs[j].Type {
			return attrs[i].Type < attrs[j].Type
		}
		return attrs[i].ID < attrs[j].ID
	})
	for _, ar := range attrs {
		id := ar.ID
		writeResource(&b, ar.Type, &id, ar.Envs)
	}

	return b.String()
}

func writeResource(b *strings.Builder, resourceType string, id *string, envs map[lang.Identifier]lang.Environment) {
	fmt.Fprintf(b, "resource %s {\n", resourceType)
	if id != nil {
		fmt.Fprintf(b, "    id = %q;\n", *id)
	}

	names := make([]lang.Identifier, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		// DEFAULT always renders first, matching the grammar's
		// implicit top-level policy placement ahead of named envs.
		if names[i] == lang.DefaultEnvironment {
			return true
		}
		if names[j] == lang.DefaultEnvironment {
			return false
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		writeEnvironment(b, envs[name])
	}

	b.WriteString("}\n")
}

func writeEnvironment(b *strings.Builder, env lang.Environment) {
	isDefault := env.Name == lang.DefaultEnvironment
	indent := "    "
	if !isDefault {
		fmt.Fprintf(b, "    env %s {\n", env.Name)
		indent = "        "
	}

	for i, p := range env.Policies {
		if i > 0 {
			b.WriteString("\n")
		}
		writePolicy(b, p, indent)
	}

	if !isDefault {
		b.WriteString("    }\n")
	}
}

func writePolicy(b *strings.Builder, p lang.Policy, indent string) {
	fmt.Fprintf(b, "%spolicy {\n", indent)
	fmt.Fprintf(b, "%s    allow = %s;\n", indent, renderStringList(p.Permissions))
	if len(p.Rules) > 0 {
		b.WriteString("\n")
	}

	for i, r := range p.Rules {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRule(b, r, indent+"    ")
	}

	fmt.Fprintf(b, "%s}\n", indent)
}

func writeRule(b *strings.Builder, r lang.Rule, indent string) {
	fmt.Fprintf(b, "%srule {\n", indent)
	for _, req := range r.Requirements {
		fmt.Fprintf(b, "%s    %s %s %s;\n", indent, req.Left.String(), req.Op.String(), req.Right.String())
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderStringList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", s)
	}
	b.WriteByte(']')
	return b.String()
}
