// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl

import (
	"github.com/jonhteper/minos-go/errors"
)

// macroState is the per-name state of the cycle-detecting expansion
// recursion: {Unseen, InExpansion, Expanded}. The InExpansion ->
// InExpansion transition (a macro reached again while its own
// expansion is still in progress) is the cycle error.
type macroState int

const (
	macroUnseen macroState = iota
	macroInExpansion
	macroExpanded
)

// expander resolves macro_call nodes in a FileM into the plain,
// macro-free AST (File) that lang.Build already knows how to turn
// into a Storage. Expansion happens once per parse, over the whole
// set of macro_definition nodes collected from the file, before any
// resource is lowered.
type expander struct {
	defs         map[string]*MacroDefDecl
	states       map[string]macroState
	requirements map[string][]*RequirementDecl
	permissions  map[string][]string
}

func newExpander(items []*TopLevelItemM) *expander {
	e := &expander{
		defs:         make(map[string]*MacroDefDecl),
		states:       make(map[string]macroState),
		requirements: make(map[string][]*RequirementDecl),
		permissions:  make(map[string][]string),
	}
	for _, item := range items {
		if item.MacroDef != nil {
			e.defs[item.MacroDef.Name] = item.MacroDef
		}
	}
	return e
}

// expandRequirements returns the flattened requirement list for macro
// name, expanding any nested macro calls in its body and caching the
// result. A cycle (name reached while it is itself InExpansion) yields
// errors.MacroCycle; an unknown name yields errors.MacroNotExist.
func (e *expander) expandRequirements(name string) ([]*RequirementDecl, error) {
	switch e.states[name] {
	case macroInExpansion:
		return nil, errors.MacroCycle(name)
	case macroExpanded:
		return e.requirements[name], nil
	}

	def, ok := e.defs[name]
	if !ok {
		return nil, errors.MacroNotExist(name)
	}

	e.states[name] = macroInExpansion
	var out []*RequirementDecl
	for _, item := range def.Requirements {
		if item == nil {
			continue
		}
		if item.MacroCall != nil {
			inner, err := e.expandRequirements(item.MacroCall.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		out = append(out, item.Requirement)
	}
	e.states[name] = macroExpanded
	e.requirements[name] = out
	return out, nil
}

// expandPermissions returns the flattened permission-string list for
// macro name, with the same cycle-detection and caching as
// expandRequirements.
func (e *expander) expandPermissions(name string) ([]string, error) {
	switch e.states[name] {
	case macroInExpansion:
		return nil, errors.MacroCycle(name)
	case macroExpanded:
		return e.permissions[name], nil
	}

	def, ok := e.defs[name]
	if !ok {
		return nil, errors.MacroNotExist(name)
	}

	e.states[name] = macroInExpansion
	var out []string
	for _, item := range def.Permissions {
		if item == nil {
			continue
		}
		if item.MacroCall != nil {
			inner, err := e.expandPermissions(item.MacroCall.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		if item.Str != nil {
			out = append(out, *item.Str)
		}
	}
	e.states[name] = macroExpanded
	e.permissions[name] = out
	return out, nil
}

// Expand turns a parsed FileM into the macro-free File AST, resolving
// every macro_call along the way. The returned File shares its version
// tag with fileM but strips the "-macros" suffix, since from here on
// lowering proceeds exactly as for a plain "0.16" file.
func Expand(fileM *FileM) (*File, error) {
	e := newExpander(fileM.Items)

	out := &File{
		Version: &VersionDecl{Base: fileM.Version.Base},
	}

	for _, item := range fileM.Items {
		if item.Resource == nil {
			continue
		}
		resource, err := e.expandResource(item.Resource)
		if err != nil {
			return nil, err
		}
		out.Resources = append(out.Resources, resource)
	}

	return out, nil
}

func (e *expander) expandResource(r *ResourceDeclM) (*ResourceDecl, error) {
	out := &ResourceDecl{Name: r.Name, ID: r.ID}
	for _, item := range r.Items {
		expanded, err := e.expandResourceItem(item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, expanded)
	}
	return out, nil
}

func (e *expander) expandResourceItem(item *ResourceItemM) (*ResourceItem, error) {
	if item.Env != nil {
		policies := make([]*PolicyDecl, 0, len(item.Env.Policies))
		for _, p := range item.Env.Policies {
			expanded, err := e.expandPolicy(p)
			if err != nil {
				return nil, err
			}
			policies = append(policies, expanded)
		}
		return &ResourceItem{Env: &EnvDecl{Name: item.Env.Name, Policies: policies}}, nil
	}

	policy, err := e.expandPolicy(item.Policy)
	if err != nil {
		return nil, err
	}
	return &ResourceItem{Policy: policy}, nil
}

func (e *expander) expandPolicy(p *PolicyDeclM) (*PolicyDecl, error) {
	permissions, err := e.expandAllow(p.Allow)
	if err != nil {
		return nil, err
	}

	out := &PolicyDecl{Allow: &AllowDecl{Permissions: permissions}}
	for _, r := range p.Rules {
		requirements, err := e.expandRule(r)
		if err != nil {
			return nil, err
		}
		out.Rules = append(out.Rules, &RuleDecl{Requirements: requirements})
	}
	return out, nil
}

func (e *expander) expandAllow(a *AllowDeclM) ([]string, error) {
	var out []string
	for _, item := range a.Items {
		if item.MacroCall != nil {
			inner, err := e.expandPermissions(item.MacroCall.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		if item.Str != nil {
			out = append(out, *item.Str)
		}
	}
	return out, nil
}

func (e *expander) expandRule(r *RuleDeclM) ([]*RequirementDecl, error) {
	var out []*RequirementDecl
	for _, item := range r.Items {
		if item.MacroCall != nil {
			inner, err := e.expandRequirements(item.MacroCall.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		out = append(out, item.Requirement)
	}
	return out, nil
}
