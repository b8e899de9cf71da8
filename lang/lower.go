// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import (
	"github.com/jonhteper/minos-go/dsl"
	"github.com/jonhteper/minos-go/errors"
)

// Build lowers a parsed dsl.File into a Storage. Each call gets its
// own Interner, scoped to this one lowering pass.
func Build(file *dsl.File) (Storage, error) {
	storage := NewStorage()
	interner := NewInterner()

	for _, r := range file.Resources {
		if err := lowerResource(&storage, interner, r); err != nil {
			return Storage{}, err
		}
	}

	return storage, nil
}

func lowerResource(storage *Storage, interner *Interner, r *dsl.ResourceDecl) error {
	name, err := NewIdentifier(r.Name)
	if err != nil {
		return err
	}
	name = Identifier(interner.Intern(string(name)).String())

	environments := make(map[Identifier]Environment)
	if err := lowerResourceItems(interner, r.Items, environments); err != nil {
		return err
	}
	ensureDefault(environments)

	if r.ID != nil {
		id := interner.Intern(*r.ID).String()
		existing, ok := storage.AttributedResource(name, id)
		next := AttributedResource{Type: name, ID: id, Environments: environments}
		if ok {
			next = existing.Merge(next)
		}
		storage.PutAttributedResource(next)
		return nil
	}

	existing, ok := storage.Resource(name)
	next := Resource{Type: name, Environments: environments}
	if ok {
		next = existing.Merge(next)
	}
	storage.PutResource(next)
	return nil
}

func lowerResourceItems(interner *Interner, items []*dsl.ResourceItem, out map[Identifier]Environment) error {
	for _, item := range items {
		if item.Env != nil {
			env, err := lowerEnvironment(interner, item.Env.Name, item.Env.Policies)
			if err != nil {
				return err
			}
			mergeInto(out, env)
			continue
		}

		policy, err := lowerPolicy(interner, item.Policy)
		if err != nil {
			return err
		}
		mergeInto(out, Environment{Name: DefaultEnvironment, Policies: []Policy{policy}})
	}
	return nil
}

func mergeInto(out map[Identifier]Environment, env Environment) {
	if existing, ok := out[env.Name]; ok {
		out[env.Name] = Environment{
			Name:     env.Name,
			Policies: append(append([]Policy{}, existing.Policies...), env.Policies...),
		}
		return
	}
	out[env.Name] = env
}

func ensureDefault(environments map[Identifier]Environment) {
	if _, ok := environments[DefaultEnvironment]; !ok {
		environments[DefaultEnvironment] = Environment{Name: DefaultEnvironment}
	}
}

func lowerEnvironment(interner *Interner, name string, decls []*dsl.PolicyDecl) (Environment, error) {
	envName, err := NewIdentifier(name)
	if err != nil {
		return Environment{}, err
	}
	envName = Identifier(interner.Intern(string(envName)).String())

	policies := make([]Policy, 0, len(decls))
	for _, p := range decls {
		policy, err := lowerPolicy(interner, p)
		if err != nil {
			return Environment{}, err
		}
		policies = append(policies, policy)
	}
	return Environment{Name: envName, Policies: policies}, nil
}

func lowerPolicy(interner *Interner, decl *dsl.PolicyDecl) (Policy, error) {
	permissions := make([]string, 0, len(decl.Allow.Permissions))
	for _, p := range decl.Allow.Permissions {
		permissions = append(permissions, interner.Intern(p).String())
	}

	rules := make([]Rule, 0, len(decl.Rules))
	for _, r := range decl.Rules {
		rule, err := lowerRule(interner, r)
		if err != nil {
			return Policy{}, err
		}
		rules = append(rules, rule)
	}

	return NewPolicy(permissions, rules), nil
}

func lowerRule(interner *Interner, decl *dsl.RuleDecl) (Rule, error) {
	requirements := make([]Requirement, 0, len(decl.Requirements))
	for _, reqDecl := range decl.Requirements {
		req, err := lowerRequirement(interner, reqDecl)
		if err != nil {
			return Rule{}, err
		}
		requirements = append(requirements, req)
	}
	return Rule{Requirements: requirements}, nil
}

func lowerRequirement(interner *Interner, decl *dsl.RequirementDecl) (Requirement, error) {
	left, err := lowerComparable(interner, decl.Left)
	if err != nil {
		return Requirement{}, err
	}
	if !left.IsAttribute() {
		return Requirement{}, errors.InvalidToken("ActorAttribute or ResourceAttribute", left.String())
	}

	right, err := lowerComparable(interner, decl.Right)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{Left: left, Op: ParseOperator(decl.Op), Right: right}, nil
}

func lowerComparable(interner *Interner, decl *dsl.ComparableDecl) (Value, error) {
	switch {
	case decl.ActorAttr != nil:
		return ActorAttrValue(ActorAttributeKind(*decl.ActorAttr)), nil
	case decl.ResourceAttr != nil:
		return ResourceAttrValue(ResourceAttributeKind(*decl.ResourceAttr)), nil
	case decl.Str != nil:
		return StringValue(interner.Intern(*decl.Str).String()), nil
	case decl.Array != nil:
		values := make([]string, 0, len(decl.Array.Values))
		for _, v := range decl.Array.Values {
			values = append(values, interner.Intern(v).String())
		}
		return ArrayValue(values), nil
	case decl.Ident != nil:
		id, err := NewIdentifier(*decl.Ident)
		if err != nil {
			return Value{}, err
		}
		return IdentifierValue(Identifier(interner.Intern(string(id)).String())), nil
	default:
		return Value{}, errMissingComparable()
	}
}
