// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the root of grammar "0.16":
//
//	file := version_decl (resource | attr_resource)* EOI
type File struct {
	Pos       lexer.Position  `parser:"" json:"-"`
	Version   *VersionDecl    `parser:"'syntax' '=' @@ ';'" json:"version"`
	Resources []*ResourceDecl `parser:"@@*" json:"resources"`
}

// VersionDecl captures the preamble's numeric tag and optional
// variant suffix ("0.16" vs "0.16-macros").
type VersionDecl struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Base   string         `parser:"@Number" json:"base"`
	Suffix string         `parser:"('-' @Ident)?" json:"suffix,omitempty"`
}

// String renders the version tag back to source form.
func (v *VersionDecl) String() string {
	if v.Suffix == "" {
		return v.Base
	}
	return v.Base + "-" + v.Suffix
}

// ResourceDecl matches both `resource` and `attr_resource` productions;
// the presence of ID distinguishes them during lowering.
//
//	resource      := "resource" Identifier "{" (env_block | policy)* "}"
//	attr_resource := "resource" Identifier "{" "id" "=" string ";" (env_block | policy)* "}"
type ResourceDecl struct {
	Pos   lexer.Position  `parser:"" json:"-"`
	Name  string          `parser:"'resource' @Ident '{'" json:"name"`
	ID    *string         `parser:"('id' '=' @String ';')?" json:"id,omitempty"`
	Items []*ResourceItem `parser:"@@* '}'" json:"items"`
}

// ResourceItem is an env block or a top-level (implicit-DEFAULT) policy.
type ResourceItem struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Env    *EnvDecl       `parser:"  @@" json:"env,omitempty"`
	Policy *PolicyDecl    `parser:"| @@" json:"policy,omitempty"`
}

// EnvDecl matches `env_block := "env" Identifier "{" policy* "}"`.
// Name may be the literal DEFAULT.
type EnvDecl struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"'env' @Ident '{'" json:"name"`
	Policies []*PolicyDecl  `parser:"@@* '}'" json:"policies"`
}

// PolicyDecl matches `policy := "policy" "{" allow rule* "}"`.
type PolicyDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Allow *AllowDecl     `parser:"'policy' '{' @@" json:"allow"`
	Rules []*RuleDecl    `parser:"@@* '}'" json:"rules"`
}

// AllowDecl matches `allow := "allow" "=" array ";"`.
type AllowDecl struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Permissions []string       `parser:"'allow' '=' '[' (@String (',' @String)* ','?)? ']' ';'" json:"permissions"`
}

// RuleDecl matches `rule := "rule" "{" requirement+ "}"`.
type RuleDecl struct {
	Pos          lexer.Position     `parser:"" json:"-"`
	Requirements []*RequirementDecl `parser:"'rule' '{' @@+ '}'" json:"requirements"`
}

// RequirementDecl matches `requirement := comparable OP comparable ";"`.
type RequirementDecl struct {
	Pos   lexer.Position  `parser:"" json:"-"`
	Left  *ComparableDecl `parser:"@@" json:"left"`
	Op    string          `parser:"@(OpEq | OpNe | OpSearch)" json:"op"`
	Right *ComparableDecl `parser:"@@ ';'" json:"right"`
}

// ComparableDecl matches:
//
//	comparable := actor_attr | resource_attr | string | array | Identifier
//
// Exactly one field is non-nil; order matters for the parser's ordered
// choice — the dotted attribute forms must be tried before the bare
// Ident fallback.
type ComparableDecl struct {
	Pos          lexer.Position `parser:"" json:"-"`
	ActorAttr    *string        `parser:"  ('actor' '.' @('type' | 'id' | 'groups' | 'roles' | 'status'))" json:"actor_attr,omitempty"`
	ResourceAttr *string        `parser:"| ('resource' '.' @('id' | 'type' | 'owner' | 'status'))" json:"resource_attr,omitempty"`
	Str          *string        `parser:"| @String" json:"str,omitempty"`
	Array        *ArrayDecl     `parser:"| @@" json:"array,omitempty"`
	Ident        *string        `parser:"| @Ident" json:"ident,omitempty"`
}

// ArrayDecl matches `array := "[" (string ("," string)*)? ","? "]"`.
type ArrayDecl struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Values []string       `parser:"'[' (@String (',' @String)* ','?)? ']'" json:"values"`
}

// --- String() helpers that render an AST node back to source form;
// the canonical renderer for a full Storage lives in package
// render. ---

func (f *File) String() string {
	var b strings.Builder
	b.WriteString("syntax = ")
	b.WriteString(f.Version.String())
	b.WriteString(";\n")
	for _, r := range f.Resources {
		b.WriteString(r.String())
	}
	return b.String()
}

func (r *ResourceDecl) String() string {
	var b strings.Builder
	b.WriteString("resource " + r.Name + " {\n")
	if r.ID != nil {
		b.WriteString(`    id = "` + *r.ID + "\";\n")
	}
	for _, item := range r.Items {
		b.WriteString(item.String())
	}
	b.WriteString("}\n")
	return b.String()
}

func (i *ResourceItem) String() string {
	if i.Env != nil {
		return i.Env.String()
	}
	if i.Policy != nil {
		return i.Policy.String()
	}
	return ""
}

func (e *EnvDecl) String() string {
	var b strings.Builder
	b.WriteString("    env " + e.Name + " {\n")
	for _, p := range e.Policies {
		b.WriteString(p.String())
	}
	b.WriteString("    }\n")
	return b.String()
}

func (p *PolicyDecl) String() string {
	var b strings.Builder
	b.WriteString("        policy {\n")
	b.WriteString(p.Allow.String())
	for _, r := range p.Rules {
		b.WriteString(r.String())
	}
	b.WriteString("        }\n")
	return b.String()
}

func (a *AllowDecl) String() string {
	return "            allow = " + formatStringList(a.Permissions) + ";\n"
}

func (r *RuleDecl) String() string {
	var b strings.Builder
	b.WriteString("            rule {\n")
	for _, req := range r.Requirements {
		b.WriteString("                " + req.String() + ";\n")
	}
	b.WriteString("            }\n")
	return b.String()
}

func (r *RequirementDecl) String() string {
	return r.Left.String() + " " + r.Op + " " + r.Right.String()
}

func (c *ComparableDecl) String() string {
	switch {
	case c.ActorAttr != nil:
		return "actor." + *c.ActorAttr
	case c.ResourceAttr != nil:
		return "resource." + *c.ResourceAttr
	case c.Str != nil:
		return `"` + *c.Str + `"`
	case c.Array != nil:
		return c.Array.String()
	case c.Ident != nil:
		return *c.Ident
	default:
		return "<empty>"
	}
}

func (a *ArrayDecl) String() string {
	return formatStringList(a.Values)
}

func formatStringList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(s)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// NewParser constructs the participle parser for grammar "0.16".
// UseLookahead(MaxLookahead) is required because the ComparableDecl
// alternatives share prefixes (actor., resource. vs a bare
// identifier), so the parser must backtrack across alternatives.
func NewParser() (*participle.Parser[File], error) {
	return participle.Build[File](
		participle.Lexer(minosLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}
