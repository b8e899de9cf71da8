// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl

import (
	"github.com/alecthomas/participle/v2"
)

// FileM is the root of grammar "0.16-macros": "0.16" plus
// macro_definition and macro_call productions, usable anywhere a
// requirement sequence or a permission-list element is allowed.
//
//	file              := version_decl (macro_definition | resource | attr_resource)* EOI
//	macro_definition  := "def" Identifier "{" inner "}"
//	macro_call        := "@" Identifier
type FileM struct {
	Version *VersionDecl      `parser:"'syntax' '=' @@ ';'" json:"version"`
	Items   []*TopLevelItemM  `parser:"@@*" json:"items"`
}

// TopLevelItemM is a macro definition or a resource declaration.
type TopLevelItemM struct {
	MacroDef *MacroDefDecl  `parser:"  @@" json:"macro_def,omitempty"`
	Resource *ResourceDeclM `parser:"| @@" json:"resource,omitempty"`
}

// MacroCallDecl matches `macro_call := "@" Identifier`.
type MacroCallDecl struct {
	Name string `parser:"'@' @Ident" json:"name"`
}

// MacroDefDecl matches `macro_definition`. Its body is either a
// requirement sequence (usable inside a rule block) or a permission
// list (usable inside an allow list) — exactly one of Requirements or
// Permissions is populated, and either may itself contain a macro
// call, so macros may reference other macros.
type MacroDefDecl struct {
	Name         string       `parser:"'def' @Ident '{'" json:"name"`
	Requirements []*RuleItemM `parser:"(  @@+" json:"requirements,omitempty"`
	Permissions  []*AllowItemM `parser:" | @@* ) '}'" json:"permissions,omitempty"`
}

// RuleItemM is one element of a rule body: a literal requirement or a
// macro call expanding to zero or more requirements.
type RuleItemM struct {
	MacroCall   *MacroCallDecl   `parser:"  @@" json:"macro_call,omitempty"`
	Requirement *RequirementDecl `parser:"| @@" json:"requirement,omitempty"`
}

// AllowItemM is one element of an allow list: a literal permission
// string or a macro call expanding to zero or more permission strings.
type AllowItemM struct {
	Str       *string        `parser:"  @String" json:"str,omitempty"`
	MacroCall *MacroCallDecl `parser:"| @@" json:"macro_call,omitempty"`
}

// RuleDeclM matches `rule := "rule" "{" (requirement | macro_call)+ "}"`.
type RuleDeclM struct {
	Items []*RuleItemM `parser:"'rule' '{' @@+ '}'" json:"items"`
}

// AllowDeclM matches `allow := "allow" "=" "[" (string|macro_call, ...) "]" ";"`.
type AllowDeclM struct {
	Items []*AllowItemM `parser:"'allow' '=' '[' (@@ (',' @@)* ','?)? ']' ';'" json:"items"`
}

// PolicyDeclM matches `policy := "policy" "{" allow rule* "}"`.
type PolicyDeclM struct {
	Allow *AllowDeclM  `parser:"'policy' '{' @@" json:"allow"`
	Rules []*RuleDeclM `parser:"@@* '}'" json:"rules"`
}

// EnvDeclM matches `env_block := "env" Identifier "{" policy* "}"`.
type EnvDeclM struct {
	Name     string         `parser:"'env' @Ident '{'" json:"name"`
	Policies []*PolicyDeclM `parser:"@@* '}'" json:"policies"`
}

// ResourceItemM is an env block or a top-level (implicit-DEFAULT) policy.
type ResourceItemM struct {
	Env    *EnvDeclM    `parser:"  @@" json:"env,omitempty"`
	Policy *PolicyDeclM `parser:"| @@" json:"policy,omitempty"`
}

// ResourceDeclM mirrors ResourceDecl with macro-aware bodies.
type ResourceDeclM struct {
	Name  string           `parser:"'resource' @Ident '{'" json:"name"`
	ID    *string          `parser:"('id' '=' @String ';')?" json:"id,omitempty"`
	Items []*ResourceItemM `parser:"@@* '}'" json:"items"`
}

// NewMacroParser constructs the participle parser for grammar
// "0.16-macros".
func NewMacroParser() (*participle.Parser[FileM], error) {
	return participle.Build[FileM](
		participle.Lexer(minosLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}
