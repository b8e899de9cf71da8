// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package dsl defines the AST types for the Minos policy grammar and
// builds a parser for them with participle. Two grammars share the
// same token set: "0.16" (ast.go) and its macro-enabled variant
// "0.16-macros" (ast_macros.go).
package dsl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// minosLexer defines the token types for the Minos grammar. Order
// matters: longer patterns must come before shorter ones that share a
// prefix ("*=" before "=").
var minosLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "OpSearch", Pattern: `\*=`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpEq", Pattern: `=`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `[{}\[\](),;.@-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
