// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package errors defines the structured error taxonomy shared by every
// Minos component: the parser, the AST-to-model lowering pass, and the
// query-time engine. Every error is a github.com/samber/oops error
// carrying a stable Code() so callers can branch on failure kind
// without string matching, the same way the policy engine in
// internal/access/policy/engine.go branches on oopsErr.Code().
package errors

import (
	"github.com/samber/oops"
)

// Error codes, one per condition the engine and parser can raise.
const (
	CodeSyntaxNotSupported  = "SYNTAX_NOT_SUPPORTED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeMissingToken        = "MISSING_TOKEN"
	CodeMacroNotExist       = "MACRO_NOT_EXIST"
	CodeMacroCycle          = "MACRO_CYCLE"
	CodeIo                  = "IO_ERROR"
	CodeEnvironmentNotFound = "ENVIRONMENT_NOT_FOUND"
	CodeResourceNotFound    = "RESOURCE_NOT_FOUND"
	CodeActorNotAuthorized  = "ACTOR_NOT_AUTHORIZED"
	CodePermissionNotFound  = "PERMISSION_NOT_FOUND"
)

// SyntaxNotSupported reports an unrecognized or missing grammar
// version preamble.
func SyntaxNotSupported(found string) error {
	return oops.
		Code(CodeSyntaxNotSupported).
		With("found", found).
		Errorf("syntax version %q is not supported", found)
}

// InvalidToken reports a grammar-rule mismatch during parsing or
// lowering. From lowering, expected names the grammar production that
// was required and found is a textual description of what was actually
// present; for a parse error, expected carries the offending token's
// position and found the parser's message.
func InvalidToken(expected, found string) error {
	return oops.
		Code(CodeInvalidToken).
		With("expected", expected).
		With("found", found).
		Errorf("invalid token: expected %s, found %s", expected, found)
}

// MissingToken reports unexpected end of input while lowering a node
// that requires one more child than the token tree provides.
func MissingToken() error {
	return oops.
		Code(CodeMissingToken).
		Errorf("expected token, found nothing")
}

// MacroNotExist reports a macro call (@name) with no matching
// definition anywhere in the file.
func MacroNotExist(name string) error {
	return oops.
		Code(CodeMacroNotExist).
		With("macro", name).
		Errorf("macro %q does not exist", name)
}

// MacroCycle reports a macro whose expansion transitively calls
// itself.
func MacroCycle(name string) error {
	return oops.
		Code(CodeMacroCycle).
		With("macro", name).
		Errorf("macro %q is involved in a recursive definition", name)
}

// Io wraps an I/O failure from the loader (loader.Load*). The dsl
// Parse* functions also return it when a grammar's parser fails to
// build; the engine never returns it.
func Io(msg string) error {
	return oops.
		Code(CodeIo).
		Errorf("io error: %s", msg)
}

// EnvironmentNotFound reports a requested environment name that the
// matched resource does not declare.
func EnvironmentNotFound(name string) error {
	return oops.
		Code(CodeEnvironmentNotFound).
		With("environment", name).
		Errorf("environment %q not found", name)
}

// ResourceNotFound is reserved for future loader-level lookups; the
// core evaluator never returns it.
func ResourceNotFound(name string) error {
	return oops.
		Code(CodeResourceNotFound).
		With("resource", name).
		Errorf("resource %q not found", name)
}

// ActorNotAuthorized reports that Authorize produced an empty
// permission list for the given actor.
func ActorNotAuthorized(actorID string) error {
	return oops.
		Code(CodeActorNotAuthorized).
		With("actor_id", actorID).
		Errorf("actor %q is not authorized", actorID)
}

// PermissionNotFound reports the first permission in an
// ActorHasPermissions call that was not granted.
func PermissionNotFound(name string) error {
	return oops.
		Code(CodePermissionNotFound).
		With("permission", name).
		Errorf("permission %q not found", name)
}

// Code extracts the oops error code from err, if any.
func Code(err error) (string, bool) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	return oopsErr.Code(), true
}
