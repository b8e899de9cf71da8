// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package lang is the Minos policy model: Identifier, Value,
// ActorAttribute, ResourceAttribute, Requirement, Rule, Policy,
// Environment, Resource, AttributedResource, Storage, plus the
// lowering pass that turns a dsl.File into a Storage. Nothing in this
// package performs I/O; it is pure data plus pure functions over that
// data.
package lang

import (
	"regexp"

	"github.com/jonhteper/minos-go/errors"
)

// identifierPattern is the grammar's Identifier token:
// `[A-Za-z_][A-Za-z0-9_-]*`.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Identifier is a validated grammar identifier — a resource name, an
// environment name, a permission name, or a bare comparable value in a
// requirement.
type Identifier string

// NewIdentifier validates s against the grammar's Identifier token and
// returns it as an Identifier, or errors.InvalidToken if s does not
// match.
func NewIdentifier(s string) (Identifier, error) {
	if !identifierPattern.MatchString(s) {
		return "", errors.InvalidToken("Identifier", s)
	}
	return Identifier(s), nil
}

// DefaultEnvironment is the reserved name of the environment every
// resource implicitly carries.
const DefaultEnvironment Identifier = "DEFAULT"

func (id Identifier) String() string { return string(id) }
