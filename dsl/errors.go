// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl

import (
	"github.com/alecthomas/participle/v2"

	"github.com/jonhteper/minos-go/errors"
)

// translateParseError turns a raw participle error into the Minos
// error taxonomy, carrying the offending token's position the same
// way dsl.NewParser's callers expect from errors.InvalidToken.
func translateParseError(err error) error {
	var parseErr participle.Error
	if ok := asParticipleError(err, &parseErr); ok {
		pos := parseErr.Position()
		return errors.InvalidToken(pos.String(), parseErr.Message())
	}
	return errors.MissingToken()
}

func asParticipleError(err error, target *participle.Error) bool {
	if pe, ok := err.(participle.Error); ok {
		*target = pe
		return true
	}
	return false
}
