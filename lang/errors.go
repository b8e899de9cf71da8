// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package lang

import "github.com/jonhteper/minos-go/errors"

// errMissingComparable reports a ComparableDecl with none of its
// ordered-choice alternatives populated.
func errMissingComparable() error {
	return errors.MissingToken()
}
