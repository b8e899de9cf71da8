// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package query holds the runtime request objects — Actor and
// Resource — that a caller builds per-request and the engine discards
// after the call returns. They live in their own package, separate
// from both lang (the policy model) and engine (the top-level API),
// because lang.Requirement.Apply needs to read them and engine.Engine
// needs to accept them; putting them in either of those packages
// would create an import cycle.
package query

// Actor is the runtime principal making a request.
type Actor struct {
	ID     string
	Type   string
	Groups []string
	Roles  []string
	Status *string
}
