// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package query

// Resource is the runtime target of a request. Type is mandatory; ID,
// Owner and Status are optional.
type Resource struct {
	Type   string
	ID     *string
	Owner  *string
	Status *string
}
