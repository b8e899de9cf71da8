// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

// Package loader is the thin filesystem collaborator for Minos's
// external interface: given one file or a directory of ".minos"
// files, parse each and merge the results into a single lang.Storage.
// It deliberately carries no retry, caching, or watch/reload logic —
// those are server-side concerns the core explicitly excludes.
package loader

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jonhteper/minos-go/dsl"
	"github.com/jonhteper/minos-go/errors"
	"github.com/jonhteper/minos-go/lang"
)

// LoadFile reads and parses a single ".minos" source file into a
// Storage.
func LoadFile(path string) (lang.Storage, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return lang.Storage{}, errors.Io(err.Error())
	}

	file, err := dsl.Parse(string(content))
	if err != nil {
		return lang.Storage{}, err
	}

	return lang.Build(file)
}

// LoadDir enumerates every ".minos" file directly under dir (sorted
// by name for deterministic merge order), parses each, and merges
// them into a single Storage via lang.Storage.Merge.
func LoadDir(dir string) (lang.Storage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return lang.Storage{}, errors.Io(err.Error())
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".minos" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	storage := lang.NewStorage()
	for _, name := range names {
		fileStorage, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return lang.Storage{}, err
		}
		storage = storage.Merge(fileStorage)
	}

	return storage, nil
}
