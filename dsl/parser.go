// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Minos Contributors

package dsl

import (
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/jonhteper/minos-go/errors"
)

// FileVersion identifies a supported grammar version. Base is the
// semver-parseable numeric tag; Macros marks the "-macros" suffixed
// variant.
type FileVersion struct {
	Base   *semver.Version
	Macros bool
}

// String renders the version tag the way it appears in a preamble.
func (v FileVersion) String() string {
	if v.Macros {
		return v.Base.Original() + "-macros"
	}
	return v.Base.Original()
}

// preambleRegex extracts the version tag without requiring the rest
// of the file to be well-formed, so a malformed body still reports
// SyntaxNotSupported against a clean version read instead of a
// confusing generic parse error.
var preambleRegex = regexp.MustCompile(`syntax\s*=\s*([0-9]+(?:\.[0-9]+)*)(-macros)?\s*;`)

// supportedVersions is the registry of grammar versions this module
// knows how to parse. A real extension point for a future "0.17"
// would add an entry here.
var supportedVersions = map[string]bool{
	"0.16": true,
}

// DetectVersion scans content for the `syntax = X[-macros];` preamble
// and validates the version against supportedVersions, without
// running the full parser. Returns errors.SyntaxNotSupported if the
// preamble is missing, unparseable as a semver, or not a version this
// module implements.
func DetectVersion(content string) (FileVersion, error) {
	m := preambleRegex.FindStringSubmatch(content)
	if m == nil {
		return FileVersion{}, errors.SyntaxNotSupported("<no syntax preamble found>")
	}

	base, err := semver.NewVersion(m[1])
	if err != nil {
		return FileVersion{}, errors.SyntaxNotSupported(m[1])
	}

	key := base.Original()
	if !supportedVersions[key] {
		return FileVersion{}, errors.SyntaxNotSupported(m[0])
	}

	return FileVersion{Base: base, Macros: m[2] != ""}, nil
}

// ParseFile parses content against grammar "0.16", returning the
// macro-free AST directly.
func ParseFile(content string) (*File, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, errors.Io(err.Error())
	}

	file, err := parser.ParseString("", content)
	if err != nil {
		return nil, translateParseError(err)
	}
	return file, nil
}

// ParseMacroFile parses content against grammar "0.16-macros" and
// expands every macro_call before returning, so callers always see a
// plain File regardless of which grammar variant the source declared.
func ParseMacroFile(content string) (*File, error) {
	parser, err := NewMacroParser()
	if err != nil {
		return nil, errors.Io(err.Error())
	}

	fileM, err := parser.ParseString("", content)
	if err != nil {
		return nil, translateParseError(err)
	}

	return Expand(fileM)
}

// Parse dispatches on the preamble's declared version, parsing with
// whichever grammar it names and always returning a plain,
// macro-free File.
func Parse(content string) (*File, error) {
	version, err := DetectVersion(content)
	if err != nil {
		return nil, err
	}

	if version.Macros {
		return ParseMacroFile(content)
	}
	return ParseFile(content)
}
