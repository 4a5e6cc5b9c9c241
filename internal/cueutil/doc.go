// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// decodes them into Go values.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Config",
//		cueutil.WithFilename(path), cueutil.WithConcrete(false))
//
// Errors name the file and the offending field path, e.g.
// "config.cue: table.height: invalid value 0 (out of bound >=1)".
package cueutil
