// SPDX-License-Identifier: MPL-2.0

// Package watch reports changes to dataset files.
//
// A Watcher monitors one directory and fires a debounced callback when files
// whose names match its glob patterns are written, created or renamed into
// place. Events inside the debounce window are coalesced so the callback runs
// once with every changed name.
package watch
