// SPDX-License-Identifier: MPL-2.0

// Package tui provides the Bubble Tea models of gridkit: the interactive
// data table, the themed input field, the theme toggle and the demo app
// composing them.
//
// Every model implements EmbeddableComponent so that it can run on its own
// tea.Program or be hosted by a parent model that owns the terminal. Models
// read their colors from a *theme.Provider passed in Config and re-render
// when the provider's mode changes.
package tui
