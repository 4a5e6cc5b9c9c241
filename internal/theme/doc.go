// SPDX-License-Identifier: MPL-2.0

// Package theme holds the light/dark appearance mode shared by gridkit
// components.
//
// The mode lives in a Provider created once at the application root and
// passed down explicitly, either through component options or through a
// context.Context (NewContext / FromContext). Components read the Palette
// of the current mode when rendering and may Subscribe to mode changes.
// There is no package-level mutable state.
package theme
