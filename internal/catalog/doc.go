// SPDX-License-Identifier: MPL-2.0

// Package catalog is a registry of named component stories.
//
// A Story renders one component in one configuration as a static string,
// so every variant, size and state of the input field, the theme toggle and
// the data table can be inspected from the command line without running an
// interactive program. Each component also ships markdown documentation that
// is rendered through glamour.
package catalog
