// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error
// instead of returning it.
package testutil
