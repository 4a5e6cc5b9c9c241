// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds longer Markdown guidance for recurring
// problems, rendered in the terminal with glamour.
package issue
