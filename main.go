// SPDX-License-Identifier: MPL-2.0

// Command gridkit shows tabular data as sortable, selectable terminal tables.
package main

import cmd "github.com/gridkit/gridkit/cmd/gridkit"

func main() {
	cmd.Execute()
}
