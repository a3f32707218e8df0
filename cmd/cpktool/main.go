// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command cpktool lists and extracts the contents of CRI Middleware CPK
// archives.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cpktool",
	Short: "Inspect and extract CRI Middleware CPK archives",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cpktool version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cpktool version 0.1.0")
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(extractCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
