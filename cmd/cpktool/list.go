// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saferwall-labs/cpk"
)

var listCmd = &cobra.Command{
	Use:   "list <input.cpk>",
	Short: "Print the files contained in a CPK archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "emit the catalog as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	r, err := cpk.Open(args[0], nil)
	if err != nil {
		return err
	}
	defer r.Close()

	files, err := r.Catalog()
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	if asJSON {
		return printJSON(files)
	}
	for _, f := range files {
		fmt.Printf("%s/%s\t%d\t%d\n", f.Directory, f.Name, f.FileSize, f.ExtractSize)
	}
	return nil
}

func printJSON(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return err
	}
	fmt.Println(pretty.String())
	return nil
}
