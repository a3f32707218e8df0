// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/saferwall-labs/cpk"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.cpk> [output_dir]",
	Short: "Extract every file in a CPK archive to a directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().Int("workers", runtime.NumCPU(), "number of files to extract concurrently")
	extractCmd.Flags().Bool("p5r", false, "reverse the Persona 5 Royal per-file XOR scramble")
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	outputDir := strings.TrimSuffix(input, filepath.Ext(input))
	if len(args) == 2 {
		outputDir = args[1]
	}

	workers, _ := cmd.Flags().GetInt("workers")
	p5r, _ := cmd.Flags().GetBool("p5r")

	r, err := cpk.Open(input, &cpk.Options{P5RDecryption: p5r, Allocator: cpk.NewFreeList()})
	if err != nil {
		return err
	}
	defer r.Close()

	files, err := r.Catalog()
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	// Sort largest-first so the slowest extractions start immediately
	// instead of being left for the tail of the run, mirroring the
	// original CLI's load-balancing heuristic.
	sort.Slice(files, func(i, j int) bool { return files[i].FileSize > files[j].FileSize })

	dirs := make(map[string]struct{}, len(files))
	for _, f := range files {
		dirs[filepath.Join(outputDir, f.Directory)] = struct{}{}
	}
	for d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	bar := progressbar.Default(int64(len(files)), "extracting")

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, f := range files {
		f := f
		g.Go(func() error {
			defer bar.Add(1)
			block, err := r.Extract(f)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", f.Directory, f.Name, err)
			}
			defer block.Release()
			path := filepath.Join(outputDir, f.Directory, f.Name)
			return os.WriteFile(path, block.Bytes(), 0o644)
		})
	}
	return g.Wait()
}
