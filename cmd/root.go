// Package cmd implements the afs command-line front end: one cobra verb
// per operation (ls, tree, cp, rm, mkdir, title, check), each a thin
// driver over the acorn/adfs/dfs/opener core (spec.md §6, §1 "thin
// drivers over the core API").
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"acornfs/acorn"
	"acornfs/opener"
)

var rootCmd = &cobra.Command{
	Use:   "afs",
	Short: "Inspect and manipulate Acorn DFS/ADFS disk images",
	Long: `afs reads and writes Acorn DFS and ADFS disk images: list and walk
directories, copy files to and from the host, remove and create
entries, set the volume title, and check an image's structural
consistency.`,
	DisableFlagsInUseLine: true,
}

// Execute runs the root command, matching the teacher's cmd.Execute()
// entrypoint (retroio's cmd package main hook).
func Execute() error {
	return rootCmd.Execute()
}

// exit codes (spec.md §6 "Exit codes")
const (
	exitOK          = 0
	exitUsage       = 1
	exitIOOrOpen    = 2
	exitDestNotADir = 3
)

// splitSpec divides an "image:path" argument into its image pathname and
// Acorn path, substituting def when no ":" is present.
func splitSpec(spec, def string) (image, path string) {
	i := strings.IndexByte(spec, ':')
	if i < 0 {
		return spec, def
	}
	return spec[:i], spec[i+1:]
}

// openImage opens an image read-only (or read-write) through the shared
// registry, printing a diagnostic line and returning false on failure
// (spec.md §7 "tool: name: message" on the diagnostic sink).
func openImage(tool, path string, writable bool) (acorn.Handle, bool) {
	h, err := opener.OpenFile(acorn.Default, path, writable, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", tool, path, err)
		return nil, false
	}
	return h, true
}

// formatObject renders one object per spec.md §6's CLI line format:
// "attrs load exec length sector path" (original_source/acorn-fs.c
// acorn_fs_info, without its locale-dependent thousands separator).
func formatObject(obj *acorn.Object, path string) string {
	return fmt.Sprintf("%s %08X %08X %10d %06X %s",
		obj.Attr.String(), obj.LoadAddr, obj.ExecAddr, obj.Length, obj.Sector, path)
}
