package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:                   "mkdir image:path ...",
	Short:                 "Create a directory in an ADFS image",
	Long:                  `Create a directory named by the last path segment; fails with NotSupported on DFS images.`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		status := exitOK
		for _, spec := range args {
			path, target := splitSpec(spec, "$")
			h, ok := openImage("afsmkdir", path, true)
			if !ok {
				status = exitIOOrOpen
				continue
			}

			parentPath, name := target, target
			if i := strings.LastIndexByte(target, '.'); i >= 0 {
				parentPath, name = target[:i], target[i+1:]
			} else {
				parentPath = "$"
			}

			dest, err := h.Find(parentPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "afsmkdir: %s: %s\n", spec, err)
				status = exitIOOrOpen
				continue
			}
			if _, err := h.Mkdir(name, dest); err != nil {
				fmt.Fprintf(os.Stderr, "afsmkdir: %s: %s\n", spec, err)
				status = exitIOOrOpen
			}
		}
		os.Exit(status)
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}
