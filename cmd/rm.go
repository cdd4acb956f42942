package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:                   "rm image:pattern ...",
	Short:                 "Remove matching entries from a DFS image",
	Long:                  `Delete every catalogue entry matching pattern; only supported on DFS images.`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		status := exitOK
		for _, spec := range args {
			path, pattern := splitSpec(spec, "*")
			h, ok := openImage("afsrm", path, true)
			if !ok {
				status = exitIOOrOpen
				continue
			}
			if err := h.Remove(pattern); err != nil {
				fmt.Fprintf(os.Stderr, "afsrm: %s: %s\n", spec, err)
				status = exitIOOrOpen
			}
		}
		os.Exit(status)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
