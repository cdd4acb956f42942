package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// stderrSink adapts os.Stderr to acorn.Diagnostics.
type stderrSink struct{}

func (stderrSink) Printf(format string, args ...interface{}) { fmt.Fprintf(os.Stderr, format, args...) }

var checkCmd = &cobra.Command{
	Use:                   "check image ...",
	Short:                 "Validate an image's structural consistency",
	Long:                  `Run the consistency checker over one or more images, reporting every diagnostic found.`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		for _, path := range args {
			h, ok := openImage("afschk", path, false)
			if !ok {
				failed++
				continue
			}
			if err := h.Check(path, stderrSink{}); err != nil {
				fmt.Fprintf(os.Stderr, "afschk: %s: %s\n", path, err)
				failed++
			}
		}
		os.Exit(failed)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
