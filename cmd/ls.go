package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"acornfs/acorn"
)

var lsCmd = &cobra.Command{
	Use:                   "ls image[:pattern] ...",
	Short:                 "List objects matching a pattern",
	Long:                  `List every object matching pattern (default "*") in one or more images.`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		status := exitOK
		for _, spec := range args {
			path, pattern := splitSpec(spec, "*")
			h, ok := openImage("afsls", path, false)
			if !ok {
				status = exitIOOrOpen
				continue
			}
			err := h.Glob(nil, pattern, func(obj *acorn.Object, objPath string) error {
				fmt.Println(formatObject(obj, objPath))
				return nil
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "afsls: %s: %s\n", path, err)
				status = exitIOOrOpen
			}
		}
		os.Exit(status)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
