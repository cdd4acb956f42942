package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"acornfs/acorn"
)

var treeCmd = &cobra.Command{
	Use:                   "tree image[:start] ...",
	Short:                 "Recursively list every object under start",
	Long:                  `Pre-order walk every object reachable from start (default the root).`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		status := exitOK
		for _, spec := range args {
			path, start := splitSpec(spec, "$")
			h, ok := openImage("afstree", path, false)
			if !ok {
				status = exitIOOrOpen
				continue
			}
			var startObj *acorn.Object
			if start != "$" {
				obj, err := h.Find(start)
				if err != nil {
					fmt.Fprintf(os.Stderr, "afstree: %s: %s\n", path, err)
					status = exitIOOrOpen
					continue
				}
				startObj = obj
			}
			err := h.Walk(startObj, func(obj *acorn.Object, objPath string) error {
				fmt.Println(formatObject(obj, objPath))
				return nil
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "afstree: %s: %s\n", path, err)
				status = exitIOOrOpen
			}
		}
		os.Exit(status)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
