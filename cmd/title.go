package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:                   "title image title",
	Short:                 "Set an image's volume title",
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		path, title := args[0], args[1]
		h, ok := openImage("afstitle", path, true)
		if !ok {
			os.Exit(exitIOOrOpen)
		}
		if err := h.SetTitle(title); err != nil {
			fmt.Fprintf(os.Stderr, "afstitle: %s: %s\n", path, err)
			os.Exit(exitIOOrOpen)
		}
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
