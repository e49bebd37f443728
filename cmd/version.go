package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at link time with -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the inkfell version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("inkfell", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
