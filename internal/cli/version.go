package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trusteddatanow/catalog/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catalogctl %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.BuildDate)
		fmt.Printf("  go:     %s\n", version.GoVersion)
	},
}

func init() { rootCmd.AddCommand(versionCmd) }
