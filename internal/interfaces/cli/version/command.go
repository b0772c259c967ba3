package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"hungrylist/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hungrylist %s (%s)\n", version.String(), runtime.Version())
		},
	}
}
