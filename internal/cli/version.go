package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/MyNextID/cvc-go/pkg/cvc"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printer().Print(versionResult{
				Version:   cvc.LibraryVersion(),
				Commit:    cvc.GitCommit,
				Engine:    "circl " + cvc.EngineVersion(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			})
		},
	}
}
