package cli

import (
	"github.com/spf13/cobra"

	"github.com/repomap-dev/repomap/internal/lang"
	"github.com/repomap-dev/repomap/internal/mcpserver"
)

func RunServe(cmd *cobra.Command, version string) error {
	server := mcpserver.New(lang.NewDefaultRegistry(), version)
	return server.Run(cmd.Context())
}
