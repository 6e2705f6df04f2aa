package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repomap",
		Short: "Map a codebase's structure, imports, and call graph",
		Long: `Repomap builds a compact map of a repository - entry points, core
files ranked by centrality, architecture clusters, and hot functions -
using heuristic static analysis, without compiling anything.

The map is designed to fit in an LLM context window and give a fast
orientation before reading individual files.`,
	}

	mapCmd := &cobra.Command{
		Use:   "map [path]",
		Short: "Analyze a repository and print its codebase map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunMap,
	}
	mapCmd.Flags().Int("top", 0, "Entries per section (default 10)")
	mapCmd.Flags().Int("max-files", 0, "Cap on files entering analysis (default 10000)")
	mapCmd.Flags().Int("workers", 0, "Extraction workers (default: number of CPUs)")
	mapCmd.Flags().StringSliceP("lang", "l", []string{}, "Languages to include (default: all)")
	mapCmd.Flags().Bool("json", false, "Print the full machine-readable result")
	mapCmd.Flags().Bool("no-gitignore", false, "Do not honor the root .gitignore")

	structureCmd := &cobra.Command{
		Use:   "structure <file>",
		Short: "Print one file's structure as a tree",
		Args:  cobra.ExactArgs(1),
		RunE:  RunStructure,
	}
	structureCmd.Flags().Bool("json", false, "Print machine-readable structure")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServe(cmd, version)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repomap %s\n", version)
		},
	}

	rootCmd.AddCommand(
		mapCmd,
		structureCmd,
		serveCmd,
		versionCmd,
	)

	return rootCmd
}
