package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "djerba <file.djerba>",
	Short: "Djerba interpreter",
	Long: `djerba is a Go implementation of the Djerba scripting language.

Djerba is a small imperative scripting language with a sigil-heavy surface
syntax: $name for variable references, :> for print, @> for for-loops, !>
for return, <- for assignment.`,
	Version: Version,
	// Argument-count enforcement is done inside runScript, not via
	// cobra's Args validator: the usage message must go to standard
	// output verbatim, not cobra's own usage text to standard error.
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScript,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a djerba.yaml settings file")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before executing")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "trace execution start/end on stderr")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
