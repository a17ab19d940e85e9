package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/khaledouriemmi/djerba/internal/config"
	djerbaerrors "github.com/khaledouriemmi/djerba/internal/errors"
	"github.com/khaledouriemmi/djerba/internal/interp"
	"github.com/khaledouriemmi/djerba/internal/parser"
)

var (
	configPath string
	dumpAST    bool
	trace      bool
)

// runScript takes exactly one path argument; on usage error it prints
// the fixed message to standard output and exits 1; on success exit 0.
func runScript(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: djerba <file.djerba>")
		os.Exit(1)
	}
	filename := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("failed to read file %s: %v", filename, err)
	}
	source := string(content)

	program, err := parser.ParseProgram(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, djerbaerrors.Report(err, source, filename))
		os.Exit(1)
	}

	if dumpAST {
		fmt.Println("AST:")
		pretty.Println(program)
		fmt.Println()
	}

	tracing := trace || cfg.Trace
	if tracing {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	interpreter := interp.New(os.Stdout, os.Stdin)
	if err := interpreter.Run(program); err != nil {
		if rerr, ok := err.(*interp.RuntimeError); ok && rerr.Kind == interp.KindName && !cfg.ShowNameErrorContext {
			fmt.Fprintln(os.Stderr, err.Error())
		} else {
			fmt.Fprintln(os.Stderr, djerbaerrors.Report(err, source, filename))
		}
		os.Exit(1)
	}

	if tracing {
		fmt.Fprintf(os.Stderr, "[trace] finished %s\n", filename)
	}
	return nil
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
