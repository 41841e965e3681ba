// Command fundingchain drives the mandate chain end to end from the
// terminal: discover vetted initiatives, run the Intent → Cart → Payment
// flow, and verify settlement receipt tokens.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/afara-labs/fundingchain/pkg/config"
	"github.com/afara-labs/fundingchain/pkg/directory"
	"github.com/afara-labs/fundingchain/pkg/state"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint, split out for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "demo":
		return runDemoCmd(args[2:], stdout, stderr)
	case "orgs":
		return runOrgsCmd(args[2:], stdout, stderr)
	case "verify":
		return runVerifyCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: fundingchain <command> [flags]

commands:
  demo     run the full Intent → Cart → Payment chain
  orgs     list vetted initiatives by region
  verify   verify a settlement receipt token`)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func openStore(cfg *config.Config) (state.Store, func(), error) {
	if cfg.StateBackend == config.BackendSQLite {
		s, err := state.OpenSQLiteStore(cfg.StateDBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	return state.NewMemoryStore(), func() {}, nil
}

func openDirectory(cfg *config.Config) (*directory.Directory, error) {
	if cfg.DirectoryPath != "" {
		return directory.LoadFile(cfg.DirectoryPath)
	}
	return directory.Default(), nil
}
