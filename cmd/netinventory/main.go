// Command netinventory tracks network devices and plans subnets from the
// terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const usageText = `Usage: netinventory [-config file] <command> [flags]

Commands:
  shell     interactive menu (default)
  plan      print the subnet report for a CIDR block
  export    write the inventory to CSV or YAML
  report    print device counts by status, location and type
  backup    archive the data file and config
  restore   extract a backup archive
  version   print build information
`

// streams carries the process's standard streams so commands can be driven
// from tests.
type streams struct {
	in       io.Reader
	out, err io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

// run dispatches a command line and returns the process exit code:
// 0 on success, 1 on failure and 2 on usage errors.
func run(args []string, std streams) int {
	global := flag.NewFlagSet("netinventory", flag.ContinueOnError)
	global.SetOutput(std.err)
	global.Usage = func() { fmt.Fprint(std.err, usageText) }
	configPath := global.String("config", "", "path to YAML configuration file")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rest := global.Args()
	cmd := "shell"
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "shell":
		return runShell(*configPath, rest, std)
	case "plan":
		return runPlan(*configPath, rest, std)
	case "export":
		return runExport(*configPath, rest, std)
	case "report":
		return runReport(*configPath, rest, std)
	case "backup":
		return runBackup(*configPath, rest, std)
	case "restore":
		return runRestore(rest, std)
	case "version":
		return runVersion(rest, std)
	case "help", "-h", "--help":
		fmt.Fprint(std.out, usageText)
		return 0
	default:
		fmt.Fprintf(std.err, "unknown command %q\n\n", cmd)
		fmt.Fprint(std.err, usageText)
		return 2
	}
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(name string, std streams) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(std.err)
	return fs
}

// parseFlags parses args and maps a failure to an exit code.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}
