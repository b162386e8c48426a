// Command vmrun is the VM launcher named but left unspecified in §6:
// it parses `-t <tick-ms>` and `-s <shared-bytes>`, then hands the
// remaining arguments to vmcore.Start as the module path and its own
// arguments.
package main

import (
	"fmt"
	"os"

	"github.com/joeycumines/vmcore"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("vmrun", pflag.ContinueOnError)
	tickMS := flags.IntP("tick", "t", 100, "tick period in milliseconds (positive)")
	sharedSize := flags.IntP("shared", "s", 0x4000, "shared bounce-buffer region size in bytes (positive)")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *tickMS <= 0 {
		fmt.Fprintln(os.Stderr, "Invalid parameter for -t must be positive!")
		return 1
	}
	if *sharedSize <= 0 {
		fmt.Fprintln(os.Stderr, "Invalid parameter for -s must be positive!")
		return 1
	}

	moduleArgs := flags.Args()
	if len(moduleArgs) == 0 {
		fmt.Fprintln(os.Stderr, "Syntax Error: vmrun [options] module [moduleoptions]")
		return 1
	}

	status, err := vmcore.Start(uint32(*tickMS), *sharedSize, moduleArgs)
	if err != nil || status != vmcore.Success {
		fmt.Fprintln(os.Stderr, "Virtual Machine failed to start.")
		return 1
	}

	return 0
}
