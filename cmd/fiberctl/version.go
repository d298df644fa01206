package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}

			p := newPrinter(out)
			p.title("fiberctl")
			p.field("Version:", version)
			p.field("Commit:", commit)
			p.field("Built:", date)
			p.field("Go version:", runtime.Version())
			p.field("OS/Arch:", runtime.GOOS+"/"+runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
