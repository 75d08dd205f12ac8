package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lcalzada-xor/framestrip/pkg/jscheck"
	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/spf13/cobra"
)

var checkRunFlag bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files|-]...",
		Short: "Check that rewriting keeps JavaScript parseable",
		Long: `Rewrite each file in memory and parse the result. With --run both
versions are executed in a sandbox that nests the code in an outer frame,
and the command reports whether the original busts out of it and whether
the rewrite still does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			out := cmd.OutOrStdout()
			broken := 0
			for _, arg := range args {
				src, err := readSource(cmd, arg)
				if err != nil {
					return err
				}
				rewritten := security.Strip(src)

				status := "ok"
				if jscheck.Parse(src) != nil {
					status = "unparsed"
				} else if err := jscheck.Compare(src, rewritten); err != nil {
					status = "broken"
					broken++
					log.V("%s: %v", arg, err)
				}
				fmt.Fprintf(out, "%s\t%s", arg, status)

				if checkRunFlag && status == "ok" {
					before, after := jscheck.NewSandbox(), jscheck.NewSandbox()
					if err := before.Run(src); err != nil {
						log.VV("%s: original: %v", arg, err)
					}
					if err := after.Run(rewritten); err != nil {
						log.VV("%s: rewritten: %v", arg, err)
					}
					log.Section(arg)
					for _, name := range after.Resolved {
						log.Detail("resolved %s", name)
					}
					fmt.Fprintf(out, "\tbusts=%t\tafter=%t\tresolved=%d", before.Busted, after.Busted, len(after.Resolved))
					if after.Busted {
						broken++
					}
				}
				fmt.Fprintln(out)
			}
			if broken > 0 {
				return fmt.Errorf("%d of %d inputs failed the check", broken, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkRunFlag, "run", false, "execute original and rewritten code in a sandbox")

	return cmd
}

func readSource(cmd *cobra.Command, arg string) (string, error) {
	var b []byte
	var err error
	if arg == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
