package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/speedmed/clinic-console/internal/console"
)

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive console; form state is kept between commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if err := a.console.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "connected to %s; type \"help\" for commands\n", a.client.BaseURL())

			for {
				fmt.Fprintf(out, "%s> ", a.console.Router.Active())
				line, err := a.term.ReadLine()
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(out)
					return nil
				}
				if err != nil {
					return err
				}
				err = a.console.Exec(ctx, line)
				switch {
				case errors.Is(err, console.ErrQuit):
					return nil
				case err != nil && !reported(err):
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				}
			}
		},
	}
}
