package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldlist/internal/prompt"
	"github.com/goliatone/go-fieldlist/internal/session"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <page.html>",
		Short: "Edit the field lists of a page interactively",
		Long: `Runs an interactive session over the page's field lists and prints the edited
markup. When --output names an existing file you are asked before it is
overwritten, unless --force is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.loadPage(args[0])
			if err != nil {
				return err
			}

			driver := a.newDriver()
			if output != "" && !force {
				if _, err := os.Stat(output); err == nil {
					ok, err := driver.Confirm(cmd.Context(), prompt.ConfirmConfig{
						Message: fmt.Sprintf("%s exists. Overwrite it when done?", output),
					})
					if err != nil {
						return err
					}
					if !ok {
						return driver.Info(cmd.Context(), fmt.Sprintf("not overwriting %s", output))
					}
				}
			}

			if err := session.Run(cmd.Context(), page, driver, session.WithLogger(a.logger)); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := page.Document().Render(&buf); err != nil {
				return err
			}
			return a.writeOutput(output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite --output without asking")
	return cmd
}
