package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldlist/pkg/widget"
)

func newCheckCmd(a *app) *cobra.Command {
	var listsPath string

	cmd := &cobra.Command{
		Use:   "check <page.html>",
		Short: "Validate the submitted values of a page against list definitions",
		Long: `Collects the form values of the page and checks every list marked unique in
the definitions file for repeated values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listsPath == "" {
				return errors.New("--lists is required")
			}
			lists, err := a.loadLists(listsPath, nil)
			if err != nil {
				return err
			}
			page, err := a.loadPage(args[0])
			if err != nil {
				return err
			}

			values := page.Values()
			var errs []error
			checked := 0
			for _, list := range lists {
				if !list.Unique {
					continue
				}
				checked++
				if err := widget.ValidateUnique(values, list); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", list.ID, err))
				}
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "ok: %d unique list(s) checked\n", checked)
			return err
		},
	}

	cmd.Flags().StringVar(&listsPath, "lists", "", "list definitions file or directory")
	return cmd
}
