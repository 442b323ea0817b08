package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fieldlist "github.com/goliatone/go-fieldlist"
	"github.com/goliatone/go-fieldlist/internal/session"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		rawOps []string
		values bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "apply <page.html>",
		Short: "Replay row edits against a page",
		Long: `Parses the page, instruments every field list and replays the given ops as
clicks on the page's own add and remove buttons:

  --op add:<container-id>      add a row to a field list
  --op remove:<row-id>         remove a row
  --op set:<name>=<value>      set a control value

Prints the resulting HTML, or the submitted form values with --values.`,
		Example: `  fieldlist apply page.html --op add:tags --op set:tags[1]=go --values`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := fieldlist.ParseOps(rawOps)
			if err != nil {
				return err
			}
			page, err := a.loadPage(args[0])
			if err != nil {
				return err
			}
			if err := fieldlist.Apply(page, ops...); err != nil {
				return err
			}
			a.logger.Debug("ops applied", zap.Int("ops", len(ops)))

			if values {
				return a.writeOutput(output, []byte(session.FormatValues(page)))
			}
			var buf bytes.Buffer
			if err := page.Document().Render(&buf); err != nil {
				return err
			}
			return a.writeOutput(output, buf.Bytes())
		},
	}

	cmd.Flags().StringArrayVar(&rawOps, "op", nil, "edit to replay, repeatable")
	cmd.Flags().BoolVar(&values, "values", false, "print form values instead of HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// loadPage parses and instruments the page at path. Malformed containers are
// logged and skipped.
func (a *app) loadPage(path string) (*fieldlist.Page, error) {
	in, err := a.openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	page, err := fieldlist.LoadPage(in, a.repeatableOptions()...)
	if page == nil {
		return nil, err
	}
	if err != nil {
		a.logger.Warn("some field lists were skipped", zap.String("page", path), zap.Error(err))
	}
	return page, nil
}
