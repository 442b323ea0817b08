package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldlist/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldlist/pkg/widget"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		listIDs   []string
		output    string
		themeName string
		variant   string
		templates string
		include   []string
	)

	cmd := &cobra.Command{
		Use:   "render <lists.yaml|dir>",
		Short: "Render field-list widgets from list definitions",
		Long: `Reads list definitions from a YAML or JSON file, or from every such file in a
directory (filtered by --include globs), and prints the widget markup. Use "-" to read definitions from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := a.loadLists(args[0], include)
			if err != nil {
				return err
			}
			if len(listIDs) > 0 {
				selected := make([]widget.List, 0, len(listIDs))
				for _, id := range listIDs {
					list, ok := widget.Find(lists, id)
					if !ok {
						return fmt.Errorf("list %q not found in %s", id, args[0])
					}
					selected = append(selected, list)
				}
				lists = selected
			}

			options := []widget.Option{
				widget.WithMarkers(a.cfg.Markers),
				widget.WithSanitize(a.cfg.Sanitize),
				widget.WithLogger(a.logger),
			}
			if len(a.cfg.Themes) > 0 {
				options = append(options, widget.WithThemeSelector(a.cfg.ThemeSelector()))
			}
			if templates != "" {
				// Files under the directory shadow the embedded templates.
				engine, err := gotemplate.New(
					gotemplate.WithBaseDir(templates),
					gotemplate.WithFS(widget.TemplatesFS()),
				)
				if err != nil {
					return err
				}
				options = append(options, widget.WithTemplateRenderer(engine))
			}
			renderer, err := widget.NewRenderer(options...)
			if err != nil {
				return err
			}

			opts := widget.RenderOptions{Theme: a.cfg.Theme, Variant: a.cfg.Variant}
			if themeName != "" {
				opts.Theme = themeName
			}
			if variant != "" {
				opts.Variant = variant
			}

			out, err := renderer.RenderAll(cmd.Context(), lists, opts)
			if err != nil {
				return err
			}
			return a.writeOutput(output, out)
		},
	}

	cmd.Flags().StringSliceVar(&listIDs, "list", nil, "render only these list ids")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name (overrides config)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant (overrides config)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns selecting list files in a directory (e.g. forms/**/*.yaml)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory holding templates/field_list.tpl overrides")
	return cmd
}

func (a *app) loadLists(path string, include []string) ([]widget.List, error) {
	if path != "-" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return widget.LoadLists(os.DirFS(path), include...)
		}
	}

	in, err := a.openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, in); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	source := path
	if path == "-" {
		source = "stdin"
	}
	return widget.DecodeLists(buf.Bytes(), source)
}
