package widget

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldlist/pkg/render/template"
	"github.com/goliatone/go-fieldlist/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldlist/pkg/repeatable"
	"github.com/goliatone/go-fieldlist/pkg/sanitize"
)

const templateName = "templates/field_list"

// Theme token keys read from the selected manifest. Token values are
// appended to the marker class of the matching element.
const (
	TokenContainer = "field-list.container"
	TokenRow       = "field-list.row"
	TokenControl   = "field-list.control"
	TokenInput     = "field-list.input"
	TokenSelect    = "field-list.select"
	TokenAdd       = "field-list.add"
	TokenRemove    = "field-list.remove"
	TokenErrors    = "field-list.errors"
)

var defaultTokens = map[string]string{
	TokenContainer: "field-list-container form-group",
	TokenRow:       "input-group my-1",
	TokenControl:   "field-list-control input-group",
	TokenInput:     "form-control",
	TokenSelect:    "form-select",
	TokenAdd:       "btn btn-primary",
	TokenRemove:    "btn btn-danger",
	TokenErrors:    "invalid-feedback d-block",
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer replaces the pongo2 engine.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// WithTemplatesFS loads templates/field_list.tpl from files instead of the
// embedded copy.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templatesFS = files
		}
	}
}

// WithMarkers sets the marker classes emitted in the markup.
func WithMarkers(markers repeatable.Markers) Option {
	return func(r *Renderer) {
		r.markers = markers.Resolve()
	}
}

// WithThemeSelector resolves theme tokens and the variant per render.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		r.themes = selector
	}
}

// WithSanitize toggles the bluemonday pass over rendered markup.
func WithSanitize(enabled bool) Option {
	return func(r *Renderer) {
		r.sanitize = enabled
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RenderOptions carries per-render choices.
type RenderOptions struct {
	Theme   string
	Variant string
	// Errors holds messages keyed by list id, as produced by MapErrors or
	// ValidateLists.
	Errors map[string][]string
}

// Renderer produces field-list markup that repeatable.New accepts.
type Renderer struct {
	templates   template.TemplateRenderer
	templatesFS fs.FS
	markers     repeatable.Markers
	themes      theme.ThemeSelector
	sanitize    bool
	logger      *zap.Logger
}

// NewRenderer builds a Renderer backed by the embedded pongo2 template.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{
		templatesFS: embeddedTemplates,
		markers:     repeatable.DefaultMarkers(),
		sanitize:    true,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	if r.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(r.templatesFS))
		if err != nil {
			return nil, fmt.Errorf("widget: init template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

// Markers reports the marker classes the renderer emits.
func (r *Renderer) Markers() repeatable.Markers {
	return r.markers
}

// Render renders one list.
func (r *Renderer) Render(ctx context.Context, list List, opts RenderOptions) ([]byte, error) {
	if r == nil {
		return nil, errors.New("widget: renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := list.Normalize()
	if err != nil {
		return nil, err
	}

	tokens, variant, err := r.resolveTheme(opts)
	if err != nil {
		return nil, err
	}

	data := r.templateData(normalized, tokens, variant, normalizeMessages(opts.Errors[normalized.ID]))
	out, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("widget: render list %q: %w", normalized.ID, err)
	}

	r.logger.Debug("rendered field list",
		zap.String("list", normalized.ID),
		zap.Int("rows", normalized.RowCount()),
		zap.String("variant", variant),
	)

	if r.sanitize {
		return sanitize.Bytes([]byte(out)), nil
	}
	return []byte(strings.TrimSpace(out)), nil
}

// RenderAll renders lists in order and concatenates the markup.
func (r *Renderer) RenderAll(ctx context.Context, lists []List, opts RenderOptions) ([]byte, error) {
	var out []byte
	for _, list := range lists {
		chunk, err := r.Render(ctx, list, opts)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (r *Renderer) resolveTheme(opts RenderOptions) (map[string]string, string, error) {
	tokens := make(map[string]string, len(defaultTokens))
	for key, value := range defaultTokens {
		tokens[key] = value
	}
	variant := strings.TrimSpace(opts.Variant)

	if r.themes == nil || strings.TrimSpace(opts.Theme) == "" {
		return tokens, variant, nil
	}

	selection, err := r.themes.Select(opts.Theme, opts.Variant)
	if err != nil {
		return nil, "", fmt.Errorf("widget: select theme %q: %w", opts.Theme, err)
	}
	if selection == nil {
		return tokens, variant, nil
	}
	if selection.Variant != "" {
		variant = selection.Variant
	}
	if selection.Manifest != nil {
		for key := range defaultTokens {
			if value, ok := selection.Manifest.Tokens[key]; ok {
				tokens[key] = strings.TrimSpace(value)
			}
		}
	}
	return tokens, variant, nil
}

func (r *Renderer) templateData(list List, tokens map[string]string, variant string, errs []string) map[string]any {
	rows := make([]map[string]any, 0, list.RowCount())
	for i := range list.RowCount() {
		value := list.valueAt(i)
		row := map[string]any{
			"id":        list.RowID(i),
			"name":      list.ControlName(i),
			"value":     value,
			"remove_id": list.RemoveButtonID(i),
		}
		if list.Control == ControlSelect {
			row["choices"] = choicesFor(list.Choices, value)
		}
		rows = append(rows, row)
	}

	return map[string]any{
		"list": map[string]any{
			"id":           list.ID,
			"label":        list.Label,
			"control":      string(list.Control),
			"input_type":   list.InputType,
			"placeholder":  list.Placeholder,
			"add_label":    list.AddLabel,
			"remove_label": list.RemoveLabel,
			"control_id":   list.ControlID(),
			"add_id":       list.AddButtonID(),
		},
		"rows":    rows,
		"errors":  errs,
		"variant": variant,
		"classes": map[string]string{
			"container": joinClasses(r.markers.Container, tokens[TokenContainer]),
			"row":       joinClasses(r.markers.Row, tokens[TokenRow]),
			"control":   tokens[TokenControl],
			"input":     tokens[TokenInput],
			"select":    tokens[TokenSelect],
			"add":       joinClasses(r.markers.Add, tokens[TokenAdd]),
			"remove":    joinClasses(r.markers.Remove, tokens[TokenRemove]),
			"errors":    joinClasses("field-list-errors", tokens[TokenErrors]),
		},
	}
}

func choicesFor(choices []Choice, selected string) []map[string]any {
	out := make([]map[string]any, 0, len(choices))
	for _, choice := range choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		out = append(out, map[string]any{
			"value":    choice.Value,
			"label":    label,
			"selected": selected != "" && choice.Value == selected,
		})
	}
	return out
}

func joinClasses(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
