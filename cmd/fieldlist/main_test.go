package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-fieldlist/internal/config"
	"github.com/goliatone/go-fieldlist/internal/prompt"
	"github.com/goliatone/go-fieldlist/internal/session"
)

const testPage = `<ul id="tags" class="field-list">
<li id="row-tags-0" class="field-list-row"><input name="tags[0]" value="go"><button type="button" class="field-list-remove">x</button></li>
<li id="control-tags"><button type="button" class="field-list-add">+</button></li>
</ul>`

const testLists = `lists:
  - id: tags
    values: [go, html]
    unique: true
  - id: links
`

type harness struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
	driver prompt.Driver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{dir: t.TempDir()}
	h.write(t, "page.html", testPage)
	h.write(t, "lists.yaml", testLists)
	return h
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func (h *harness) write(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(h.path(name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	a := newApp()
	a.stdin = strings.NewReader("")
	a.stdout = &h.stdout
	a.stderr = &h.stderr
	a.newDriver = func() prompt.Driver { return h.driver }

	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--config", h.path("fieldlist.yml")}, args...))
	return cmd.Execute()
}

func TestRenderCommand(t *testing.T) {
	h := newHarness(t)
	if err := h.run(t, "render", h.path("lists.yaml"), "--list", "tags"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{`id="row-tags-1"`, `name="tags[1]"`, `value="html"`, `class="field-list `} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `id="links"`) {
		t.Fatalf("--list should filter out other lists")
	}

	if err := h.run(t, "render", h.path("lists.yaml"), "--list", "nope"); err == nil {
		t.Fatalf("expected unknown list error")
	}
}

func TestRenderCommandDirectoryInclude(t *testing.T) {
	h := newHarness(t)
	if err := os.MkdirAll(h.path("forms"), 0o755); err != nil {
		t.Fatal(err)
	}
	h.write(t, filepath.Join("forms", "emails.yaml"), "- id: emails\n  inputType: email\n")
	if err := h.run(t, "render", h.dir, "--include", "forms/*.yaml"); err != nil {
		t.Fatalf("render dir: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, `id="emails"`) || !strings.Contains(out, `type="email"`) {
		t.Fatalf("included list missing:\n%s", out)
	}
	if strings.Contains(out, `id="tags"`) {
		t.Fatalf("--include should skip lists.yaml:\n%s", out)
	}
}

func TestRenderCommandTemplateOverride(t *testing.T) {
	h := newHarness(t)
	if err := os.MkdirAll(h.path(filepath.Join("tpl", "templates")), 0o755); err != nil {
		t.Fatal(err)
	}
	h.write(t, filepath.Join("tpl", "templates", "field_list.tpl"),
		`<ul id="{{ list.id }}" class="{{ classes.container }}">{% for row in rows %}<li id="{{ row.id }}" class="{{ classes.row }}"><input name="{{ row.name }}" value="{{ row.value }}"></li>{% endfor %}</ul>`)

	if err := h.run(t, "render", h.path("lists.yaml"), "--list", "tags", "--templates", h.path("tpl")); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, `name="tags[1]"`) || strings.Contains(out, "field-list-add") {
		t.Fatalf("override template not used:\n%s", out)
	}
}

func TestRenderCommandWithConfiguredTheme(t *testing.T) {
	h := newHarness(t)
	h.write(t, "fieldlist.yml", `theme: acme
themes:
  acme:
    variant: dark
    tokens:
      row: acme-row
`)
	if err := h.run(t, "render", h.path("lists.yaml"), "--list", "links"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, `data-bs-theme="dark"`) || !strings.Contains(out, `class="field-list-row acme-row"`) {
		t.Fatalf("theme not applied:\n%s", out)
	}
}

func TestApplyCommand(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "apply", h.path("page.html"),
		"--op", "add:tags",
		"--op", "set:tags[1]=html",
		"--op", "remove:row-tags-0",
		"--values",
	)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != "tags[1]=html" {
		t.Fatalf("unexpected values %q", got)
	}

	out := h.path("out.html")
	if err := h.run(t, "apply", h.path("page.html"), "--op", "add:tags", "-o", out); err != nil {
		t.Fatalf("apply to file: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `id="row-tags-1"`) || strings.Contains(string(data), "<body>") {
		t.Fatalf("unexpected output file:\n%s", data)
	}

	if err := h.run(t, "apply", h.path("page.html"), "--op", "bogus"); err == nil {
		t.Fatalf("expected invalid op error")
	}
}

func TestEditCommand(t *testing.T) {
	h := newHarness(t)
	h.driver = &prompt.Script{Answers: []prompt.Answer{
		{Select: session.ActionAdd},
		{Select: session.ActionSet}, {Select: "row-tags-1"}, {Input: "rust"},
		{Select: session.ActionDone},
	}}
	if err := h.run(t, "edit", h.path("page.html")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, `name="tags[1]" value="rust"`) {
		t.Fatalf("edit result missing new row:\n%s", out)
	}
}

func TestEditAsksBeforeOverwriting(t *testing.T) {
	h := newHarness(t)
	h.write(t, "out.html", "keep me")

	declined := &prompt.Script{Answers: []prompt.Answer{{Confirm: false}}}
	h.driver = declined
	if err := h.run(t, "edit", h.path("page.html"), "-o", h.path("out.html")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got, _ := os.ReadFile(h.path("out.html")); string(got) != "keep me" {
		t.Fatalf("declined overwrite changed the file: %q", got)
	}
	if len(declined.Messages) != 1 || !strings.HasPrefix(declined.Messages[0], "not overwriting") {
		t.Fatalf("unexpected messages %q", declined.Messages)
	}

	h.driver = &prompt.Script{Answers: []prompt.Answer{
		{Confirm: true},
		{Select: session.ActionAdd},
		{Select: session.ActionDone},
	}}
	if err := h.run(t, "edit", h.path("page.html"), "-o", h.path("out.html")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, err := os.ReadFile(h.path("out.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `id="row-tags-1"`) {
		t.Fatalf("confirmed overwrite missing edits:\n%s", got)
	}

	h.driver = &prompt.Script{Answers: []prompt.Answer{{Select: session.ActionDone}}}
	if err := h.run(t, "edit", h.path("page.html"), "-o", h.path("out.html"), "--force"); err != nil {
		t.Fatalf("edit --force: %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	h := newHarness(t)
	if err := h.run(t, "check", h.path("page.html"), "--lists", h.path("lists.yaml")); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "ok: 1 unique list(s) checked") {
		t.Fatalf("unexpected output %q", h.stdout.String())
	}

	h.write(t, "dup.html", `<ul id="tags" class="field-list">
<li id="row-tags-0" class="field-list-row"><input name="tags[0]" value="go"></li>
<li id="row-tags-1" class="field-list-row"><input name="tags[1]" value="go"></li>
</ul>`)
	if err := h.run(t, "check", h.path("dup.html"), "--lists", h.path("lists.yaml")); err == nil {
		t.Fatalf("expected uniqueness failure")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	h := newHarness(t)
	if err := h.run(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := config.Load(h.path("fieldlist.yml")); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if err := h.run(t, "config", "init"); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := h.run(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	if err := h.run(t, "config", "show"); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "container: field-list") {
		t.Fatalf("unexpected config output:\n%s", h.stdout.String())
	}
}

func TestInvalidConfigFails(t *testing.T) {
	h := newHarness(t)
	h.write(t, "fieldlist.yml", "log_level: loud\n")
	if err := h.run(t, "apply", h.path("page.html")); err == nil {
		t.Fatalf("expected config validation error")
	}
}
