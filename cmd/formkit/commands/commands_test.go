package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/format"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const eventPage = `<!DOCTYPE html>
<html><body>
<div class="event-card">Semana</div>
<form id="event" data-validate>
  <div><input type="text" name="title" required></div>
  <div><input type="date" name="start_date"></div>
  <div><input type="date" name="end_date"></div>
  <div><input type="tel" name="contact_phone"></div>
  <div><input type="number" name="capacity" min="1" max="50"></div>
  <div><input type="file" name="banner" accept="image/*"></div>
</form>
</body></html>`

func run(t *testing.T, confirmer format.Confirmer, args ...string) (string, error) {
	t.Helper()
	out, _, err := runApp(t, confirmer, args...)
	return out, err
}

func runApp(t *testing.T, confirmer format.Confirmer, args ...string) (string, *app, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, a := newRootCmd(confirmer)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd, a)
	return out.String(), a, err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestMaskAndFormatCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"mask", "phone", "85987654321"}, want: "(85) 98765-4321\n"},
		{args: []string{"format", "date", "2026-10-18"}, want: "18/10/2026\n"},
		{args: []string{"format", "time", "14:30:00"}, want: "14:30\n"},
	}
	for _, tt := range tests {
		got, err := run(t, nil, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got != tt.want {
			t.Fatalf("%v: expected %q, got %q", tt.args, tt.want, got)
		}
	}

	if _, err := run(t, nil, "format", "date", "18/10/2026"); !errors.Is(err, format.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestApplyWritesEnhancedDocument(t *testing.T) {
	input := writeFile(t, "page.html", eventPage)
	output := filepath.Join(t.TempDir(), "out.html")

	if _, err := run(t, nil, "apply", "--input", input, "--output", output, "--today", "2026-10-18"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	doc, err := testsupport.LoadDocumentFromPath(output)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	form := testsupport.Form(t, doc, "event")
	if got := testsupport.Field(t, form, "start_date").AttrOr("min", ""); got != "2026-10-18" {
		t.Fatalf("expected start min, got %q", got)
	}
	if got := testsupport.Field(t, form, "contact_phone").Placeholder(); got != "(XX) XXXXX-XXXX" {
		t.Fatalf("expected phone placeholder, got %q", got)
	}
	card, ok := doc.Query(dom.Class("event-card"))
	if !ok || card.Style("opacity") != "0" {
		t.Fatal("expected the card to start hidden")
	}

	if _, err := run(t, nil, "apply", "--input", input, "--today", "18/10/2026"); err == nil {
		t.Fatal("expected malformed --today to fail")
	}
	if _, err := run(t, nil, "apply"); err == nil {
		t.Fatal("expected missing --input to fail")
	}
}

func TestApplyMatchesGolden(t *testing.T) {
	out, err := run(t, nil, "apply", "--input", filepath.Join("testdata", "apply_event.html"), "--today", "2026-10-18")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "apply_event.golden.html"), []byte(out))
}

func TestValidateReportsIssues(t *testing.T) {
	input := writeFile(t, "page.html", eventPage)
	banner := writeFile(t, "banner.pdf", "%PDF")

	out, err := run(t, nil, "validate", "--input", input,
		"--set", "capacity=80",
		"--set", "contact_phone=85987654321",
		"--file", "banner="+banner,
	)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	want := []string{
		"title: Este campo é obrigatório",
		"capacity: Valor deve ser no mínimo 1 e no máximo 50",
		"banner: Por favor, selecione uma imagem válida (JPEG, PNG, GIF ou WebP)",
	}
	if diff := cmp.Diff(want, strings.Split(strings.TrimSpace(out), "\n")); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateLocaleAndServerErrors(t *testing.T) {
	input := writeFile(t, "page.html", eventPage)
	payload := writeFile(t, "errors.json", `{"title": ["Title already taken"], "__all__": ["Try again later"]}`)
	output := filepath.Join(t.TempDir(), "annotated.html")

	out, err := run(t, nil, "--locale", "en", "validate", "--input", input, "--form", "event",
		"--set", "title=Semana", "--server-errors", payload, "--output", output)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	want := "form: Try again later\ntitle: Title already taken\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "form-level") {
		t.Fatalf("expected form-level node in output:\n%s", data)
	}

	out, err = run(t, nil, "validate", "--input", input, "--set", "title=Semana")
	if err != nil {
		t.Fatalf("expected valid submit, got %v", err)
	}
	if out != "ok\n" {
		t.Fatalf("expected ok, got %q", out)
	}

	out, err = run(t, nil, "validate", "--input", input, "--set", "title=Semana",
		"--set", "contact_phone=85987654321", "--hidden", "csrfmiddlewaretoken=abc", "--print-values")
	if err != nil {
		t.Fatalf("expected valid submit, got %v", err)
	}
	wantValues := []string{
		"title=Semana",
		"start_date=",
		"end_date=",
		"contact_phone=(85) 98765-4321",
		"capacity=",
		"csrfmiddlewaretoken=abc",
		"ok",
	}
	if diff := cmp.Diff(wantValues, strings.Split(strings.TrimSpace(out), "\n")); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if _, err := run(t, nil, "validate", "--input", input, "--form", "3"); err == nil {
		t.Fatal("expected out of range form index to fail")
	}
	if _, err := run(t, nil, "validate", "--input", input, "--set", "missing=1"); err == nil {
		t.Fatal("expected unknown field to fail")
	}
}

func TestConfirmCommand(t *testing.T) {
	var asked string
	answer := false
	stub := format.ConfirmerFunc(func(_ context.Context, message string) (bool, error) {
		asked = message
		return answer, nil
	})

	out, a, err := runApp(t, stub, "--locale", "en", "confirm")
	if !errors.Is(err, ErrDeclined) || out != "no\n" {
		t.Fatalf("expected decline, got %q (%v)", out, err)
	}
	if !a.logs.Closed() {
		t.Fatal("expected loggers to be closed after a declined run")
	}
	if asked != "Are you sure you want to perform this action?" {
		t.Fatalf("unexpected prompt %q", asked)
	}

	answer = true
	out, err = run(t, stub, "confirm", "Excluir evento?")
	if err != nil || out != "yes\n" {
		t.Fatalf("expected yes, got %q (%v)", out, err)
	}
	if asked != "Excluir evento?" {
		t.Fatalf("unexpected prompt %q", asked)
	}
}

func TestConfigFileAndLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "formkit.log")
	cfgPath := writeFile(t, "formkit.yaml", "locale: en\nlog:\n  file: "+logPath+"\n")
	input := writeFile(t, "page.html", eventPage)

	out, a, err := runApp(t, nil, "--config", cfgPath, "validate", "--input", input)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if !a.logs.Closed() {
		t.Fatal("expected the log file to be closed after a blocked run")
	}
	if !strings.Contains(out, "title: This field is required") {
		t.Fatalf("expected english issue, got %q", out)
	}

	if _, err := run(t, nil, "--config", cfgPath, "apply", "--input", input); err != nil {
		t.Fatalf("apply: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "INFO: ") {
		t.Fatalf("expected info lines in log, got %q", data)
	}
}
