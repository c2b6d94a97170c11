package format_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formkit/pkg/format"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2026-10-18", want: "18/10/2026"},
		{in: "2026-01-05T23:30", want: "05/01/2026"},
		{in: "2026-01-05 08:00:00", want: "05/01/2026"},
		{in: "2026-01-05T23:30:00-03:00", want: "05/01/2026"},
		{in: " 2026-12-31 ", want: "31/12/2026"},
	}
	for _, tt := range tests {
		got, err := format.FormatDate(tt.in)
		if err != nil {
			t.Fatalf("FormatDate(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("FormatDate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	for _, bad := range []string{"", "18/10/2026", "2026-13-01", "tomorrow"} {
		if _, err := format.FormatDate(bad); !errors.Is(err, format.ErrInvalidDate) {
			t.Fatalf("FormatDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[string]string{
		"14:30:00":        "14:30",
		"14:30":           "14:30",
		"9:05":            "9:05",
		"":                "",
		"08:15:00.000000": "08:15",
	}
	for in, want := range tests {
		if got := format.FormatTime(in); got != want {
			t.Fatalf("FormatTime(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestConfirmActionDefaultsMessage(t *testing.T) {
	var asked []string
	stub := format.ConfirmerFunc(func(_ context.Context, message string) (bool, error) {
		asked = append(asked, message)
		return message == "Excluir evento?", nil
	})

	ok, err := format.ConfirmAction(context.Background(), stub, "  ")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
	ok, err = format.ConfirmAction(context.Background(), stub, "Excluir evento?")
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got (%v, %v)", ok, err)
	}
	if len(asked) != 2 || asked[0] != format.DefaultConfirmMessage {
		t.Fatalf("unexpected prompts %q", asked)
	}
}

func TestConfirmActionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	stub := format.ConfirmerFunc(func(context.Context, string) (bool, error) {
		called = true
		return true, nil
	})
	if _, err := format.ConfirmAction(ctx, stub, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("expected confirmer not to be called")
	}
}
