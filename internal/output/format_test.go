package output

import (
	"bytes"
	"testing"

	"todo/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{ID: 7, Description: "Buy milk", Status: "To do"})

	if got, want := buf.String(), "   7  Buy milk  [To do]\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatTask_Multiline(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{ID: 12, Description: "line one\nline two", Status: "Done"})

	if got, want := buf.String(), "  12  line one line two  [Done]\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatIndexed(t *testing.T) {
	var buf bytes.Buffer
	FormatIndexed(&buf, 1, service.Task{ID: 3, Description: "Call Bob", Status: "Done"})

	if got, want := buf.String(), "1. Call Bob (Done) #3\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRemoteTitle(t *testing.T) {
	got := RemoteTitle(service.Task{ID: 1, Description: "Buy milk", Status: "In progress"})
	if want := "Buy milk [In progress]"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"":        "(untitled)",
		"  \n ":   "(untitled)",
		"a\r\nb":  "a  b",
		"regular": "regular",
	}
	for in, want := range cases {
		if got := normalizeText(in); got != want {
			t.Errorf("normalizeText(%q): expected %q, got %q", in, want, got)
		}
	}
}
