package view

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminal_RenderTable(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, &out, nil, false)

	term.RenderTable("doctors", Table{
		Columns: []string{"CRM", "Name"},
		Rows:    [][]string{{"CRM123", "Dr. House"}},
		Empty:   "No doctors found.",
	})

	got := out.String()
	if !strings.Contains(got, "[doctors]") {
		t.Errorf("expected mount heading, got %q", got)
	}
	if !strings.Contains(got, "CRM123") || !strings.Contains(got, "Dr. House") {
		t.Errorf("expected row contents, got %q", got)
	}
}

func TestTerminal_RenderTable_Empty(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, &out, nil, false)

	term.RenderTable("doctors", Table{Columns: []string{"CRM"}, Empty: "No doctors found."})

	if !strings.Contains(out.String(), "No doctors found.") {
		t.Errorf("expected empty message, got %q", out.String())
	}
	if strings.Contains(out.String(), "CRM") {
		t.Error("columns should not be printed for an empty table")
	}
}

func TestTerminal_RenderDetail_EmptySection(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, &out, nil, false)

	term.RenderDetail("referral", Detail{
		Title:    "Referral #1",
		Sections: []Section{{Title: "Exams", Empty: "none"}},
	})
	if !strings.Contains(out.String(), "none") {
		t.Errorf("expected fallback text, got %q", out.String())
	}
}

func TestTerminal_Alert(t *testing.T) {
	var out, errOut bytes.Buffer
	term := NewTerminal(&out, &errOut, nil, false)

	term.Alert("boom")
	if out.Len() != 0 {
		t.Error("alerts must not go to the output stream")
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("expected alert on error stream, got %q", errOut.String())
	}
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		input     string
		assumeYes bool
		want      bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"sim\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		term := NewTerminal(&out, &out, strings.NewReader(tt.input), tt.assumeYes)
		if got := term.Confirm("Delete?"); got != tt.want {
			t.Errorf("Confirm with input %q (assumeYes=%v) = %v, want %v", tt.input, tt.assumeYes, got, tt.want)
		}
	}
}

func TestOrNA(t *testing.T) {
	if OrNA("") != "N/A" {
		t.Error("expected N/A for blank")
	}
	if OrNA("x") != "x" {
		t.Error("expected value passthrough")
	}
}

func TestTerminal_ReadLineSharesConfirmInput(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, &out, strings.NewReader("delete 1\r\ny\n"), false)

	line, err := term.ReadLine()
	if err != nil || line != "delete 1" {
		t.Fatalf("ReadLine = %q, %v", line, err)
	}
	if !term.Confirm("sure?") {
		t.Error("expected confirmation from the next line")
	}
	if _, err := term.ReadLine(); err == nil {
		t.Error("expected EOF")
	}
}
