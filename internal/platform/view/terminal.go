package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Terminal renders into a text stream. Alerts go to the error stream and
// confirmations are read line by line from in.
type Terminal struct {
	out       io.Writer
	errOut    io.Writer
	in        *bufio.Reader
	assumeYes bool
}

// NewTerminal creates a terminal view. When assumeYes is set every
// confirmation is accepted without reading input.
func NewTerminal(out, errOut io.Writer, in io.Reader, assumeYes bool) *Terminal {
	t := &Terminal{out: out, errOut: errOut, assumeYes: assumeYes}
	if in != nil {
		t.in = bufio.NewReader(in)
	}
	return t
}

func (t *Terminal) ShowPanel(name string) {
	fmt.Fprintf(t.out, "== %s ==\n", name)
}

func (t *Terminal) RenderTable(mount string, tbl Table) {
	t.heading(mount)
	if len(tbl.Rows) == 0 {
		fmt.Fprintln(t.out, tbl.Empty)
		return
	}
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tbl.Columns, "\t"))
	for _, row := range tbl.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			// Multi-line cells (patient phones) collapse onto one line.
			cells[i] = strings.ReplaceAll(c, "\n", ", ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func (t *Terminal) RenderList(mount string, items []string, empty string) {
	t.heading(mount)
	if len(items) == 0 {
		fmt.Fprintln(t.out, empty)
		return
	}
	for _, it := range items {
		fmt.Fprintf(t.out, "  - %s\n", it)
	}
}

func (t *Terminal) RenderText(mount string, text string) {
	t.heading(mount)
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) RenderDetail(mount string, d Detail) {
	t.heading(mount)
	if d.Title != "" {
		fmt.Fprintln(t.out, d.Title)
	}
	for _, f := range d.Fields {
		fmt.Fprintf(t.out, "  %s: %s\n", f.Label, f.Value)
	}
	for _, s := range d.Sections {
		fmt.Fprintf(t.out, "  %s\n", s.Title)
		if len(s.Lines) == 0 {
			fmt.Fprintf(t.out, "    %s\n", s.Empty)
			continue
		}
		for _, l := range s.Lines {
			fmt.Fprintf(t.out, "    - %s\n", l)
		}
	}
}

func (t *Terminal) RenderForm(mount string, f Form) {
	t.heading(mount)
	fmt.Fprintln(t.out, f.Title)
	if len(f.Locked) > 0 {
		fmt.Fprintf(t.out, "  locked: %s\n", strings.Join(f.Locked, ", "))
	}
	for _, v := range f.Values {
		if v.Value == "" {
			continue
		}
		fmt.Fprintf(t.out, "  %s: %s\n", v.Label, v.Value)
	}
}

func (t *Terminal) Alert(msg string) {
	fmt.Fprintf(t.errOut, "! %s\n", msg)
}

func (t *Terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		return true
	}
	if t.in == nil {
		return false
	}
	fmt.Fprintf(t.out, "%s [y/N] ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// ReadLine reads one line of input, without the newline. It shares the
// reader used by Confirm so interactive sessions can mix both.
func (t *Terminal) ReadLine() (string, error) {
	if t.in == nil {
		return "", io.EOF
	}
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) heading(mount string) {
	if mount != "" {
		fmt.Fprintf(t.out, "[%s]\n", mount)
	}
}
