// Package viewtest provides a view.Display that records what was rendered,
// for use in controller tests.
package viewtest

import (
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// List is a recorded RenderList call.
type List struct {
	Items []string
	Empty string
}

// Recorder keeps the last render per mount point and every alert and
// confirmation prompt.
type Recorder struct {
	Panels  []string
	Tables  map[string]view.Table
	Lists   map[string]List
	Texts   map[string]string
	Details map[string]view.Detail
	Forms   map[string]view.Form
	Alerts  []string
	Prompts []string

	// ConfirmAnswer is returned from every Confirm call.
	ConfirmAnswer bool
}

// New returns a Recorder that accepts confirmations.
func New() *Recorder {
	return &Recorder{
		Tables:        make(map[string]view.Table),
		Lists:         make(map[string]List),
		Texts:         make(map[string]string),
		Details:       make(map[string]view.Detail),
		Forms:         make(map[string]view.Form),
		ConfirmAnswer: true,
	}
}

func (r *Recorder) ShowPanel(name string) { r.Panels = append(r.Panels, name) }

func (r *Recorder) RenderTable(mount string, t view.Table) { r.Tables[mount] = t }

func (r *Recorder) RenderList(mount string, items []string, empty string) {
	r.Lists[mount] = List{Items: items, Empty: empty}
}

func (r *Recorder) RenderText(mount string, text string) { r.Texts[mount] = text }

func (r *Recorder) RenderDetail(mount string, d view.Detail) { r.Details[mount] = d }

func (r *Recorder) RenderForm(mount string, f view.Form) { r.Forms[mount] = f }

func (r *Recorder) Alert(msg string) { r.Alerts = append(r.Alerts, msg) }

func (r *Recorder) Confirm(prompt string) bool {
	r.Prompts = append(r.Prompts, prompt)
	return r.ConfirmAnswer
}

// LastAlert returns the most recent alert, or "".
func (r *Recorder) LastAlert() string {
	if len(r.Alerts) == 0 {
		return ""
	}
	return r.Alerts[len(r.Alerts)-1]
}
