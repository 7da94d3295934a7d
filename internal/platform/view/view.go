// Package view defines the rendering collaborator the console controllers
// write into: named mount points for tables, lists, detail blocks and forms,
// plus blocking notifications and confirmations.
package view

// Table is a list of records rendered as rows. Empty is shown instead of the
// rows when there are none.
type Table struct {
	Columns []string
	Rows    [][]string
	Empty   string
}

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Section is a titled block inside a Detail. When Lines is empty, Empty is
// shown in its place.
type Section struct {
	Title string
	Lines []string
	Empty string
}

// Detail is a single record rendered as labelled fields and sections.
type Detail struct {
	Title    string
	Fields   []Field
	Sections []Section
}

// Form describes the visible state of an entry form: its title, which inputs
// are locked, which mode-specific controls are visible, and current values.
type Form struct {
	Title    string
	Editing  bool
	Locked   []string
	Controls []string
	Values   []Field
}

// View is the document the controllers populate.
type View interface {
	ShowPanel(name string)
	RenderTable(mount string, t Table)
	RenderList(mount string, items []string, empty string)
	RenderText(mount string, text string)
	RenderDetail(mount string, d Detail)
	RenderForm(mount string, f Form)
}

// Notifier raises a blocking, user-visible message.
type Notifier interface {
	Alert(msg string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Display bundles the three collaborators; most controllers need all of them.
type Display interface {
	View
	Notifier
	Confirmer
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Alert(msg string) { f(msg) }

// OrNA returns "N/A" for blank values.
func OrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
