package doctor

import (
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

type Fields struct {
	CRM       string
	Name      string
	Specialty string
}

type Form struct {
	form.State[string]
	Fields
}

func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
}

func (f *Form) Fill(d *Doctor) {
	f.BeginEdit(d.CRM)
	f.Fields = Fields{CRM: d.CRM, Name: d.Name, Specialty: d.Specialty}
}

func (f *Form) Locked() []string {
	if f.Mode() == form.ModeEdit {
		return []string{"crm", "specialty"}
	}
	return nil
}

func (f *Form) CreateRequest() (CreateRequest, error) {
	req := CreateRequest{
		CRM:       strings.TrimSpace(f.CRM),
		Name:      strings.TrimSpace(f.Name),
		Specialty: strings.TrimSpace(f.Specialty),
	}
	switch {
	case req.CRM == "":
		return req, form.Invalid("crm", "crm is required")
	case req.Name == "":
		return req, form.Invalid("name", "name is required")
	case req.Specialty == "":
		return req, form.Invalid("specialty", "specialty is required")
	}
	return req, nil
}

func (f *Form) UpdateRequest() (UpdateRequest, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return UpdateRequest{}, form.Invalid("name", "name is required")
	}
	return UpdateRequest{Name: name}, nil
}

func (f *Form) View() view.Form {
	v := view.Form{
		Title:  "New Doctor",
		Locked: f.Locked(),
		Values: []view.Field{
			{Label: "CRM", Value: f.CRM},
			{Label: "Name", Value: f.Name},
			{Label: "Specialty", Value: f.Specialty},
		},
	}
	if crm, ok := f.Editing(); ok {
		v.Title = "Edit Doctor " + crm
		v.Editing = true
		v.Controls = []string{"cancel-edit"}
	}
	return v
}
