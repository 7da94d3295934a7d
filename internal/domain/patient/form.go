package patient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

type Fields struct {
	Name      string
	BirthDate string // yyyy-mm-dd
	Sex       string
	Email     string
	CPF       string
}

type Form struct {
	form.State[int]
	Fields
	Phones PhoneRows
}

// NewForm returns a create-mode form with one blank phone row.
func NewForm() Form {
	var f Form
	f.Phones.Seed(nil)
	return f
}

func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
	f.Phones.Seed(nil)
}

func (f *Form) Fill(p *Patient) {
	f.BeginEdit(p.ID)
	f.Fields = Fields{
		Name:      p.Name,
		BirthDate: p.BirthDate.String(),
		Sex:       p.Sex,
		CPF:       p.CPF,
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	f.Phones.Seed(p.Phones)
}

func (f *Form) Locked() []string {
	if f.Mode() == form.ModeEdit {
		return []string{"birth_date", "cpf"}
	}
	return nil
}

func (f *Form) common() (name, sex string, email *string, phones []Phone, err error) {
	name = strings.TrimSpace(f.Name)
	if name == "" {
		return "", "", nil, nil, form.Invalid("name", "name is required")
	}
	if !oneOf(f.Sex, Sexes) {
		return "", "", nil, nil, form.Invalid("sex", "sex must be one of %v, got %q", Sexes, f.Sex)
	}
	phones = f.Phones.Payload()
	for _, ph := range phones {
		if !oneOf(ph.Type, PhoneTypes) {
			return "", "", nil, nil, form.Invalid("phones", "phone %s: type must be one of %v, got %q", ph.Number, PhoneTypes, ph.Type)
		}
	}
	return name, f.Sex, form.OptionalString(strings.TrimSpace(f.Email)), phones, nil
}

func (f *Form) CreateRequest() (CreateRequest, error) {
	name, sex, email, phones, err := f.common()
	if err != nil {
		return CreateRequest{}, err
	}
	bd, err := datetime.ParseDate(f.BirthDate)
	if err != nil {
		return CreateRequest{}, form.Invalid("birth_date", "birth date must be yyyy-mm-dd, got %q", f.BirthDate)
	}
	cpf := strings.TrimSpace(f.CPF)
	if cpf == "" {
		return CreateRequest{}, form.Invalid("cpf", "cpf is required")
	}
	return CreateRequest{Name: name, Sex: sex, Email: email, Phones: phones, BirthDate: bd, CPF: cpf}, nil
}

func (f *Form) UpdateRequest() (UpdateRequest, error) {
	name, sex, email, phones, err := f.common()
	if err != nil {
		return UpdateRequest{}, err
	}
	return UpdateRequest{Name: name, Sex: sex, Email: email, Phones: phones}, nil
}

func (f *Form) View() view.Form {
	v := view.Form{
		Title:    "New Patient",
		Locked:   f.Locked(),
		Controls: []string{"add-phone"},
		Values: []view.Field{
			{Label: "Name", Value: f.Name},
			{Label: "Birth date", Value: f.BirthDate},
			{Label: "Sex", Value: f.Sex},
			{Label: "Email", Value: f.Email},
			{Label: "CPF", Value: f.CPF},
		},
	}
	for i, ph := range f.Phones.Rows() {
		v.Values = append(v.Values, view.Field{Label: fmt.Sprintf("Phone %d", i+1), Value: strings.TrimSpace(ph.Number + " " + ph.Type)})
	}
	if id, ok := f.Editing(); ok {
		v.Title = "Edit Patient " + strconv.Itoa(id)
		v.Editing = true
		v.Controls = append(v.Controls, "cancel-edit")
	}
	return v
}
