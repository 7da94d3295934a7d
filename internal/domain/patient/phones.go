package patient

import (
	"fmt"
	"strings"
)

// PhoneRows is the ordered, editable list of phone inputs on the patient
// form.
type PhoneRows struct {
	rows []Phone
}

// Add appends a row.
func (p *PhoneRows) Add(number, kind string) {
	p.rows = append(p.rows, Phone{Number: number, Type: kind})
}

// Remove deletes row i only.
func (p *PhoneRows) Remove(i int) error {
	if i < 0 || i >= len(p.rows) {
		return fmt.Errorf("phone row %d out of range (0..%d)", i, len(p.rows)-1)
	}
	p.rows = append(p.rows[:i], p.rows[i+1:]...)
	return nil
}

// Set overwrites row i.
func (p *PhoneRows) Set(i int, number, kind string) error {
	if i < 0 || i >= len(p.rows) {
		return fmt.Errorf("phone row %d out of range (0..%d)", i, len(p.rows)-1)
	}
	p.rows[i] = Phone{Number: number, Type: kind}
	return nil
}

// Seed replaces the rows with phones, or with one blank row when there are
// none.
func (p *PhoneRows) Seed(phones []Phone) {
	p.rows = append([]Phone(nil), phones...)
	if len(p.rows) == 0 {
		p.rows = []Phone{{}}
	}
}

func (p *PhoneRows) Len() int { return len(p.rows) }

// Rows returns a copy of the rows.
func (p *PhoneRows) Rows() []Phone {
	return append([]Phone(nil), p.rows...)
}

// Payload returns the rows that carry a number, in order, or nil when none
// do.
func (p *PhoneRows) Payload() []Phone {
	var out []Phone
	for _, r := range p.rows {
		if strings.TrimSpace(r.Number) == "" {
			continue
		}
		out = append(out, Phone{Number: strings.TrimSpace(r.Number), Type: r.Type})
	}
	return out
}

// Format renders phones as "number (type)" joined by ", ", or "N/A".
func Format(phones []Phone) string {
	if len(phones) == 0 {
		return "N/A"
	}
	parts := make([]string, len(phones))
	for i, ph := range phones {
		parts[i] = fmt.Sprintf("%s (%s)", ph.Number, ph.Type)
	}
	return strings.Join(parts, ", ")
}
