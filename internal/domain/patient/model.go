package patient

import (
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Accepted values for sex and phone type.
var (
	Sexes      = []string{"F", "M", "O"}
	PhoneTypes = []string{"Celular", "Residencial"}
)

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type Phone struct {
	Number string `json:"numero"`
	Type   string `json:"tipo"`
}

type Patient struct {
	ID        int           `json:"id_paciente"`
	Name      string        `json:"nome"`
	BirthDate datetime.Date `json:"data_nascimento"`
	Sex       string        `json:"sexo"`
	Email     *string       `json:"email"`
	CPF       string        `json:"cpf"`
	Phones    []Phone       `json:"telefones"`
}

// CreateRequest carries every field. Email and Phones are null when empty.
type CreateRequest struct {
	Name      string        `json:"nome"`
	Sex       string        `json:"sexo"`
	Email     *string       `json:"email"`
	Phones    []Phone       `json:"telefones"`
	BirthDate datetime.Date `json:"data_nascimento"`
	CPF       string        `json:"cpf"`
}

// UpdateRequest leaves out birth date and CPF. A null Phones list keeps the
// stored phones; a list replaces all of them.
type UpdateRequest struct {
	Name   string  `json:"nome"`
	Sex    string  `json:"sexo"`
	Email  *string `json:"email"`
	Phones []Phone `json:"telefones"`
}
