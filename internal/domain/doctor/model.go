package doctor

type Doctor struct {
	CRM       string `json:"crm"`
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
}

type CreateRequest struct {
	CRM       string `json:"crm"`
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
}

// UpdateRequest renames a doctor. CRM and specialty are fixed once created.
type UpdateRequest struct {
	Name string `json:"nome"`
}
