package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/sandbox"
	"github.com/speedmed/clinic-console/internal/platform/sandbox/sandboxtest"
	"github.com/speedmed/clinic-console/internal/platform/view/viewtest"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

var utc = datetime.Display{Location: time.UTC}

func setup(t *testing.T) (*Controller, *sandboxtest.Server, *viewtest.Recorder) {
	t.Helper()
	srv := sandboxtest.New(t)
	rec := viewtest.New()
	return NewController(srv.Client(rec), rec, utc), srv, rec
}

func TestController_CreateSendsPhonesInOrder(t *testing.T) {
	c, srv, rec := setup(t)
	ctx := context.Background()

	c.Form.Fields = Fields{Name: "Ana", BirthDate: "1990-05-01", Sex: "F", CPF: "123"}
	c.Form.Phones.Set(0, "11999990000", "Celular")
	c.Form.Phones.Add("1133334444", "Residencial")
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writes := srv.Writes()
	if len(writes) != 1 || writes[0].Method != http.MethodPost || writes[0].Path != "/pacientes" {
		t.Fatalf("unexpected writes %+v", writes)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(writes[0].Body, &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["email"] != nil {
		t.Errorf("expected null email, got %v", body["email"])
	}
	if body["nome"] != "Ana" || body["data_nascimento"] != "1990-05-01" || body["cpf"] != "123" {
		t.Errorf("unexpected body %s", writes[0].Body)
	}
	phones, _ := body["telefones"].([]interface{})
	if len(phones) != 2 {
		t.Fatalf("expected 2 phones, got %v", body["telefones"])
	}
	first := phones[0].(map[string]interface{})
	if first["numero"] != "11999990000" || first["tipo"] != "Celular" {
		t.Errorf("unexpected first phone %v", first)
	}

	row := rec.Tables[MountList].Rows[0]
	if row[4] != "N/A" {
		t.Errorf("expected N/A email, got %q", row[4])
	}
	if row[6] != "11999990000 (Celular), 1133334444 (Residencial)" {
		t.Errorf("unexpected phones cell %q", row[6])
	}
	if c.Form.Phones.Len() != 1 {
		t.Errorf("expected a single blank phone row after reset, got %d", c.Form.Phones.Len())
	}
}

func TestController_BlankPhonesSentAsNull(t *testing.T) {
	c, srv, _ := setup(t)

	c.Form.Fields = Fields{Name: "Bia", BirthDate: "1985-01-01", Sex: "F", CPF: "9"}
	c.Form.Phones.Add("  ", "Celular")
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(srv.Writes()[0].Body)
	if !strings.Contains(body, `"telefones":null`) {
		t.Errorf("expected null phones, got %s", body)
	}
}

func TestController_EditSeedsPhonesAndLocksIdentity(t *testing.T) {
	c, srv, rec := setup(t)
	phones := []sandbox.Phone{{Number: "1", Type: "Celular"}, {Number: "2", Type: "Residencial"}}
	p, _ := srv.Store.CreatePatient(sandbox.PatientCreate{Name: "Caio", BirthDate: "1970-02-03", Sex: "M", CPF: "77", Phones: &phones})
	ctx := context.Background()

	if err := c.Edit(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Form.Phones.Len() != 2 {
		t.Fatalf("expected 2 phone rows, got %d", c.Form.Phones.Len())
	}
	if got := rec.Forms[MountForm]; len(got.Locked) != 2 || !got.Editing {
		t.Errorf("unexpected form %+v", got)
	}

	if err := c.RemovePhone(0); err != nil {
		t.Fatal(err)
	}
	srv.Forget()
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := srv.Writes()
	if len(w) != 1 || w[0].Method != http.MethodPatch {
		t.Fatalf("unexpected writes %+v", w)
	}
	if strings.Contains(string(w[0].Body), "cpf") || strings.Contains(string(w[0].Body), "data_nascimento") {
		t.Errorf("update must not send identity fields: %s", w[0].Body)
	}
	got, _ := srv.Store.GetPatient(p.ID)
	if len(got.Phones) != 1 || got.Phones[0].Number != "2" {
		t.Errorf("expected only the second phone to remain, got %+v", got.Phones)
	}
}

func TestController_EditBlankEmailClearsIt(t *testing.T) {
	c, srv, rec := setup(t)
	email := "eva@example.com"
	p, _ := srv.Store.CreatePatient(sandbox.PatientCreate{Name: "Eva", BirthDate: "1995-07-08", Sex: "F", CPF: "31", Email: &email})
	ctx := context.Background()

	if err := c.Edit(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Form.Fields.Email != email {
		t.Fatalf("expected seeded email, got %q", c.Form.Fields.Email)
	}
	c.Form.Fields.Email = "  "
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := srv.Store.GetPatient(p.ID)
	if got.Email != nil {
		t.Errorf("expected email cleared, got %q", *got.Email)
	}
	if row := rec.Tables[MountList].Rows[0]; row[4] != "N/A" {
		t.Errorf("expected N/A email cell, got %q", row[4])
	}
}

func TestController_DeleteIsSingleRequest(t *testing.T) {
	c, srv, rec := setup(t)
	phones := []sandbox.Phone{{Number: "1", Type: "Celular"}}
	p, _ := srv.Store.CreatePatient(sandbox.PatientCreate{Name: "Duda", BirthDate: "2000-01-01", Sex: "O", CPF: "5", Phones: &phones})

	done, err := c.Delete(context.Background(), p.ID)
	if err != nil || !done {
		t.Fatalf("expected delete, got %v %v", done, err)
	}
	if w := srv.Writes(); len(w) != 1 || w[0].Method != http.MethodDelete {
		t.Errorf("expected a single DELETE, got %+v", w)
	}
	if !strings.Contains(rec.Prompts[0], "phones") {
		t.Errorf("prompt should mention phones: %q", rec.Prompts[0])
	}
}

func TestForm_Validation(t *testing.T) {
	f := NewForm()
	f.Fields = Fields{Name: "Eva", BirthDate: "01/02/1990", Sex: "F", CPF: "1"}
	_, err := f.CreateRequest()
	if ve, ok := err.(*form.ValidationError); !ok || ve.Field != "birth_date" {
		t.Errorf("expected birth_date error, got %v", err)
	}

	f.BirthDate = "1990-02-01"
	f.Phones.Set(0, "1", "Fax")
	_, err = f.CreateRequest()
	if ve, ok := err.(*form.ValidationError); !ok || ve.Field != "phones" {
		t.Errorf("expected phones error, got %v", err)
	}
}

func TestPhoneRows(t *testing.T) {
	var p PhoneRows
	p.Seed(nil)
	if p.Len() != 1 || p.Payload() != nil {
		t.Fatalf("expected one blank row and nil payload, got %d %v", p.Len(), p.Payload())
	}
	p.Add("2", "Celular")
	p.Add("3", "Residencial")
	if err := p.Remove(1); err != nil {
		t.Fatal(err)
	}
	if got := p.Payload(); len(got) != 1 || got[0].Number != "3" {
		t.Errorf("unexpected payload %+v", got)
	}
	if err := p.Remove(5); err == nil {
		t.Error("expected out of range error")
	}
}
