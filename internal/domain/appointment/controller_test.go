package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/gateway"
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
	if _, err := srv.Store.CreatePatient(sandbox.PatientCreate{Name: "Ana", BirthDate: "1990-01-01", Sex: "F", CPF: "1"}); err != nil {
		t.Fatal(err)
	}
	return NewController(srv.Client(rec), rec, utc), srv, rec
}

func TestController_LoadEmpty(t *testing.T) {
	c, _, rec := setup(t)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := rec.Tables[MountList]
	if len(tbl.Rows) != 0 || tbl.Empty != "No appointments found." {
		t.Errorf("unexpected table %+v", tbl)
	}
}

func TestController_SubmitCreate(t *testing.T) {
	c, srv, rec := setup(t)
	srv.Forget()

	c.Form.PatientID = "1"
	c.Form.DateTime = "2025-05-01T10:30"
	c.Form.Notes = "first visit"
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 || reqs[0].Method != http.MethodPost || reqs[1].Method != http.MethodGet {
		t.Fatalf("expected POST then GET, got %+v", reqs)
	}
	var body map[string]interface{}
	json.Unmarshal(reqs[0].Body, &body)
	if body["id_paciente"] != float64(1) || body["data"] != "2025-05-01T10:30:00.000Z" || body["observacoes"] != "first visit" {
		t.Errorf("unexpected body %s", reqs[0].Body)
	}
	if _, ok := body["status"]; ok {
		t.Error("create must not send status")
	}
	if c.Form.Mode() != form.ModeCreate || c.Form.PatientID != "" {
		t.Errorf("expected form reset, got %+v", c.Form)
	}
	if rows := rec.Tables[MountList].Rows; len(rows) != 1 || rows[0][3] != "Marcada" || rows[0][2] != "01/05/2025 10:30:00" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestController_EditSubmitSendsMutableFieldsOnly(t *testing.T) {
	c, srv, rec := setup(t)
	srv.Store.CreateAppointment(sandbox.AppointmentCreate{PatientID: 1, Date: time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)})
	ctx := context.Background()

	if err := c.Edit(ctx, Key{AppointmentID: 1, PatientID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := rec.Forms[MountForm]
	if !f.Editing || len(f.Locked) != 2 || c.Form.DateTime != "2025-05-01T10:30" {
		t.Fatalf("unexpected form %+v / %+v", f, c.Form.Fields)
	}

	srv.Forget()
	c.Form.Status = "Realizada"
	c.Form.Notes = "ok"
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := srv.Writes()
	if len(w) != 1 || w[0].Method != http.MethodPatch || w[0].Path != "/agendamentos/1/1" {
		t.Fatalf("unexpected writes %+v", w)
	}
	var body map[string]interface{}
	json.Unmarshal(w[0].Body, &body)
	if len(body) != 2 || body["status"] != "Realizada" || body["observacoes"] != "ok" {
		t.Errorf("unexpected body %s", w[0].Body)
	}
	if _, ok := c.Form.Editing(); ok {
		t.Error("expected create mode after successful update")
	}
}

func TestController_FailedSubmitKeepsForm(t *testing.T) {
	c, srv, rec := setup(t)
	srv.Forget()

	c.Form.PatientID = "99"
	c.Form.DateTime = "2025-05-01T10:30"
	err := c.Submit(context.Background())
	if gateway.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(srv.Requests()) != 1 {
		t.Errorf("expected no reload after failure, got %+v", srv.Requests())
	}
	if c.Form.PatientID != "99" {
		t.Error("form must keep its values after a failed submit")
	}
	if rec.LastAlert() == "" {
		t.Error("expected the failure to be reported")
	}
}

func TestController_InvalidInputMakesNoRequest(t *testing.T) {
	c, srv, rec := setup(t)
	srv.Forget()

	c.Form.PatientID = "abc"
	err := c.Submit(context.Background())
	var ve *form.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Errorf("expected no requests, got %+v", srv.Requests())
	}
	if len(rec.Alerts) != 1 {
		t.Errorf("expected one alert, got %v", rec.Alerts)
	}
}

func TestController_Delete(t *testing.T) {
	c, srv, rec := setup(t)
	srv.Store.CreateAppointment(sandbox.AppointmentCreate{PatientID: 1, Date: time.Now()})
	ctx := context.Background()
	k := Key{AppointmentID: 1, PatientID: 1}
	srv.Forget()

	rec.ConfirmAnswer = false
	done, err := c.Delete(ctx, k)
	if done || err != nil || len(srv.Requests()) != 0 {
		t.Fatalf("declined delete must not call the API: %v %v %+v", done, err, srv.Requests())
	}

	rec.ConfirmAnswer = true
	done, err = c.Delete(ctx, k)
	if !done || err != nil {
		t.Fatalf("unexpected result %v %v", done, err)
	}
	reqs := srv.Requests()
	if len(reqs) != 2 || reqs[0].Method != http.MethodDelete || reqs[0].Path != "/agendamentos/1/1" || reqs[1].Method != http.MethodGet {
		t.Errorf("expected DELETE then GET, got %+v", reqs)
	}
}

func TestController_IncompleteKeyRejected(t *testing.T) {
	c, srv, _ := setup(t)
	srv.Forget()

	for _, k := range []Key{{AppointmentID: 1}, {PatientID: 1}} {
		if err := c.Edit(context.Background(), k); err == nil {
			t.Errorf("expected error for key %v", k)
		}
		if _, err := c.Delete(context.Background(), k); err == nil {
			t.Errorf("expected error for key %v", k)
		}
	}
	if len(srv.Requests()) != 0 {
		t.Errorf("expected no requests, got %+v", srv.Requests())
	}
}

func TestForm_UpdateRequestRejectsUnknownStatus(t *testing.T) {
	f := Form{}
	f.BeginEdit(Key{1, 1})
	f.Status = "Talvez"
	if _, err := f.UpdateRequest(); err == nil {
		t.Fatal("expected validation error")
	}
}
