package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Help describes the commands understood by Exec.
const Help = `commands:
  show <panel>             switch panel (home, appointments, consultations, referrals,
                           doctors, patients, reschedules, reports)
  back                     return to home
  reload                   reload the active panel
  set <field> <value...>   set a form input on the active panel
  submit                   create or update from the form
  reset                    clear the form and return to create mode
  edit <key>               load a record into the form
  delete <key>             delete a record (asks for confirmation)
  phone add|rm <i>|set <i> <number> <type>
                           edit patient phone rows
  lookup <id>              show a referral
  quit`

// Exec runs one shell command line against the console. Errors already
// reported by the gateway or a form are returned as well so the caller can
// decide whether to keep going.
func (c *Console) Exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	active := c.Router.Active()
	switch args[0] {
	case "help":
		c.Router.view.RenderText("help", Help)
		return nil
	case "quit", "exit":
		return ErrQuit
	case "show":
		if len(args) != 2 {
			return errors.New("usage: show <panel>")
		}
		p, err := ParsePanel(args[1])
		if err != nil {
			return err
		}
		return c.Router.Show(ctx, p)
	case "back":
		return c.Router.Back(ctx)
	case "reload":
		return c.Router.Show(ctx, active)
	case "set":
		if len(args) < 2 {
			return errors.New("usage: set <field> <value...>")
		}
		value := strings.Join(args[2:], " ")
		if active == Referrals && args[1] == "type" {
			c.Referrals.SetType(value)
			return nil
		}
		return c.SetField(active, args[1], value)
	case "submit":
		return c.Submit(ctx, active)
	case "reset":
		return c.Reset(active)
	case "edit", "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: %s <key>", args[0])
		}
		if args[0] == "edit" {
			return c.Edit(ctx, active, args[1])
		}
		_, err := c.Delete(ctx, active, args[1])
		return err
	case "phone":
		if active != Patients {
			return errors.New("phone is only available on the patients panel")
		}
		return c.phone(args[1:])
	case "lookup":
		if active != Referrals {
			return errors.New("lookup is only available on the referrals panel")
		}
		return c.Referrals.Lookup(ctx, strings.Join(args[1:], " "))
	}
	return fmt.Errorf("unknown command %q (try help)", args[0])
}

// Submit submits the form of panel p.
func (c *Console) Submit(ctx context.Context, p Panel) error {
	switch p {
	case Appointments:
		return c.Appointments.Submit(ctx)
	case Consultations:
		return c.Consultations.Submit(ctx)
	case Referrals:
		return c.Referrals.Submit(ctx)
	case Doctors:
		return c.Doctors.Submit(ctx)
	case Patients:
		return c.Patients.Submit(ctx)
	case Reschedules:
		return c.Reschedules.Submit(ctx)
	}
	return fmt.Errorf("panel %s has no form", p)
}

// Reset clears the form of panel p.
func (c *Console) Reset(p Panel) error {
	switch p {
	case Appointments:
		c.Appointments.Reset()
	case Consultations:
		c.Consultations.Reset()
	case Referrals:
		c.Referrals.Reset()
	case Doctors:
		c.Doctors.Reset()
	case Patients:
		c.Patients.Reset()
	case Reschedules:
		c.Reschedules.Reset()
	default:
		return fmt.Errorf("panel %s has no form", p)
	}
	return nil
}

// Edit loads the record with the textual key into the form of panel p.
func (c *Console) Edit(ctx context.Context, p Panel, key string) error {
	switch p {
	case Appointments:
		k, err := ParseAppointmentKey(key)
		if err != nil {
			return err
		}
		return c.Appointments.Edit(ctx, k)
	case Consultations:
		k, err := ParseConsultationKey(key)
		if err != nil {
			return err
		}
		return c.Consultations.Edit(ctx, k)
	case Doctors:
		return c.Doctors.Edit(ctx, key)
	case Patients:
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("patient id must be a number, got %q", key)
		}
		return c.Patients.Edit(ctx, id)
	}
	return fmt.Errorf("records on panel %s cannot be edited", p)
}

// Delete removes the record with the textual key after confirmation.
func (c *Console) Delete(ctx context.Context, p Panel, key string) (bool, error) {
	switch p {
	case Appointments:
		k, err := ParseAppointmentKey(key)
		if err != nil {
			return false, err
		}
		return c.Appointments.Delete(ctx, k)
	case Consultations:
		k, err := ParseConsultationKey(key)
		if err != nil {
			return false, err
		}
		return c.Consultations.Delete(ctx, k)
	case Doctors:
		return c.Doctors.Delete(ctx, key)
	case Patients:
		id, err := strconv.Atoi(key)
		if err != nil {
			return false, fmt.Errorf("patient id must be a number, got %q", key)
		}
		return c.Patients.Delete(ctx, id)
	}
	return false, fmt.Errorf("records on panel %s cannot be deleted", p)
}

func (c *Console) phone(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: phone add|rm <i>|set <i> <number> <type>")
	}
	switch args[0] {
	case "add":
		c.Patients.AddPhone()
		return nil
	case "rm", "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: phone %s <i>", args[0])
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("phone row must be a number, got %q", args[1])
		}
		if args[0] == "rm" {
			return c.Patients.RemovePhone(i)
		}
		if len(args) != 4 {
			return errors.New("usage: phone set <i> <number> <type>")
		}
		return c.Patients.SetPhone(i, args[2], args[3])
	}
	return fmt.Errorf("unknown phone command %q", args[0])
}
