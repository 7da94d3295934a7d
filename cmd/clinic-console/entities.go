package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speedmed/clinic-console/internal/console"
	"github.com/speedmed/clinic-console/internal/domain/patient"
)

// entity describes the CLI surface of one panel. Flag names match the
// console's form field names.
type entity struct {
	panel   console.Panel
	short   string
	key     string // key syntax in usage lines; empty when records are not addressable
	create  []string
	update  []string
	canList bool
}

var entities = []entity{
	{
		panel:   console.Appointments,
		short:   "Book, edit and cancel appointments",
		key:     "<appointment>/<patient>",
		create:  []string{"patient", "datetime", "notes"},
		update:  []string{"status", "notes"},
		canList: true,
	},
	{
		panel:   console.Consultations,
		short:   "Record consultations",
		key:     "<crm>/<appointment>/<patient>",
		create:  []string{"crm", "appointment", "patient", "datetime", "diagnosis", "notes"},
		update:  []string{"diagnosis", "notes"},
		canList: true,
	},
	{
		panel:   console.Doctors,
		short:   "Manage doctors",
		key:     "<crm>",
		create:  []string{"crm", "name", "specialty"},
		update:  []string{"name"},
		canList: true,
	},
	{
		panel:   console.Patients,
		short:   "Manage patients and their phones",
		key:     "<id>",
		create:  []string{"name", "birth-date", "sex", "email", "cpf"},
		update:  []string{"name", "sex", "email"},
		canList: true,
	},
	{
		panel:  console.Referrals,
		short:  "Create referrals and look them up",
		create: []string{"appointment", "patient", "type", "notes", "exams", "new-appointment", "new-patient"},
	},
	{
		panel:   console.Reschedules,
		short:   "Record reschedules",
		create:  []string{"old-appointment", "old-patient", "new-appointment", "new-patient", "reason", "date", "requested-by"},
		canList: true,
	},
}

func entityCmd(a *app, e entity) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.panel.String(),
		Short: e.short,
	}
	if e.canList {
		cmd.AddCommand(&cobra.Command{
			Use:   "list",
			Short: "List " + e.panel.String(),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.console.Router.Show(cmd.Context(), e.panel)
			},
		})
	}
	cmd.AddCommand(writeCmd(a, e, "create", e.create))
	if e.key != "" {
		cmd.AddCommand(&cobra.Command{
			Use:   "show " + e.key,
			Short: "Show one record as an edit form",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.console.Edit(cmd.Context(), e.panel, args[0])
			},
		})
		cmd.AddCommand(writeCmd(a, e, "update", e.update))
		cmd.AddCommand(&cobra.Command{
			Use:   "delete " + e.key,
			Short: "Delete one record after confirmation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				done, err := a.console.Delete(cmd.Context(), e.panel, args[0])
				if err == nil && !done {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				}
				return err
			},
		})
	}
	if e.panel == console.Referrals {
		cmd.AddCommand(&cobra.Command{
			Use:   "show <id>",
			Short: "Look up a referral",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.console.Referrals.Lookup(cmd.Context(), args[0])
			},
		})
	}
	return cmd
}

// writeCmd builds create or update. Update loads the record first, so
// flags that are not given keep their stored values.
func writeCmd(a *app, e entity, verb string, fields []string) *cobra.Command {
	values := make(map[string]*string, len(fields))
	var phones []string

	use, short := verb, "Create a record"
	args := cobra.NoArgs
	if verb == "update" {
		use += " " + e.key
		short = "Update a record; unset flags keep their values"
		args = cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if verb == "update" {
				if err := a.console.Edit(ctx, e.panel, args[0]); err != nil {
					return err
				}
			}
			for _, name := range fields {
				if !cmd.Flags().Changed(name) {
					continue
				}
				if err := a.console.SetField(e.panel, name, *values[name]); err != nil {
					return err
				}
			}
			if e.panel == console.Patients && cmd.Flags().Changed("phone") {
				rows, err := parsePhones(phones)
				if err != nil {
					return err
				}
				a.console.Patients.Form.Phones.Seed(rows)
			}
			return a.console.Submit(ctx, e.panel)
		},
	}
	for _, name := range fields {
		values[name] = cmd.Flags().String(name, "", name)
	}
	if e.panel == console.Patients {
		cmd.Flags().StringArrayVar(&phones, "phone", nil, "phone as number:type, repeatable; replaces every phone")
	}
	return cmd
}

func parsePhones(raw []string) ([]patient.Phone, error) {
	out := make([]patient.Phone, 0, len(raw))
	for _, r := range raw {
		number, kind, ok := strings.Cut(r, ":")
		if !ok || strings.TrimSpace(number) == "" {
			return nil, fmt.Errorf("phone %q must be number:type", r)
		}
		out = append(out, patient.Phone{Number: strings.TrimSpace(number), Type: strings.TrimSpace(kind)})
	}
	return out, nil
}
