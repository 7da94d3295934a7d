// Package console ties the entity controllers and the report viewer to a
// single view, with a router that decides which panel is visible.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// Panel is one top-level section of the console. Exactly one is active.
type Panel int

const (
	Home Panel = iota
	Appointments
	Consultations
	Referrals
	Doctors
	Patients
	Reschedules
	Reports
)

var panelNames = [...]string{
	Home:          "home",
	Appointments:  "appointments",
	Consultations: "consultations",
	Referrals:     "referrals",
	Doctors:       "doctors",
	Patients:      "patients",
	Reschedules:   "reschedules",
	Reports:       "reports",
}

func (p Panel) String() string {
	if p < 0 || int(p) >= len(panelNames) {
		return fmt.Sprintf("panel(%d)", int(p))
	}
	return panelNames[p]
}

// Panels returns every panel in menu order.
func Panels() []Panel {
	out := make([]Panel, len(panelNames))
	for i := range panelNames {
		out[i] = Panel(i)
	}
	return out
}

// ParsePanel resolves a panel by name, case-insensitively.
func ParsePanel(s string) (Panel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range panelNames {
		if n == s {
			return Panel(i), nil
		}
	}
	return Home, fmt.Errorf("unknown panel %q", s)
}

// Loader refreshes the data shown on a panel.
type Loader func(ctx context.Context) error

type Router struct {
	view    view.View
	logger  zerolog.Logger
	active  Panel
	loaders map[Panel]Loader
}

func NewRouter(v view.View, logger zerolog.Logger) *Router {
	return &Router{view: v, logger: logger, loaders: make(map[Panel]Loader)}
}

// Register sets the loader run whenever p is shown.
func (r *Router) Register(p Panel, l Loader) {
	r.loaders[p] = l
}

// Show makes p the only active panel and runs its loader, if any. The
// panel stays active when the loader fails.
func (r *Router) Show(ctx context.Context, p Panel) error {
	r.active = p
	r.view.ShowPanel(p.String())
	l, ok := r.loaders[p]
	if !ok {
		return nil
	}
	if err := l(ctx); err != nil {
		evt := r.logger.Error().Err(err).Str("panel", p.String())
		if status := gateway.StatusOf(err); status != 0 {
			evt = evt.Int("status", status)
		}
		evt.Msg("panel load failed")
		return err
	}
	return nil
}

// Back returns to the home panel.
func (r *Router) Back(ctx context.Context) error {
	return r.Show(ctx, Home)
}

func (r *Router) Active() Panel {
	return r.active
}
