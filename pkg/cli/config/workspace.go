package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
)

// Workspace holds the optional TOML workspace configuration: the default
// timezone, the roster window and the known teams.
type Workspace struct {
	path string

	DefaultTimezone  string          `toml:"default_timezone"`
	RosterWindowDays int             `toml:"roster_window_days"`
	Teams            []WorkspaceTeam `toml:"teams"`
}

// WorkspaceTeam describes one team in the workspace configuration
type WorkspaceTeam struct {
	ID   types.TeamID `toml:"id"`
	Name string       `toml:"name"`
}

// Flags returns CLI flags for workspace configuration
func (w *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML workspace configuration file",
			Sources:     cli.EnvVars("CHECKIN_CONFIG"),
			Destination: &w.path,
		},
	}
}

// Configure loads and validates the workspace file. Without a path the
// defaults apply: UTC timezone and the default roster window.
func (w *Workspace) Configure() error {
	w.DefaultTimezone = "UTC"
	w.RosterWindowDays = usecase.DefaultRosterWindow

	if w.path == "" {
		return nil
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read workspace config", goerr.V("path", w.path))
	}
	if err := toml.Unmarshal(data, w); err != nil {
		return goerr.Wrap(err, "failed to parse workspace config", goerr.V("path", w.path))
	}

	return w.Validate()
}

// Validate checks the loaded workspace configuration
func (w *Workspace) Validate() error {
	if w.DefaultTimezone != "" {
		if _, err := time.LoadLocation(w.DefaultTimezone); err != nil {
			return goerr.Wrap(err, "invalid default timezone", goerr.V("timezone", w.DefaultTimezone))
		}
	}
	if w.RosterWindowDays < 1 {
		return goerr.New("roster window must be at least one day", goerr.V("days", w.RosterWindowDays))
	}
	for _, team := range w.Teams {
		if err := team.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team in workspace config", goerr.V("name", team.Name))
		}
	}
	return nil
}

// Location resolves the default timezone, falling back to UTC
func (w *Workspace) Location() *time.Location {
	if w.DefaultTimezone != "" {
		if loc, err := time.LoadLocation(w.DefaultTimezone); err == nil {
			return loc
		}
	}
	return time.UTC
}
