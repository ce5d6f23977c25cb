package model

import (
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Member represents a team member as mirrored from the identity provider.
// The core reads membership and the opt-in flag; identity itself is owned
// by the external provider.
type Member struct {
	ID             types.UserID   `json:"id" firestore:"id"`
	TeamID         types.TeamID   `json:"team_id" firestore:"team_id"`
	DisplayName    string         `json:"display_name" firestore:"display_name"`
	Timezone       string         `json:"timezone" firestore:"timezone"`
	Role           types.Role     `json:"role" firestore:"role"`
	ManagedTeamIDs []types.TeamID `json:"managed_team_ids,omitempty" firestore:"managed_team_ids"`
	CheckInOptIn   bool           `json:"check_in_opt_in" firestore:"check_in_opt_in"`
	Active         bool           `json:"active" firestore:"active"`
	CreatedAt      time.Time      `json:"created_at" firestore:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" firestore:"updated_at"`
}

// Validate checks if the member is valid
func (m *Member) Validate() error {
	if err := m.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid member ID")
	}
	if err := m.TeamID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid team ID", goerr.V("member_id", m.ID))
	}
	if !m.Role.Normalize().IsValid() {
		return goerr.New("invalid role", goerr.V("member_id", m.ID), goerr.V("role", m.Role))
	}
	if m.Timezone != "" {
		if _, err := time.LoadLocation(m.Timezone); err != nil {
			return goerr.Wrap(err, "invalid timezone", goerr.V("member_id", m.ID), goerr.V("timezone", m.Timezone))
		}
	}
	return nil
}

// Location resolves the member's IANA timezone, falling back to the given
// default and finally to UTC.
func (m *Member) Location(fallback *time.Location) *time.Location {
	if m.Timezone != "" {
		if loc, err := time.LoadLocation(m.Timezone); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return time.UTC
}

// VisibleTeams returns the team IDs this member may see in reports,
// according to their role. Admins see everything; callers should treat a
// nil result for admins as "no filter".
func (m *Member) VisibleTeams() []types.TeamID {
	switch m.Role.Normalize() {
	case types.RoleAdmin:
		return nil
	case types.RoleManager:
		teams := make([]types.TeamID, 0, len(m.ManagedTeamIDs)+1)
		teams = append(teams, m.ManagedTeamIDs...)
		if m.TeamID != "" {
			teams = append(teams, m.TeamID)
		}
		return teams
	default:
		if m.TeamID == "" {
			return []types.TeamID{}
		}
		return []types.TeamID{m.TeamID}
	}
}
