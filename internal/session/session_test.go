package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/gym-crm/internal/domain/auth"
	"github.com/Spok95/gym-crm/internal/session"
)

var units = []string{"unit1", "unit2", "unit3"}

func TestOwnerAccessesAllUnits(t *testing.T) {
	s := session.New(&auth.User{Username: "owner", Role: auth.RoleOwner}, units)
	require.Equal(t, units, s.Units())
	require.Empty(t, s.Current()) // owner сам выбирает подразделение

	for _, u := range units {
		require.True(t, s.CanAccess(u))
	}
	require.NoError(t, s.Select("unit2"))
	require.Equal(t, "unit2", s.Current())
}

func TestUnitAdminBoundToOneUnit(t *testing.T) {
	s := session.New(&auth.User{Username: "unit1", Role: auth.RoleUnitAdmin, Unit: "unit1"}, units)
	require.Equal(t, []string{"unit1"}, s.Units())
	require.Equal(t, "unit1", s.Current())

	require.False(t, s.CanAccess("unit2"))
	require.ErrorIs(t, s.Select("unit2"), session.ErrUnitForbidden)
	require.Equal(t, "unit1", s.Current(), "failed select must not switch the unit")
}

func TestSessionIDsAreUnique(t *testing.T) {
	u := &auth.User{Username: "owner", Role: auth.RoleOwner}
	a, b := session.New(u, units), session.New(u, units)
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
}
