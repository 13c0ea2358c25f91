package session

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/Spok95/gym-crm/internal/domain/auth"
)

var ErrUnitForbidden = errors.New("session: unit not accessible for this user")

// Session — явный контекст авторизованной работы: кто вошёл и какое подразделение
// выбрано. Живёт только в памяти процесса, заменяет глобальное состояние оболочки.
type Session struct {
	ID      string // для журналирования
	User    *auth.User
	units   []string
	current string
}

// New строит сессию по роли: owner видит все настроенные подразделения,
// unit_admin — ровно одно привязанное.
func New(u *auth.User, configured []string) *Session {
	s := &Session{ID: uuid.NewString(), User: u}
	if u.Role == auth.RoleOwner {
		s.units = slices.Clone(configured)
	} else {
		s.units = []string{u.Unit}
		s.current = u.Unit
	}
	return s
}

func (s *Session) Units() []string { return slices.Clone(s.units) }

func (s *Session) CanAccess(unit string) bool { return slices.Contains(s.units, unit) }

func (s *Session) Select(unit string) error {
	if !s.CanAccess(unit) {
		return ErrUnitForbidden
	}
	s.current = unit
	return nil
}

// Current — выбранное подразделение; пусто, пока owner его не выбрал.
func (s *Session) Current() string { return s.current }
