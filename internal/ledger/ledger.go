package ledger

import (
	"context"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/memberships"
)

// Entry — строка выборки, дополненная производным статусом на дату запроса.
type Entry struct {
	memberships.Row
	DaysLeft int
	Status   Status
}

// Service отвечает на фильтрованные запросы по одному подразделению.
// Собственного состояния не держит: статус каждый раз считается от today.
type Service struct{ repo *memberships.Repo }

func NewService(repo *memberships.Repo) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, f memberships.Filter, today time.Time) ([]Entry, error) {
	rows, err := s.repo.ListActive(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{
			Row:      r,
			DaysLeft: DaysLeft(r.EndDate, today),
			Status:   DeriveStatus(r.EndDate, today),
		})
	}
	return out, nil
}
