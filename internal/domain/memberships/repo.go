package memberships

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) DB() *sql.DB { return r.db }

func (r *Repo) CreateMember(ctx context.Context, m *Member) (int64, error) {
	if m.Avatar == "" {
		m.Avatar = "👤"
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO members(name, phone, email, gender, dob, avatar)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.Name, m.Phone, m.Email, m.Gender, m.DOB, m.Avatar)
	if err != nil {
		return 0, fmt.Errorf("insert member: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repo) MemberCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) PlanByName(ctx context.Context, name string) (*Plan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, duration_months, price FROM plans WHERE name = ?
	`, name)
	var p Plan
	if err := row.Scan(&p.ID, &p.Name, &p.DurationMonths, &p.Price); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, duration_months, price FROM plans ORDER BY duration_months
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.DurationMonths, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateSubscription создаёт действующий абонемент: end_date = start_date + срок плана.
// Арифметика дат фиксируется здесь, хранилище её не проверяет.
func (r *Repo) CreateSubscription(ctx context.Context, memberID, planID int64, start time.Time, notes string) (*Subscription, error) {
	var months int
	if err := r.db.QueryRowContext(ctx, `SELECT duration_months FROM plans WHERE id = ?`, planID).Scan(&months); err != nil {
		return nil, fmt.Errorf("plan %d: %w", planID, err)
	}
	s := &Subscription{
		MemberID:  memberID,
		PlanID:    planID,
		StartDate: start,
		EndDate:   start.AddDate(0, months, 0),
		Status:    "active",
		Notes:     notes,
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions(member_id, plan_id, start_date, end_date, status, notes)
		VALUES (?, ?, ?, ?, 'active', ?)
	`, s.MemberID, s.PlanID, s.StartDate.Format(DateLayout), s.EndDate.Format(DateLayout), s.Notes)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return s, nil
}

// InsertSubscriptionRaw вставляет строку с уже готовыми датами (посев демо-данных).
func (r *Repo) InsertSubscriptionRaw(ctx context.Context, memberID, planID int64, start, end time.Time, notes string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions(member_id, plan_id, start_date, end_date, status, notes)
		VALUES (?, ?, ?, ?, 'active', ?)
	`, memberID, planID, start.Format(DateLayout), end.Format(DateLayout), notes)
	return err
}

// ListActive возвращает только строки со status = 'active', по возрастанию end_date:
// ближайшие к окончанию — первыми, оператор сразу видит срочные продления.
func (r *Repo) ListActive(ctx context.Context, f Filter) ([]Row, error) {
	q := `
		SELECT
			m.name, m.phone, COALESCE(m.email, ''), COALESCE(m.gender, ''), m.avatar,
			p.name, p.price,
			s.start_date, s.end_date, COALESCE(s.notes, '')
		FROM subscriptions s
		JOIN members m ON s.member_id = m.id
		JOIN plans p ON s.plan_id = p.id
		WHERE s.status = 'active'`
	var params []any
	if f.Month != 0 {
		q += ` AND CAST(strftime('%m', s.end_date) AS INTEGER) = ?`
		params = append(params, f.Month)
	}
	if f.Year != 0 {
		q += ` AND strftime('%Y', s.end_date) = ?`
		params = append(params, strconv.Itoa(f.Year))
	}
	q += ` ORDER BY s.end_date ASC`

	rows, err := r.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var start, end string
		if err := rows.Scan(
			&row.MemberName,
			&row.Phone,
			&row.Email,
			&row.Gender,
			&row.Avatar,
			&row.PlanName,
			&row.Price,
			&start,
			&end,
			&row.Notes,
		); err != nil {
			return nil, err
		}
		if row.StartDate, err = time.Parse(DateLayout, start); err != nil {
			return nil, fmt.Errorf("bad start_date %q: %w", start, err)
		}
		if row.EndDate, err = time.Parse(DateLayout, end); err != nil {
			return nil, fmt.Errorf("bad end_date %q: %w", end, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
