package ledger

import "time"

// Status — производный статус абонемента на дату запроса. В хранилище не пишется.
type Status string

const (
	StatusExpired      Status = "Expired"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusExpiring     Status = "Expiring"
	StatusActive       Status = "Active"
)

// DaysLeft возвращает число дней от today до endDate (знаковое, может быть отрицательным).
// Время суток и часовой пояс не учитываются — считаем по календарным датам.
func DaysLeft(endDate, today time.Time) int {
	e := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// DeriveStatus классифицирует абонемент по дате окончания.
// Границы 0, 7 и 30 включаются в более «срочную» категорию:
// ровно 7 дней — Expiring Soon, ровно 0 (последний день) — тоже Expiring Soon, не Expired.
func DeriveStatus(endDate, today time.Time) Status {
	switch d := DaysLeft(endDate, today); {
	case d < 0:
		return StatusExpired
	case d <= 7:
		return StatusExpiringSoon
	case d <= 30:
		return StatusExpiring
	default:
		return StatusActive
	}
}
