package memberships

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout — формат хранения календарных дат в базе.
const DateLayout = "2006-01-02"

type Member struct {
	ID        int64
	Name      string
	Phone     string // уникальный ключ в рамках подразделения
	Email     string
	Gender    string
	DOB       string // YYYY-MM-DD, опционально
	Avatar    string
	CreatedAt time.Time
}

type Plan struct {
	ID             int64
	Name           string
	DurationMonths int
	Price          float64
}

type Subscription struct {
	ID        int64
	MemberID  int64
	PlanID    int64
	StartDate time.Time
	EndDate   time.Time
	Status    string // свободный текст; запросы учитывают только "active"
	Notes     string
}

// Row — строка выборки действующих абонементов (join members/plans/subscriptions).
type Row struct {
	MemberName string
	Phone      string
	Email      string
	Gender     string
	Avatar     string
	PlanName   string
	Price      float64
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
}

// Filter ограничивает выборку по компонентам end_date. Нулевое значение — без ограничения.
type Filter struct {
	Month int // 1..12
	Year  int
}

func (f Filter) String() string {
	month, year := "All", "All"
	if f.Month >= 1 && f.Month <= 12 {
		month = time.Month(f.Month).String()
	}
	if f.Year != 0 {
		year = strconv.Itoa(f.Year)
	}
	return fmt.Sprintf("Month: %s, Year: %s", month, year)
}
