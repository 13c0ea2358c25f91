package auth

import "time"

type Role string

const (
	RoleOwner     Role = "owner"
	RoleUnitAdmin Role = "unit_admin"
)

type User struct {
	ID        int64
	Username  string
	Role      Role
	Unit      string // пусто для owner (доступ ко всем подразделениям)
	FullName  string
	CreatedAt time.Time
}

type LoginLog struct {
	ID           int64
	UserID       int64
	LoginTime    time.Time
	UnitAccessed string
}
