package entity

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleVendor UserRole = "vendor"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
