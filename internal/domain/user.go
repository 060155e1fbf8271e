package domain

type UserRole string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleManager UserRole = "Manager"
	UserRoleStaff   UserRole = "Staff"
)

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	LastLogin    *string  `json:"lastLogin,omitempty"`
}
