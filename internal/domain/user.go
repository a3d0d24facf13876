package domain

type UserRole string

const (
	UserRoleRenter UserRole = "renter"
	UserRoleSeller UserRole = "seller"
)

// User is the profile row behind an opaque identity. Everything outside
// the auth layer treats the ID as an opaque string.
type User struct {
	ID           string   `json:"id"`
	Role         UserRole `json:"role"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	CreatedAt    string   `json:"created_at"`
}
