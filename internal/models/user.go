package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSales    UserRole = "sales"
	RoleCTV      UserRole = "ctv"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleCTV, RoleCustomer:
		return true
	}
	return false
}

// User is one of the fixed portal accounts. PasswordHash is never serialized.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash []byte   `json:"-"`
}

// DefaultUsers is the static account list used for login.
func DefaultUsers() []User {
	return []User{
		{ID: "1", Email: "admin@lyhu.vn", Name: "Admin LYHU", Role: RoleAdmin},
		{ID: "2", Email: "sales@lyhu.vn", Name: "Sales LYHU", Role: RoleSales},
		{ID: "3", Email: "ctv@lyhu.vn", Name: "CTV LYHU", Role: RoleCTV},
		{ID: "4", Email: "customer@lyhu.vn", Name: "Khách hàng LYHU", Role: RoleCustomer},
	}
}
