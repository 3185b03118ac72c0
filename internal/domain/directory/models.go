package directory

import "time"

const (
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credential carries the password hash for login checks. It never leaves
// the auth path.
type Credential struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
}

// Admin is the overlay row granting elevated privileges. Its existence is
// what makes an employee an admin; the employee role string is denormalized
// alongside it.
type Admin struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Permissions string    `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EmployeeUpdate lists the mutable fields. Nil means "leave unchanged";
// updates merge field by field rather than replacing the row.
type EmployeeUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}
