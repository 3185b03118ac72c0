package directory

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, name, email, passwordHash, role string) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	FindCredentialByEmail(ctx context.Context, email string) (Credential, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id string) (bool, error)

	GrantAdmin(ctx context.Context, userID, permissions string) (Admin, error)
	RevokeAdmin(ctx context.Context, userID string) (bool, error)
	ListAdmins(ctx context.Context) ([]Admin, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
