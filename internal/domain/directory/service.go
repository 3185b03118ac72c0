package directory

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Register(ctx context.Context, name, email, password, role string) (Employee, error) {
	if role == "" {
		role = RoleEmployee
	}
	if role != RoleEmployee && role != RoleAdmin {
		return Employee{}, ErrInvalidRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Employee{}, err
	}
	return s.Store.CreateEmployee(ctx, strings.TrimSpace(name), normalizeEmail(email), hash, role)
}

// Authenticate verifies the password against the stored hash. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Employee, error) {
	cred, err := s.Store.FindCredentialByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return Employee{}, ErrInvalidCredentials
	}
	if err != nil {
		return Employee{}, err
	}
	if err := CheckPassword(cred.PasswordHash, password); err != nil {
		return Employee{}, ErrInvalidCredentials
	}
	return Employee{ID: cred.ID, Name: cred.Name, Email: cred.Email, Role: cred.Role}, nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) Update(ctx context.Context, id string, patch EmployeeUpdate) (Employee, error) {
	emp, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if err := mergeEmployee(&emp, patch); err != nil {
		return Employee{}, err
	}
	if err := s.Store.UpdateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteEmployee(ctx, id)
}

func (s *Service) GrantAdmin(ctx context.Context, userID, permissions string) (Admin, error) {
	if _, err := s.Store.GetEmployee(ctx, userID); err != nil {
		return Admin{}, err
	}
	return s.Store.GrantAdmin(ctx, userID, permissions)
}

func (s *Service) RevokeAdmin(ctx context.Context, userID string) (bool, error) {
	return s.Store.RevokeAdmin(ctx, userID)
}

func (s *Service) ListAdmins(ctx context.Context) ([]Admin, error) {
	return s.Store.ListAdmins(ctx)
}

// mergeEmployee copies the provided fields onto the loaded row, one field
// at a time.
func mergeEmployee(emp *Employee, patch EmployeeUpdate) error {
	if patch.Name != nil {
		emp.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		emp.Email = normalizeEmail(*patch.Email)
	}
	if patch.Role != nil {
		role := strings.TrimSpace(*patch.Role)
		if role != RoleEmployee && role != RoleAdmin {
			return ErrInvalidRole
		}
		emp.Role = role
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
