package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
)

var ErrPermissionDenied = errors.New("permission denied")

// AdminAPI is the backend collaborator for user administration.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int) (User, error)
	ChangeUserRole(ctx context.Context, id int, role string) (User, error)
}

// Service drives the admin-only user-management screens. Every operation
// checks the gate before issuing its data fetch, so a denied screen never
// hits the network.
type Service struct {
	api  AdminAPI
	gate *Gate
	log  core.Logger
}

func NewService(api AdminAPI, gate *Gate, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Service{api: api, gate: gate, log: logger}
}

func (svc *Service) List(ctx context.Context) ([]User, error) {
	if !svc.gate.Allows(RoleAdmin) {
		return nil, ErrPermissionDenied
	}
	users, err := svc.api.ListUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	return users, nil
}

// Get fetches a user detail, including their favorite courses.
func (svc *Service) Get(ctx context.Context, id int) (User, error) {
	if !svc.gate.Allows(RoleAdmin) {
		return User{}, ErrPermissionDenied
	}
	usr, err := svc.api.GetUser(ctx, id)
	if err != nil {
		return User{}, errors.Wrapf(err, "getting user %d", id)
	}
	return usr, nil
}

// ChangeRole assigns a role to a user.
func (svc *Service) ChangeRole(ctx context.Context, id int, role string) (User, error) {
	if !svc.gate.Allows(RoleAdmin) {
		return User{}, ErrPermissionDenied
	}
	if !ValidRole(role) {
		return User{}, core.NewValidationError(errRoleInvalid, core.FieldError{Field: "role", Error: roleText})
	}
	usr, err := svc.api.ChangeUserRole(ctx, id, role)
	if err != nil {
		return User{}, errors.Wrapf(err, "changing role of user %d", id)
	}
	return usr, nil
}
