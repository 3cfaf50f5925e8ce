// Package users implements administrative account management. Every
// operation is evaluated against the caller's role hierarchy position and
// hospital scope before touching storage.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/rbac"
)

var ErrUsernameTaken = errors.New("username already in use")

// Repository persists account rows. Create must run its active-username
// uniqueness check and the insert in one transaction.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*auth.User, error)
	Create(ctx context.Context, u *auth.User) error
	Update(ctx context.Context, u *auth.User) error
	Deactivate(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error
	List(ctx context.Context, scope rbac.Scope) ([]*auth.User, error)
}

type Service struct {
	repo   Repository
	hasher auth.Hasher
	clock  func() time.Time
}

func NewService(repo Repository, hasher auth.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher, clock: time.Now}
}

type CreateRequest struct {
	Username     string
	Password     string
	Role         auth.Role
	HospitalCode string
}

type UpdateRequest struct {
	Role         *auth.Role
	HospitalCode *string
}

// Create adds an account. Admin callers can only create accounts below their
// own role, inside their own hospital; the request's hospital code is
// overridden by the caller's scope when restricted.
func (s *Service) Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*auth.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || !req.Role.Valid() {
		return nil, auth.ErrInvalidArgument
	}
	if err := rbac.CanManageTargetUser(actor, req.Role); err != nil {
		return nil, err
	}

	scope := rbac.ScopeFor(actor)
	if !scope.Unrestricted {
		if !scope.Assigned() {
			return nil, auth.ErrHospitalNotAssigned
		}
		req.HospitalCode = scope.HospitalCode
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	user := &auth.User{
		Username:     req.Username,
		PasswordHash: digest,
		Role:         req.Role,
		HospitalCode: req.HospitalCode,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns one account the caller is allowed to see.
func (s *Service) Get(ctx context.Context, actor auth.Principal, id int64) (*auth.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.inScope(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns the accounts visible inside the caller's hospital scope.
func (s *Service) List(ctx context.Context, actor auth.Principal) ([]*auth.User, error) {
	scope, err := rbac.EvaluateScope(actor)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope)
}

// Update changes role and/or hospital assignment. Both the target's current
// role and any new role must be manageable by the caller.
func (s *Service) Update(ctx context.Context, actor auth.Principal, id int64, req UpdateRequest) (*auth.User, error) {
	user, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, auth.ErrInvalidArgument
		}
		if err := rbac.CanManageTargetUser(actor, *req.Role); err != nil {
			return nil, err
		}
		user.Role = *req.Role
	}
	if req.HospitalCode != nil {
		scope := rbac.ScopeFor(actor)
		if !scope.Unrestricted && *req.HospitalCode != scope.HospitalCode {
			return nil, auth.ErrPermissionDenied
		}
		user.HospitalCode = *req.HospitalCode
	}

	user.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-retires an account; rows are never hard-deleted.
func (s *Service) Deactivate(ctx context.Context, actor auth.Principal, id int64) error {
	if _, err := s.manageable(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id, s.clock().UTC())
}

// ResetPassword sets a new password without proving the old one. It is an
// administrative action and obeys the same management hierarchy as delete.
func (s *Service) ResetPassword(ctx context.Context, actor auth.Principal, id int64, newPassword string) error {
	if newPassword == "" {
		return auth.ErrInvalidArgument
	}
	if _, err := s.manageable(ctx, actor, id); err != nil {
		return err
	}
	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, digest, s.clock().UTC())
}

// manageable fetches the target and checks both hierarchy and hospital scope.
func (s *Service) manageable(ctx context.Context, actor auth.Principal, id int64) (*auth.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rbac.CanManageTargetUser(actor, user.Role); err != nil {
		return nil, err
	}
	if err := s.inScope(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) inScope(actor auth.Principal, target *auth.User) error {
	scope := rbac.ScopeFor(actor)
	if scope.Unrestricted {
		return nil
	}
	if !scope.Assigned() {
		return auth.ErrHospitalNotAssigned
	}
	if target.HospitalCode != scope.HospitalCode {
		return auth.ErrPermissionDenied
	}
	return nil
}
