package visits

import (
	"context"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/rbac"
)

// Repository reads visit rows. Implementations must honor every filter field
// that is set.
type Repository interface {
	List(ctx context.Context, req ListRequest) ([]Visit, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List applies the caller's hospital scope to the query. Unrestricted
// callers see whatever filter they asked for; scoped callers always query
// exactly their own hospital, regardless of the client-supplied filter.
func (s *Service) List(ctx context.Context, scope rbac.Scope, req ListRequest) ([]Visit, error) {
	if !scope.Unrestricted {
		if !scope.Assigned() {
			return nil, auth.ErrHospitalNotAssigned
		}
		req.HospitalCode = scope.HospitalCode
	}
	return s.repo.List(ctx, req)
}
