package visits

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory visit store for tests and early development.
type MemoryRepo struct {
	mu     sync.Mutex
	Visits []Visit
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo(visits ...Visit) *MemoryRepo {
	return &MemoryRepo{Visits: visits}
}

func (r *MemoryRepo) List(ctx context.Context, req ListRequest) ([]Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Visit, 0)
	for _, v := range r.Visits {
		if req.HospitalCode != "" && v.HospitalCode != req.HospitalCode {
			continue
		}
		if req.DiseaseCode != "" && v.DiseaseCode != req.DiseaseCode {
			continue
		}
		if !req.From.IsZero() && v.VisitedAt.Before(req.From) {
			continue
		}
		if !req.To.IsZero() && !v.VisitedAt.Before(req.To) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
