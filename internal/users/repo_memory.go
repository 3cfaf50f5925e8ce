package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/rbac"
)

// MemoryRepo is an in-memory Repository for tests and early development.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*auth.User
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo(users ...*auth.User) *MemoryRepo {
	r := &MemoryRepo{nextID: 1, users: map[int64]*auth.User{}}
	for _, u := range users {
		cp := *u
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
		r.users[cp.ID] = &cp
	}
	return r
}

func (r *MemoryRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepo) Create(ctx context.Context, u *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.IsActive && existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[cp.ID] = &cp
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, u *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return auth.ErrUserNotFound
	}
	cp := *u
	r.users[cp.ID] = &cp
	return nil
}

func (r *MemoryRepo) Deactivate(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.IsActive = false
	u.UpdatedAt = at
	return nil
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = at
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, scope rbac.Scope) ([]*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*auth.User, 0)
	for _, u := range r.users {
		if !scope.Unrestricted && u.HospitalCode != scope.HospitalCode {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
