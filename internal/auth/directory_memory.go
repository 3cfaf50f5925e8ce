package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryDirectory is an in-memory Directory for tests and early development.
type MemoryDirectory struct {
	mu    sync.Mutex
	users map[int64]*User
}

var _ Directory = (*MemoryDirectory)(nil)

func NewMemoryDirectory(users ...*User) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[int64]*User, len(users))}
	for _, u := range users {
		d.Put(u)
	}
	return d
}

func (d *MemoryDirectory) Put(u *User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := *u
	d.users[u.ID] = &cp
}

func (d *MemoryDirectory) FindByID(ctx context.Context, id int64) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (d *MemoryDirectory) FindActiveByUsername(ctx context.Context, username string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Username == username && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *MemoryDirectory) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	t := at
	u.LastLoginAt = &t
	u.UpdatedAt = at
	return nil
}

func (d *MemoryDirectory) UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = at
	return nil
}
