package rbac

import (
	"context"
	"sync"

	"medreport-platform/internal/auth"
)

// GrantSource looks up the sparse per-role capability overrides. found=false
// means no row exists for the pair, which the policy treats as deny.
type GrantSource interface {
	Lookup(ctx context.Context, role auth.Role, capability string) (allowed, found bool, err error)
}

// Policy is the single authorization entry point. Evaluation order:
//  1. superadmin: allow unconditionally
//  2. hierarchy capabilities: numeric role comparison
//  3. grant table: allow only on an explicit allowed=true row
//
// Capabilities absent from the grant table deny by default, so new
// capabilities are safe until explicitly granted.
type Policy struct {
	grants GrantSource
}

func NewPolicy(grants GrantSource) *Policy {
	return &Policy{grants: grants}
}

// Decide reports whether principal may exercise capability. An error means
// the grant source failed, not that access was denied.
func (p *Policy) Decide(ctx context.Context, principal auth.Principal, capability string) (bool, error) {
	if principal.Role == auth.RoleSuperadmin {
		return true, nil
	}
	if required, ok := hierarchyCapabilities[capability]; ok {
		return principal.Role.AtLeast(required), nil
	}
	if p.grants == nil {
		return false, nil
	}
	allowed, found, err := p.grants.Lookup(ctx, principal.Role, capability)
	if err != nil {
		return false, err
	}
	return found && allowed, nil
}

// Grant is one row of the sparse override table.
type Grant struct {
	Role       auth.Role
	Capability string
	Allowed    bool
}

// MemoryGrants is an in-memory GrantSource for tests and early development.
type MemoryGrants struct {
	mu     sync.Mutex
	grants map[grantKey]bool
}

type grantKey struct {
	role       auth.Role
	capability string
}

var _ GrantSource = (*MemoryGrants)(nil)

func NewMemoryGrants(grants ...Grant) *MemoryGrants {
	g := &MemoryGrants{grants: make(map[grantKey]bool, len(grants))}
	for _, grant := range grants {
		g.Set(grant)
	}
	return g
}

func (g *MemoryGrants) Set(grant Grant) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants[grantKey{role: grant.Role, capability: grant.Capability}] = grant.Allowed
}

func (g *MemoryGrants) Lookup(ctx context.Context, role auth.Role, capability string) (bool, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	allowed, found := g.grants[grantKey{role: role, capability: capability}]
	return allowed, found, nil
}
