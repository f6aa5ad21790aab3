// internal/store/memory/members.go
package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"libralend/internal/membership"
)

// MemberStore keeps members in a map keyed by id.
type MemberStore struct {
	c *core
}

func (s *MemberStore) Get(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	defer s.c.rlock()()
	m, ok := s.c.state.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *MemberStore) GetByEmail(ctx context.Context, email string) (*membership.Member, error) {
	defer s.c.rlock()()
	for _, m := range s.c.state.members {
		if m.Email == email {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *MemberStore) GetByMembershipID(ctx context.Context, membershipID string) (*membership.Member, error) {
	defer s.c.rlock()()
	for _, m := range s.c.state.members {
		if m.MembershipID == membershipID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *MemberStore) Create(ctx context.Context, member *membership.Member) error {
	defer s.c.lock()()
	s.c.state.members[member.ID] = *member
	return nil
}

func (s *MemberStore) Update(ctx context.Context, member *membership.Member) error {
	defer s.c.lock()()
	s.c.state.members[member.ID] = *member
	return nil
}

func (s *MemberStore) List(ctx context.Context) ([]membership.Member, error) {
	defer s.c.rlock()()
	return s.collect(func(membership.Member) bool { return true }), nil
}

func (s *MemberStore) ListActiveNonLibrarians(ctx context.Context) ([]membership.Member, error) {
	defer s.c.rlock()()
	return s.collect(func(m membership.Member) bool {
		return m.IsActive() && m.Role != membership.RoleLibrarian
	}), nil
}

func (s *MemberStore) collect(keep func(membership.Member) bool) []membership.Member {
	out := make([]membership.Member, 0)
	for _, m := range s.c.state.members {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
