package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

// RoleService seeds the canonical roles and loads them into a RoleTable.
type RoleService struct {
	repo ports.RoleRepository
	log  zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, log: log}
}

// InsertDefaultRoles creates missing canonical roles and rewrites the
// permissions and default flag of existing ones, so re-running it after the
// canonical definition changes fixes stored roles. It returns the table of
// every stored role. Non-canonical roles are kept but lose the default flag.
func (s *RoleService) InsertDefaultRoles(ctx context.Context) (*domain.RoleTable, error) {
	canonical := make(map[domain.RoleID]struct{})
	for _, r := range domain.CanonicalRoles() {
		if err := s.repo.Upsert(ctx, r); err != nil {
			return nil, fmt.Errorf("insert default roles: %s: %w", r.Name, err)
		}
		canonical[r.Name] = struct{}{}
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert default roles: list: %w", err)
	}

	for i, r := range stored {
		if _, ok := canonical[r.Name]; ok || !r.Default {
			continue
		}
		r.Default = false
		if err := s.repo.Upsert(ctx, r); err != nil {
			return nil, fmt.Errorf("insert default roles: demote %s: %w", r.Name, err)
		}
		stored[i] = r
		s.log.Warn().Str("role", string(r.Name)).Msg("legacy default role demoted")
	}

	table, err := domain.NewRoleTable(stored)
	if err != nil {
		return nil, fmt.Errorf("insert default roles: %w", err)
	}

	s.log.Info().Int("roles", len(stored)).Str("default", string(table.Default().Name)).Msg("roles seeded")
	return table, nil
}
