package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/domain"
)

func TestRoleService_InsertDefaultRoles(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	table, err := svc.InsertDefaultRoles(context.Background())
	if err != nil {
		t.Fatalf("InsertDefaultRoles: %v", err)
	}
	if len(repo.roles) != len(domain.CanonicalRoles()) {
		t.Fatalf("expected %d stored roles, got %d", len(domain.CanonicalRoles()), len(repo.roles))
	}
	if table.Default().Name != domain.RoleUser {
		t.Fatalf("default role = %s, want User", table.Default().Name)
	}
	var all domain.Permission
	for _, p := range domain.AllPermissions {
		all = all.Add(p)
	}
	admin, ok := table.Resolve(domain.RoleAdministrator)
	if !ok || admin.Permissions != all {
		t.Fatalf("administrator not seeded with every permission: %+v", admin)
	}
}

func TestRoleService_InsertDefaultRoles_Idempotent(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.InsertDefaultRoles(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(repo.roles) != len(domain.CanonicalRoles()) {
		t.Fatalf("repeated seeding duplicated roles: %d", len(repo.roles))
	}
}

func TestRoleService_InsertDefaultRoles_RepairsStoredRoles(t *testing.T) {
	repo := newStubRoleRepo()
	repo.roles[domain.RoleUser] = domain.Role{Name: domain.RoleUser, Permissions: domain.PermissionFollow}
	repo.roles["Guest"] = domain.Role{Name: "Guest", Default: true}

	table, err := NewRoleService(repo, zerolog.Nop()).InsertDefaultRoles(context.Background())
	if err != nil {
		t.Fatalf("InsertDefaultRoles: %v", err)
	}

	user, _ := table.Resolve(domain.RoleUser)
	if !user.Default || !user.HasPermission(domain.PermissionWrite) {
		t.Fatalf("stale User role not rewritten: %+v", user)
	}
	guest, ok := table.Resolve("Guest")
	if !ok || guest.Default {
		t.Fatalf("legacy role should be kept without default flag: %+v", guest)
	}
	if repo.roles["Guest"].Default {
		t.Fatalf("demotion not persisted")
	}
}

func TestRoleService_InsertDefaultRoles_StorageError(t *testing.T) {
	repo := newStubRoleRepo()
	repo.err = errStorage

	if _, err := NewRoleService(repo, zerolog.Nop()).InsertDefaultRoles(context.Background()); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
