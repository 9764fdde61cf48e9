package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog/internal/core/domain"
)

func testRoleTable(t *testing.T) *domain.RoleTable {
	t.Helper()
	table, err := domain.NewRoleTable(domain.CanonicalRoles())
	if err != nil {
		t.Fatalf("NewRoleTable: %v", err)
	}
	return table
}

func TestUserDocument_RoundTrip(t *testing.T) {
	domain.PasswordCost = bcrypt.MinCost
	table := testRoleTable(t)
	mod, _ := table.Resolve(domain.RoleModerator)

	u := domain.NewUser("cat", "John@Example.com", mod, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err := u.SetPassword("cat"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	u.Name = "John"
	u.PostIDs = []string{"p1"}

	doc := toUserDocument(u)
	doc.ID = primitive.NewObjectID()

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if stored["role"] != "Moderator" {
		t.Fatalf("role should be stored by name, got %v", stored["role"])
	}
	if stored["email"] != "john@example.com" {
		t.Fatalf("email should be stored normalized, got %v", stored["email"])
	}
	if _, ok := stored["password_hash"].(string); !ok {
		t.Fatalf("password hash should be stored as a string, got %T", stored["password_hash"])
	}

	var back userDocument
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	repo := &UserRepository{roles: table}
	got := repo.toDomain(back)
	if got.ID != doc.ID.Hex() || got.Username != "cat" || got.Name != "John" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Role.Name != domain.RoleModerator || !got.Can(domain.PermissionModerate) {
		t.Fatalf("role not resolved: %+v", got.Role)
	}
	if !got.VerifyPassword("cat") {
		t.Fatalf("credential lost in round trip")
	}
	if !got.MemberSince.Equal(u.MemberSince) || len(got.PostIDs) != 1 {
		t.Fatalf("fields lost in round trip: %+v", got)
	}
}

func TestUserRepository_UnknownRoleFallsBackToDefault(t *testing.T) {
	repo := &UserRepository{roles: testRoleTable(t)}
	got := repo.toDomain(userDocument{ID: primitive.NewObjectID(), Role: "Retired"})
	if got.Role.Name != domain.RoleUser {
		t.Fatalf("expected default role, got %s", got.Role.Name)
	}
}

func TestPostDocument_RoundTrip(t *testing.T) {
	p := &domain.Post{SID: 7, Body: "hello", Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), AuthorID: "a1"}
	doc := toPostDocument(p)
	doc.ID = primitive.NewObjectID()

	got := doc.toDomain()
	if got.ID != doc.ID.Hex() || got.SID != 7 || got.Body != "hello" || got.AuthorID != "a1" || !got.Timestamp.Equal(p.Timestamp) {
		t.Fatalf("unexpected post: %+v", got)
	}
}
