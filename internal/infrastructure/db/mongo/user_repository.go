package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

const collectionUsers = "users"

// RoleResolver maps the stored role name back to a full Role.
type RoleResolver interface {
	Resolve(id domain.RoleID) (domain.Role, bool)
	Default() domain.Role
}

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col   *mongo.Collection
	roles RoleResolver
}

func NewUserRepository(db *mongo.Database, roles RoleResolver) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), roles: roles}
}

// userDocument is the stored shape of a user. The role is kept by name
// only; its permissions live in the roles collection.
type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Email       string             `bson:"email"`
	Password    domain.Credential  `bson:"password_hash"`
	Confirmed   bool               `bson:"confirmed"`
	Role        string             `bson:"role"`
	Name        string             `bson:"name,omitempty"`
	Location    string             `bson:"location,omitempty"`
	AboutMe     string             `bson:"about_me,omitempty"`
	MemberSince time.Time          `bson:"member_since"`
	LastSeen    time.Time          `bson:"last_seen"`
	PostIDs     []string           `bson:"post_ids,omitempty"`
}

func toUserDocument(u *domain.User) userDocument {
	return userDocument{
		Username:    u.Username,
		Email:       domain.NormalizeEmail(u.Email),
		Password:    u.Credential,
		Confirmed:   u.Confirmed,
		Role:        string(u.Role.Name),
		Name:        u.Name,
		Location:    u.Location,
		AboutMe:     u.AboutMe,
		MemberSince: u.MemberSince.UTC(),
		LastSeen:    u.LastSeen.UTC(),
		PostIDs:     u.PostIDs,
	}
}

func (r *UserRepository) toDomain(d userDocument) *domain.User {
	role, ok := r.roles.Resolve(domain.RoleID(d.Role))
	if !ok {
		role = r.roles.Default()
	}
	return &domain.User{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		Email:       d.Email,
		Credential:  d.Password,
		Confirmed:   d.Confirmed,
		Role:        role,
		Name:        d.Name,
		Location:    d.Location,
		AboutMe:     d.AboutMe,
		MemberSince: d.MemberSince.UTC(),
		LastSeen:    d.LastSeen.UTC(),
		PostIDs:     d.PostIDs,
	}
}

// Create inserts a new user document and sets user.ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()
	return nil
}

// Save replaces the stored document of an existing user.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDocument(user)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail relies on emails being stored normalized.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.toDomain(d), nil
}

// DeleteAll removes every user. Used by test setup and teardown.
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique indexes that back username and email
// uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.UserRepository = (*UserRepository)(nil)
