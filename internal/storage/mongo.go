package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/models"
)

const (
	usersCollection       = "users"
	credentialsCollection = "credentials"
)

// EnsureIndexes configures the unique email index on users and the owner
// index on credentials. Called on startup after Mongo has connected.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_email_unique"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(credentialsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("idx_user_id"),
	})
	return err
}

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(usersCollection)}
}

func (s *MongoUserStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Email:     email,
		Password:  passwordHash,
	}

	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUserStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

type MongoCredentialStore struct {
	col *mongo.Collection
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{col: db.Collection(credentialsCollection)}
}

func (s *MongoCredentialStore) CreateCredential(ctx context.Context, ownerID string, fields CredentialFields) (*models.Credential, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	now := time.Now().UTC()
	cred := &models.Credential{
		CreatedAt: now,
		UpdatedAt: now,
		Sitename:  fields.Sitename,
		Username:  fields.Username,
		Email:     fields.Email,
		Password:  fields.Password,
		Other:     fields.Other,
		UserID:    owner,
	}

	res, err := s.col.InsertOne(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	cred.ID = res.InsertedID.(primitive.ObjectID)
	return cred, nil
}

func (s *MongoCredentialStore) CredentialsByOwner(ctx context.Context, ownerID string) ([]models.Credential, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []models.Credential{}, nil
	}
	return s.find(ctx, bson.M{"user_id": owner})
}

func (s *MongoCredentialStore) SearchByOwner(ctx context.Context, ownerID, sitename string) ([]models.Credential, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []models.Credential{}, nil
	}

	// Quote the query so it matches as a literal substring, not as a regex.
	filter := bson.M{
		"user_id":  owner,
		"sitename": primitive.Regex{Pattern: regexp.QuoteMeta(sitename), Options: "i"},
	}
	return s.find(ctx, filter)
}

func (s *MongoCredentialStore) find(ctx context.Context, filter bson.M) ([]models.Credential, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	creds := []models.Credential{}
	for cur.Next(ctx) {
		var c models.Credential
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		creds = append(creds, c)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return creds, nil
}

func (s *MongoCredentialStore) UpdateCredential(ctx context.Context, ownerID, id string, fields CredentialFields) (*models.Credential, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"sitename":   fields.Sitename,
		"username":   fields.Username,
		"email":      fields.Email,
		"password":   fields.Password,
		"other":      fields.Other,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	cred := &models.Credential{}
	err = s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

func (s *MongoCredentialStore) DeleteCredential(ctx context.Context, ownerID, id string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ownedFilter builds the joint (id, owner) filter. A malformed id can
// reference no document, so it maps to not-found.
func ownedFilter(ownerID, id string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": owner}, nil
}
