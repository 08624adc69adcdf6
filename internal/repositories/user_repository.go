package repositories

import (
	"context"
	"errors"
	"time"

	"bookstore_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
)

// UserRepository owns user records and every document-store operation on
// them. Credential hashing lives in internal/auth; this layer stores what it
// is given.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	// ConsumeResetToken atomically finds the user holding an unexpired token
	// with the given hash and clears the token fields in the same command, so
	// a token can only ever be consumed once.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	EnsureIndexes(ctx context.Context) error
}

type UserRepositoryImpl struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &UserRepositoryImpl{col: db.Collection("users")}
}

func (r *UserRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.Active = true

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash, records the change time and
// clears any pending reset token.
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set": bson.M{
				"password":            passwordHash,
				"password_changed_at": changedAt,
			},
			"$unset": bson.M{
				"password_reset_token":   "",
				"password_reset_expires": "",
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"password_reset_token":   tokenHash,
			"password_reset_expires": expires,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ClearResetToken(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		}},
	)
	return err
}

func (r *UserRepositoryImpl) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{
			"password_reset_token":   tokenHash,
			"password_reset_expires": bson.M{"$gt": now},
		},
		bson.M{"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}
	return &user, nil
}
