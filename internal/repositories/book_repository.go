package repositories

import (
	"context"
	"errors"

	"bookstore_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBookNotFound = errors.New("book not found")

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.Book, error)
	Delete(ctx context.Context, id string) (*models.Book, error)
}

type BookRepositoryImpl struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) BookRepository {
	return &BookRepositoryImpl{col: db.Collection("books")}
}

func (r *BookRepositoryImpl) Create(ctx context.Context, book *models.Book) error {
	res, err := r.col.InsertOne(ctx, book)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = oid
	}
	return nil
}

func (r *BookRepositoryImpl) FindAll(ctx context.Context) ([]models.Book, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	var book models.Book
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	var book models.Book
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepositoryImpl) Delete(ctx context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	var book models.Book
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}
