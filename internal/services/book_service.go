package services

import (
	"context"
	"fmt"

	"bookstore_backend/internal/models"
	"bookstore_backend/internal/repositories"
	"bookstore_backend/internal/services/dto"
	"bookstore_backend/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson"
)

type BookService interface {
	Create(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	Update(ctx context.Context, id string, req *dto.UpdateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, id string) (*models.Book, error)
}

type BookServiceImpl struct {
	bookRepo repositories.BookRepository
}

func NewBookService(bookRepo repositories.BookRepository) BookService {
	return &BookServiceImpl{bookRepo: bookRepo}
}

func (s *BookServiceImpl) Create(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Name:   req.Name,
		Author: req.Author,
		Price:  req.Price,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return books, nil
}

func (s *BookServiceImpl) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No book found with that %s ID", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateBookRequest) (*models.Book, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if len(fields) == 0 {
		return nil, apperrors.NewBadRequestError("No fields to update")
	}

	book, err := s.bookRepo.Update(ctx, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No book found with that %s ID", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) Delete(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No book found with that %s ID", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}
