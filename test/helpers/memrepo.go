package helpers

import (
	"context"
	"sync"
	"time"

	"bookstore_backend/internal/models"
	"bookstore_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository is an in-memory UserRepository for tests.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by hex id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *MemoryUserRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.Active = true
	r.users[user.ID.Hex()] = cloneUser(user)
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	t := changedAt
	user.PasswordChangedAt = &t
	user.ResetTokenHash = ""
	user.ResetTokenExp = nil
	return nil
}

func (r *MemoryUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ResetTokenHash = tokenHash
	t := expires
	user.ResetTokenExp = &t
	return nil
}

func (r *MemoryUserRepository) ClearResetToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ResetTokenHash = ""
	user.ResetTokenExp = nil
	return nil
}

func (r *MemoryUserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ResetTokenHash == tokenHash && user.ResetTokenExp != nil && user.ResetTokenExp.After(now) {
			user.ResetTokenHash = ""
			user.ResetTokenExp = nil
			return cloneUser(user), nil
		}
	}
	return nil, repositories.ErrResetTokenInvalid
}

// Delete removes a user directly. Test-only escape hatch for simulating
// accounts deleted after token issuance.
func (r *MemoryUserRepository) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

// Get returns the raw stored record for assertions.
func (r *MemoryUserRepository) Get(userID string) (*models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, false
	}
	return cloneUser(user), true
}

// SetRole updates the stored role directly.
func (r *MemoryUserRepository) SetRole(userID string, role models.UserRole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.Role = role
	}
}

// MemoryBookRepository is an in-memory BookRepository for tests.
type MemoryBookRepository struct {
	mu    sync.Mutex
	books map[string]*models.Book
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{books: make(map[string]*models.Book)}
}

func cloneBook(b *models.Book) *models.Book {
	c := *b
	return &c
}

func (r *MemoryBookRepository) Create(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book.ID = primitive.NewObjectID()
	r.books[book.ID.Hex()] = cloneBook(book)
	return nil
}

func (r *MemoryBookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := []models.Book{}
	for _, b := range r.books {
		books = append(books, *b)
	}
	return books, nil
}

func (r *MemoryBookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, repositories.ErrBookNotFound
	}
	return cloneBook(book), nil
}

func (r *MemoryBookRepository) Update(ctx context.Context, id string, fields bson.M) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, repositories.ErrBookNotFound
	}
	if name, ok := fields["name"].(string); ok {
		book.Name = name
	}
	if author, ok := fields["author"].(string); ok {
		book.Author = author
	}
	if price, ok := fields["price"].(float64); ok {
		book.Price = price
	}
	return cloneBook(book), nil
}

func (r *MemoryBookRepository) Delete(ctx context.Context, id string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, repositories.ErrBookNotFound
	}
	delete(r.books, id)
	return book, nil
}
