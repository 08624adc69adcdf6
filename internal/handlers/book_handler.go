package handlers

import (
	"fmt"
	"net/http"

	"bookstore_backend/internal/services"
	"bookstore_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	*BaseHandler
	bookService services.BookService
}

func NewBookHandler(base *BaseHandler, bookService services.BookService) *BookHandler {
	return &BookHandler{
		BaseHandler: base,
		bookService: bookService,
	}
}

// RegisterRoutes registers the book routes. Listing requires authentication;
// creation additionally requires the admin role.
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	book := rg.Group("/book")
	{
		book.GET("", guard, h.List)
		book.POST("", guard, adminOnly, h.Create)
		book.GET("/:bookId", h.Get)
		book.PATCH("/:bookId", h.Update)
		book.DELETE("/:bookId", h.Delete)
	}
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"result": len(books),
		"data": gin.H{
			"book": books,
		},
	})
}

func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.bookService.Get(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"book": book,
		},
	})
}

func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data": gin.H{
			"book": book,
		},
	})
}

func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), c.Param("bookId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"book": book,
		},
	})
}

func (h *BookHandler) Delete(c *gin.Context) {
	bookID := c.Param("bookId")
	book, err := h.bookService.Delete(c.Request.Context(), bookID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"msg":  fmt.Sprintf("deleteBook of this %s ID", bookID),
			"book": book,
		},
	})
}
