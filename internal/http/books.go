package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarium/internal/books"
	"librarium/internal/entities"
)

type BooksController struct {
	service *books.Service
}

func NewBooksController(service *books.Service) *BooksController {
	return &BooksController{
		service: service,
	}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	allBooks, err := controller.service.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "failed to fetch books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": allBooks, "count": len(allBooks)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.service.GetBookByID(id)
	if err != nil {
		respondInternalError(c, err, "failed to fetch book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req entities.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON payload: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.service.CreateBook(&req)
	if err != nil {
		respondInternalError(c, err, "failed to create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update entities.BookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid JSON payload: "+err.Error())
		return
	}
	if err := update.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.service.UpdateBook(id, &update)
	if err != nil {
		respondInternalError(c, err, "failed to update book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.service.DeleteBook(id)
	if err != nil {
		respondInternalError(c, err, "failed to delete book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully", "book": book})
}
