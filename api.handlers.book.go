package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetAllBooks godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {object}  APIResponse{data=[]Book}
// @Failure      500  {object}  APIError
// @Router       /books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to get all books", err.Error()))
		return
	}
	api.logger.Info("success to get all books", zap.String("request.id", requestID))
	total := len(books)
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "All books fetched successfully.", &total, books))
}

// GetOneBook godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  APIResponse{data=Book}
// @Failure      400  {object}  APIError
// @Failure      404  {object}  APIError
// @Router       /books/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", err.Error()))
		return
	}
	book, err := api.bookService.GetOne(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int("book.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.Int("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to get the book", err.Error()))
		return
	}
	api.logger.Info("success to get book", zap.Int("book.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "Book fetched successfully.", nil, book))
}

// CreateBook godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     APIKey
// @Param        book  body      BookInput  true  "Book"
// @Success      201   {object}  APIResponse{data=Book}
// @Failure      400   {object}  APIError
// @Failure      401   {object}  APIError
// @Router       /books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in BookInput
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeRequestBody(r, &in)
	if err == nil {
		err = ValidateBookInput(&in)
	}
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to create the book", err.Error()))
		return
	}

	book, err := api.bookService.Add(r.Context(), in.Book(0))
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to create the book", err.Error()))
		return
	}
	api.logger.Info("success to create book", zap.Int("book.id", book.ID), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusCreated, "Book created successfully.", nil, book))
}

// UpdateBook godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     APIKey
// @Param        id    path      int        true  "Book ID"
// @Param        book  body      BookInput  true  "Book"
// @Success      200   {object}  APIResponse{data=Book}
// @Failure      400   {object}  APIError
// @Failure      401   {object}  APIError
// @Failure      404   {object}  APIError
// @Router       /books/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in BookInput
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", err.Error()))
		return
	}

	err = DecodeRequestBody(r, &in)
	if err == nil {
		err = ValidateBookInput(&in)
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Int("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to update the book", err.Error()))
		return
	}

	book, err := api.bookService.Update(r.Context(), id, in.Book(id))
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int("book.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Int("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to update the book", err.Error()))
		return
	}
	api.logger.Info("success to update book", zap.Int("book.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "Book updated successfully.", nil, book))
}

// DeleteOneBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     APIKey
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  APIResponse{data=Book}
// @Failure      400  {object}  APIError
// @Failure      401  {object}  APIError
// @Failure      404  {object}  APIError
// @Router       /books/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", err.Error()))
		return
	}

	book, err := api.bookService.Delete(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int("book.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to delete book", zap.Int("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the book", err.Error()))
		return
	}
	api.logger.Info("success to delete book", zap.Int("book.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "Book deleted successfully.", nil, book))
}

// writeError sends errResp and logs a failure to do so.
func (api *APIHandler) writeError(w http.ResponseWriter, r *http.Request, errResp *APIError) {
	if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", errResp.RequestID), zap.Error(err))
	}
}

// writeResponse sends resp and logs a failure to do so.
func (api *APIHandler) writeResponse(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", resp.RequestID), zap.Error(err))
	}
}
