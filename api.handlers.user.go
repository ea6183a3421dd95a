package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetAllUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  APIResponse{data=[]User}
// @Router       /users [get]
func (api *APIHandler) GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	users, err := api.userService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all users", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to get all users", err.Error()))
		return
	}
	api.logger.Info("success to get all users", zap.String("request.id", requestID))
	total := len(users)
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "All users fetched successfully.", &total, users))
}

// GetOneUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  APIResponse{data=User}
// @Failure      404  {object}  APIError
// @Router       /users/{id} [get]
func (api *APIHandler) GetOneUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "user id provided is not valid", err.Error()))
		return
	}
	user, err := api.userService.GetOne(r.Context(), id)
	if errors.Is(err, ErrUserNotFound) {
		api.logger.Error("user does not exist", zap.Int("user.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to get user", zap.Int("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to get the user", err.Error()))
		return
	}
	api.logger.Info("success to get user", zap.Int("user.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "User fetched successfully.", nil, user))
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     APIKey
// @Param        user  body      UserInput  true  "User"
// @Success      201   {object}  APIResponse{data=User}
// @Failure      400   {object}  APIError
// @Failure      401   {object}  APIError
// @Router       /users [post]
func (api *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in UserInput
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeRequestBody(r, &in)
	if err == nil {
		err = ValidateUserInput(&in)
	}
	if err != nil {
		api.logger.Error("failed to create user", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to create the user", err.Error()))
		return
	}

	user, err := api.userService.Add(r.Context(), in.User(0))
	if err != nil {
		api.logger.Error("failed to create user", zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to create the user", err.Error()))
		return
	}
	api.logger.Info("success to create user", zap.Int("user.id", user.ID), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusCreated, "User created successfully.", nil, user))
}

// UpdateUser godoc
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     APIKey
// @Param        id    path      int        true  "User ID"
// @Param        user  body      UserInput  true  "User"
// @Success      200   {object}  APIResponse{data=User}
// @Failure      404   {object}  APIError
// @Router       /users/{id} [put]
func (api *APIHandler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in UserInput
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "user id provided is not valid", err.Error()))
		return
	}

	err = DecodeRequestBody(r, &in)
	if err == nil {
		err = ValidateUserInput(&in)
	}
	if err != nil {
		api.logger.Error("failed to update user", zap.Int("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "failed to update the user", err.Error()))
		return
	}

	user, err := api.userService.Update(r.Context(), id, in.User(id))
	if errors.Is(err, ErrUserNotFound) {
		api.logger.Error("user does not exist", zap.Int("user.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to update user", zap.Int("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to update the user", err.Error()))
		return
	}
	api.logger.Info("success to update user", zap.Int("user.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "User updated successfully.", nil, user))
}

// DeleteOneUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     APIKey
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  APIResponse{data=User}
// @Failure      404  {object}  APIError
// @Router       /users/{id} [delete]
func (api *APIHandler) DeleteOneUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusBadRequest, "user id provided is not valid", err.Error()))
		return
	}

	user, err := api.userService.Delete(r.Context(), id)
	if errors.Is(err, ErrUserNotFound) {
		api.logger.Error("user does not exist", zap.Int("user.id", id), zap.String("request.id", requestID))
		api.writeError(w, r, NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData))
		return
	}
	if err != nil {
		api.logger.Error("failed to delete user", zap.Int("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.writeError(w, r, NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the user", err.Error()))
		return
	}
	api.logger.Info("success to delete user", zap.Int("user.id", id), zap.String("request.id", requestID))
	api.writeResponse(w, r, GenericResponse(requestID, http.StatusOK, "User deleted successfully.", nil, user))
}
