package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupUserRoutes injects user related the api endpoints.
func (api *APIHandler) SetupUserRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/users", m.public(api.GetAllUsers))
	router.GET("/users/:id", m.public(api.GetOneUser))
	router.POST("/users", m.admin(api.CreateUser))
	router.PUT("/users/:id", m.admin(api.UpdateUser))
	router.DELETE("/users/:id", m.admin(api.DeleteOneUser))
	return router
}
