package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects book related the api endpoints. Reads
// are public and writes require the admin api key.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/books", m.public(api.GetAllBooks))
	router.GET("/books/:id", m.public(api.GetOneBook))
	router.POST("/books", m.admin(api.CreateBook))
	router.PUT("/books/:id", m.admin(api.UpdateBook))
	router.DELETE("/books/:id", m.admin(api.DeleteOneBook))
	return router
}
