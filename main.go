package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title                       Bookshelf API
// @version                     1.0.0
// @description                 CRUD for books and users over a json file, with process time header and admin guard.
// @BasePath                    /
// @securityDefinitions.apikey  APIKey
// @in                          header
// @name                        X-API-Key
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
