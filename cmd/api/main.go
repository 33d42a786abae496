package main

import (
	"os"

	_ "go-portfolio-backend/docs" // swagger spec
)

// @title           Teacher Portfolio API
// @version         1.0
// @description     Evidence portfolio of a teacher: performance elements, evidences with files, and the about-me profile.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
