// Package main GenAI Stack API Server
//
//	@title			GenAI Stack API
//	@version		1.0
//	@description	A no-code workflow builder backend with document knowledge bases and LLM-powered execution
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"log"

	_ "genai-stack/docs" // This imports the docs package to initialize swagger
	"genai-stack/internal/server"
)

func main() {
	log.Println("Starting GenAI Stack server...")
	srv, err := server.NewServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
