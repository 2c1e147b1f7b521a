package main

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	companynews "github.com/pep299/company-news-api"
)

// Runs the CompanyNews function locally through the Functions Framework
func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	if os.Getenv("FUNCTION_TARGET") == "" {
		os.Setenv("FUNCTION_TARGET", companynews.FunctionName)
	}

	log.Printf("🚀 Starting function %s on port %s", os.Getenv("FUNCTION_TARGET"), port)
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v", err)
	}
}
