package main

import (
	"cliphub/internal/app"
	"cliphub/pkg/config"

	_ "cliphub/docs" // Swagger docs
)

// @title           Cliphub Account API
// @version         1.0
// @description     User accounts, sessions and channel profiles for the Cliphub video platform

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
