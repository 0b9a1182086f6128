package main

import (
	"log"
	"net/http"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/middleware"
	"kairoplan/schedule-ai/routes"
	"kairoplan/schedule-ai/supabase"
)

func main() {

	config.LoadEnv()
	config.InitLogger()
	supabase.Init()

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	log.Println("Server is running on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
