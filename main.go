package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"todo-app/app/config"
	"todo-app/app/controllers"
	"todo-app/app/routes"
	"todo-app/app/services"
	"todo-app/app/store"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
)

func main() {
	cfg := config.Load()
	port := pflag.String("port", cfg.Port, "HTTP listen port")
	dbPath := pflag.String("db", cfg.DBPath, "SQLite database file")
	seed := pflag.Bool("seed", false, "seed sample todos when the database is empty")
	pflag.Parse()
	cfg.Port = *port
	cfg.DBPath = *dbPath

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.DBPath, cfg.IsTest())
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	todoStore := store.NewTodoStore(db)
	if *seed {
		n, err := todoStore.SeedIfEmpty(ctx)
		if err != nil {
			log.Fatal("Failed to seed database:", err)
		}
		if n > 0 {
			log.Printf("Seeded %d todos", n)
		}
	}

	todoService := services.NewTodoService(todoStore)
	todoController := controllers.NewTodoController(todoService, cfg.IsDev())

	router := mux.NewRouter()
	routes.RegisterRoutes(router, todoController)

	fmt.Printf("Server is running on http://0.0.0.0:%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
