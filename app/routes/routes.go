package routes

import (
	"net/http"

	"todo-app/app/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, todoController *controllers.TodoController) {
	router.HandleFunc("/health", controllers.HealthCheck).Methods(http.MethodGet)

	router.HandleFunc("/todos", todoController.ListTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", todoController.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos", todoController.DeleteAllTodos).Methods(http.MethodDelete)
	router.HandleFunc("/todos/seed", todoController.SeedTodos).Methods(http.MethodPost)
	router.HandleFunc("/todos/{todoID}", todoController.UpdateTodo).Methods(http.MethodPatch)
	router.HandleFunc("/todos/{todoID}", todoController.DeleteTodo).Methods(http.MethodDelete)
}
