package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"contentapi/internal/config"
	"contentapi/internal/repository"
)

type Handlers struct {
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Cfg         *config.Config
}

func NewHandlers(repo *repository.Repository, config *config.Config) *Handlers {
	return &Handlers{
		UserRepo:    repo.User,
		PostRepo:    repo.Post,
		CommentRepo: repo.Comment,
		Cfg:         config,
	}
}

// Routes builds the router. The handlers are thin pass-throughs: decode,
// call the repository, map the error kind to a status code.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/comments", h.ListComments).Methods(http.MethodGet)
	r.HandleFunc("/comments", h.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/comments/{id}", h.GetComment).Methods(http.MethodGet)
	r.HandleFunc("/comments/{id}", h.UpdateComment).Methods(http.MethodPut)
	r.HandleFunc("/comments/{id}", h.DeleteComment).Methods(http.MethodDelete)

	return r
}
