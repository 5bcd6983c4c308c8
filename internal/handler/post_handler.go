package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"contentapi/internal/models"
)

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostRepo.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if post == nil {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.PostRepo.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.PostRepo.Update(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.PostRepo.Delete(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if !ok {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
