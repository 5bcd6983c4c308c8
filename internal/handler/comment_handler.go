package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"contentapi/internal/models"
)

// ListComments returns the thread for one post when ?postId= is given,
// otherwise the global list, both in chronological order.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	var (
		comments []models.Comment
		err      error
	)

	if postID := r.URL.Query().Get("postId"); postID != "" {
		comments, err = h.CommentRepo.ListByPost(r.Context(), postID)
	} else {
		comments, err = h.CommentRepo.List(r.Context())
	}
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	comment, err := h.CommentRepo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if comment == nil {
		WriteError(w, "comment not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.CommentRepo.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.CommentRepo.Update(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.CommentRepo.Delete(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if !ok {
		WriteError(w, "comment not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
