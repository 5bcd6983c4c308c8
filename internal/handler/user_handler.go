package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"contentapi/internal/models"
)

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.UserRepo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if user == nil {
		WriteError(w, "user not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.UserRepo.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.UserRepo.Update(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.UserRepo.Delete(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if !ok {
		WriteError(w, "user not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
