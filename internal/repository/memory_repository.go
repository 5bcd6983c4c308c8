package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"contentapi/internal/apperr"
	"contentapi/internal/models"
	"contentapi/internal/objectid"
	"contentapi/internal/validation"
)

// NewMemoryRepository returns repositories backed by process memory with
// the same contract as the mongo-backed ones, including foreign-key
// checks, cascade order and list ordering. It serves as a test double,
// the reference implementation for the property tests, and a standalone
// demo backend (STORAGE_BACKEND=memory).
func NewMemoryRepository() *Repository {
	s := &memoryStore{}
	return &Repository{
		User:    &memoryUserRepository{s: s},
		Post:    &memoryPostRepository{s: s},
		Comment: &memoryCommentRepository{s: s},
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	users    []models.User
	posts    []models.Post
	comments []models.Comment
}

// callers hold s.mu
func (s *memoryStore) userExists(id string) bool {
	return slices.ContainsFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *memoryStore) postExists(id string) bool {
	return slices.ContainsFunc(s.posts, func(p models.Post) bool { return p.ID == id })
}

// users

type memoryUserRepository struct {
	s *memoryStore
}

func (r *memoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := slices.Clone(r.s.users)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user := models.User{
		ID:        objectid.New(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		CreatedAt: time.Now().UTC(),
	}
	r.s.users = append(r.s.users, user)
	return &user, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := slices.IndexFunc(r.s.users, func(u models.User) bool { return u.ID == id })
	if idx == -1 {
		return nil, &apperr.NotFoundError{Entity: "user", ID: id}
	}

	user := r.s.users[idx]
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		user.Password = *req.Password
	}
	r.s.users[idx] = user
	return &user, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := slices.IndexFunc(r.s.users, func(u models.User) bool { return u.ID == id })
	if idx == -1 {
		return false, nil
	}

	// dependents first: comments, then the user's posts, then the user
	owned := make(map[string]bool)
	for _, p := range r.s.posts {
		if p.UserID == id {
			owned[p.ID] = true
		}
	}
	r.s.comments = slices.DeleteFunc(r.s.comments, func(c models.Comment) bool {
		return c.UserID == id || owned[c.PostID]
	})
	r.s.posts = slices.DeleteFunc(r.s.posts, func(p models.Post) bool {
		return p.UserID == id
	})
	r.s.users = slices.Delete(r.s.users, idx, idx+1)
	return true, nil
}

// posts

type memoryPostRepository struct {
	s *memoryStore
}

func (r *memoryPostRepository) List(ctx context.Context) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := slices.Clone(r.s.posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (r *memoryPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memoryPostRepository) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.userExists(req.UserID) {
		return nil, &apperr.ForeignKeyError{Field: "userId"}
	}

	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}
	post := models.Post{
		ID:        objectid.New(),
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Likes:     likes,
		CreatedAt: time.Now().UTC(),
	}
	r.s.posts = append(r.s.posts, post)
	return &post, nil
}

func (r *memoryPostRepository) Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if req.UserID != nil && !r.s.userExists(*req.UserID) {
		return nil, &apperr.ForeignKeyError{Field: "userId"}
	}

	idx := slices.IndexFunc(r.s.posts, func(p models.Post) bool { return p.ID == id })
	if idx == -1 {
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	post := r.s.posts[idx]
	if req.UserID != nil {
		post.UserID = *req.UserID
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Likes != nil {
		post.Likes = *req.Likes
	}
	r.s.posts[idx] = post
	return &post, nil
}

func (r *memoryPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := slices.IndexFunc(r.s.posts, func(p models.Post) bool { return p.ID == id })
	if idx == -1 {
		return false, nil
	}

	r.s.comments = slices.DeleteFunc(r.s.comments, func(c models.Comment) bool {
		return c.PostID == id
	})
	r.s.posts = slices.Delete(r.s.posts, idx, idx+1)
	return true, nil
}

// comments

type memoryCommentRepository struct {
	s *memoryStore
}

func (r *memoryCommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	return r.listWhere(func(models.Comment) bool { return true })
}

func (r *memoryCommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return r.listWhere(func(c models.Comment) bool { return c.PostID == postID })
}

func (r *memoryCommentRepository) listWhere(keep func(models.Comment) bool) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := make([]models.Comment, 0, len(r.s.comments))
	for _, c := range r.s.comments {
		if keep(c) {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *memoryCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryCommentRepository) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.postExists(req.PostID) {
		return nil, &apperr.ForeignKeyError{Field: "postId"}
	}
	if !r.s.userExists(req.UserID) {
		return nil, &apperr.ForeignKeyError{Field: "userId"}
	}

	comment := models.Comment{
		ID:        objectid.New(),
		PostID:    req.PostID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	r.s.comments = append(r.s.comments, comment)
	return &comment, nil
}

func (r *memoryCommentRepository) Update(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if req.PostID != nil && !r.s.postExists(*req.PostID) {
		return nil, &apperr.ForeignKeyError{Field: "postId"}
	}
	if req.UserID != nil && !r.s.userExists(*req.UserID) {
		return nil, &apperr.ForeignKeyError{Field: "userId"}
	}

	idx := slices.IndexFunc(r.s.comments, func(c models.Comment) bool { return c.ID == id })
	if idx == -1 {
		return nil, &apperr.NotFoundError{Entity: "comment", ID: id}
	}

	comment := r.s.comments[idx]
	if req.PostID != nil {
		comment.PostID = *req.PostID
	}
	if req.UserID != nil {
		comment.UserID = *req.UserID
	}
	if req.Content != nil {
		comment.Content = *req.Content
	}
	r.s.comments[idx] = comment
	return &comment, nil
}

func (r *memoryCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := slices.IndexFunc(r.s.comments, func(c models.Comment) bool { return c.ID == id })
	if idx == -1 {
		return false, nil
	}
	r.s.comments = slices.Delete(r.s.comments, idx, idx+1)
	return true, nil
}
