package repository

import (
	"context"

	"contentapi/internal/database"
	"contentapi/internal/models"
)

// Each repository owns the mutation path for its collection. List ordering
// is part of the contract: users and posts newest-first, comments oldest-
// first. GetByID and Delete treat a missing id as a normal negative result;
// Update reports it as a NotFoundError.

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CommentRepository interface {
	List(ctx context.Context) ([]models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}

// NewRepository returns the mongo-backed repositories sharing one database
// handle.
func NewRepository(db *database.Database) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}
