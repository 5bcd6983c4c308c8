package models

import (
	"time"
)

// Entity ids and foreign keys travel as 24-character hex strings; the
// storage layer converts them to native ObjectIds. The full-record shapes
// carry validate tags because read mapping re-checks every document coming
// back from storage.

type User struct {
	ID        string    `json:"id" validate:"required,objectid"`
	Username  string    `json:"username" validate:"required,min=3,max=32"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8,max=200"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

type Post struct {
	ID        string    `json:"id" validate:"required,objectid"`
	UserID    string    `json:"userId" validate:"required,objectid"`
	Title     string    `json:"title" validate:"required,max=200"`
	Content   string    `json:"content" validate:"required"`
	Likes     int       `json:"likes" validate:"min=0"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

type Comment struct {
	ID        string    `json:"id" validate:"required,objectid"`
	PostID    string    `json:"postId" validate:"required,objectid"`
	UserID    string    `json:"userId" validate:"required,objectid"`
	Content   string    `json:"content" validate:"required,max=1000"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// Create DTOs are the full shapes minus the server-assigned id and
// createdAt. Likes is optional on create and defaults to 0.

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=200"`
}

type CreatePostRequest struct {
	UserID  string `json:"userId" validate:"required,objectid"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Likes   *int   `json:"likes" validate:"omitnil,min=0"`
}

type CreateCommentRequest struct {
	PostID  string `json:"postId" validate:"required,objectid"`
	UserID  string `json:"userId" validate:"required,objectid"`
	Content string `json:"content" validate:"required,max=1000"`
}

// Update DTOs are partial patches: a nil field leaves the current value
// untouched, a non-nil field replaces it and must satisfy the same
// constraints as on create.

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=32"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=8,max=200"`
}

type UpdatePostRequest struct {
	UserID  *string `json:"userId" validate:"omitnil,objectid"`
	Title   *string `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string `json:"content" validate:"omitnil,min=1"`
	Likes   *int    `json:"likes" validate:"omitnil,min=0"`
}

type UpdateCommentRequest struct {
	PostID  *string `json:"postId" validate:"omitnil,objectid"`
	UserID  *string `json:"userId" validate:"omitnil,objectid"`
	Content *string `json:"content" validate:"omitnil,min=1,max=1000"`
}
