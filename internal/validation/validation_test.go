package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentapi/internal/apperr"
	"contentapi/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestCreateUserRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.CreateUserRequest
		wantField string
	}{
		{
			name: "valid",
			req:  models.CreateUserRequest{Username: "alice", Email: "a@x.com", Password: "password1"},
		},
		{
			name:      "username too short",
			req:       models.CreateUserRequest{Username: "al", Email: "a@x.com", Password: "password1"},
			wantField: "username",
		},
		{
			name:      "username too long",
			req:       models.CreateUserRequest{Username: strings.Repeat("a", 33), Email: "a@x.com", Password: "password1"},
			wantField: "username",
		},
		{
			name:      "bad email",
			req:       models.CreateUserRequest{Username: "alice", Email: "not-an-email", Password: "password1"},
			wantField: "email",
		},
		{
			name:      "password too short",
			req:       models.CreateUserRequest{Username: "alice", Email: "a@x.com", Password: "short"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, violatedFields(t, err), tt.wantField)
		})
	}
}

func TestCreatePostRequest(t *testing.T) {
	validUser := "507f1f77bcf86cd799439011"

	tests := []struct {
		name      string
		req       models.CreatePostRequest
		wantField string
	}{
		{
			name: "valid without likes",
			req:  models.CreatePostRequest{UserID: validUser, Title: "Hello", Content: "World"},
		},
		{
			name: "valid with likes",
			req:  models.CreatePostRequest{UserID: validUser, Title: "Hello", Content: "World", Likes: intPtr(3)},
		},
		{
			name:      "malformed userId",
			req:       models.CreatePostRequest{UserID: "nope", Title: "Hello", Content: "World"},
			wantField: "userId",
		},
		{
			name:      "empty title",
			req:       models.CreatePostRequest{UserID: validUser, Title: "", Content: "World"},
			wantField: "title",
		},
		{
			name:      "title too long",
			req:       models.CreatePostRequest{UserID: validUser, Title: strings.Repeat("t", 201), Content: "World"},
			wantField: "title",
		},
		{
			name:      "empty content",
			req:       models.CreatePostRequest{UserID: validUser, Title: "Hello", Content: ""},
			wantField: "content",
		},
		{
			name:      "negative likes",
			req:       models.CreatePostRequest{UserID: validUser, Title: "Hello", Content: "World", Likes: intPtr(-1)},
			wantField: "likes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, violatedFields(t, err), tt.wantField)
		})
	}
}

func TestCreateCommentRequest(t *testing.T) {
	validID := "507f1f77bcf86cd799439011"

	tests := []struct {
		name      string
		req       models.CreateCommentRequest
		wantField string
	}{
		{
			name: "valid",
			req:  models.CreateCommentRequest{PostID: validID, UserID: validID, Content: "Nice!"},
		},
		{
			name:      "malformed postId",
			req:       models.CreateCommentRequest{PostID: "x", UserID: validID, Content: "Nice!"},
			wantField: "postId",
		},
		{
			name:      "content too long",
			req:       models.CreateCommentRequest{PostID: validID, UserID: validID, Content: strings.Repeat("c", 1001)},
			wantField: "content",
		},
		{
			name:      "empty content",
			req:       models.CreateCommentRequest{PostID: validID, UserID: validID, Content: ""},
			wantField: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, violatedFields(t, err), tt.wantField)
		})
	}
}

// nil patch fields are skipped entirely, present fields must satisfy the
// same constraints as on create
func TestUpdateRequestPatchSemantics(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, Struct(models.UpdateUserRequest{}))
		assert.NoError(t, Struct(models.UpdatePostRequest{}))
		assert.NoError(t, Struct(models.UpdateCommentRequest{}))
	})

	t.Run("present field is checked", func(t *testing.T) {
		err := Struct(models.UpdateUserRequest{Email: strPtr("nope")})
		assert.Contains(t, violatedFields(t, err), "email")

		err = Struct(models.UpdatePostRequest{Likes: intPtr(-5)})
		assert.Contains(t, violatedFields(t, err), "likes")

		err = Struct(models.UpdateCommentRequest{Content: strPtr("")})
		assert.Contains(t, violatedFields(t, err), "content")
	})

	t.Run("present valid fields pass", func(t *testing.T) {
		assert.NoError(t, Struct(models.UpdateUserRequest{Username: strPtr("bob"), Email: strPtr("b@x.com")}))
		assert.NoError(t, Struct(models.UpdatePostRequest{Likes: intPtr(0)}))
	})
}

func TestFullRecordValidation(t *testing.T) {
	valid := models.User{
		ID:        "507f1f77bcf86cd799439011",
		Username:  "alice",
		Email:     "a@x.com",
		Password:  "password1",
		CreatedAt: time.Now(),
	}
	assert.NoError(t, Struct(valid))

	corrupt := valid
	corrupt.ID = "not-an-id"
	err := Struct(corrupt)
	assert.Contains(t, violatedFields(t, err), "id")

	missingDate := valid
	missingDate.CreatedAt = time.Time{}
	err = Struct(missingDate)
	assert.Contains(t, violatedFields(t, err), "createdAt")
}
