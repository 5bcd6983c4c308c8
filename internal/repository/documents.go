package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"contentapi/internal/database"
	"contentapi/internal/models"
	"contentapi/internal/validation"
)

// Stored document shapes. Ids are native ObjectIds under _id; foreign keys
// are kept as the 24-hex string form so they survive a driver round-trip
// unchanged.

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
}

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Likes     int                `bson:"likes"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PostID    string             `bson:"postId"`
	UserID    string             `bson:"userId"`
	Content   string             `bson:"content"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
}

// The mappers re-validate every document through the same rules as input,
// so storage drift or corruption surfaces at read time instead of being
// silently trusted.

func mapUserDoc(d userDoc) (*models.User, error) {
	u := models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt.Time().UTC(),
	}
	if err := validation.Struct(u); err != nil {
		return nil, fmt.Errorf("user document %s is corrupt: %w", d.ID.Hex(), err)
	}
	return &u, nil
}

func mapPostDoc(d postDoc) (*models.Post, error) {
	p := models.Post{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		Likes:     d.Likes,
		CreatedAt: d.CreatedAt.Time().UTC(),
	}
	if err := validation.Struct(p); err != nil {
		return nil, fmt.Errorf("post document %s is corrupt: %w", d.ID.Hex(), err)
	}
	return &p, nil
}

func mapCommentDoc(d commentDoc) (*models.Comment, error) {
	c := models.Comment{
		ID:        d.ID.Hex(),
		PostID:    d.PostID,
		UserID:    d.UserID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.Time().UTC(),
	}
	if err := validation.Struct(c); err != nil {
		return nil, fmt.Errorf("comment document %s is corrupt: %w", d.ID.Hex(), err)
	}
	return &c, nil
}

// docExists reports whether a document with the given external id exists.
// A malformed id matches nothing. Used for foreign-key resolution; the
// check and the following insert are separate round-trips, so a concurrent
// delete of the referenced document in between is a known, accepted race.
func docExists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	oid, err := database.ToObjectID(id)
	if err != nil {
		return false, nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("resolving reference in %s: %w", coll.Name(), err)
	}
	return n > 0, nil
}
