package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"contentapi/internal/apperr"
	"contentapi/internal/database"
	"contentapi/internal/models"
	"contentapi/internal/validation"
)

type postRepository struct {
	db *database.Database
}

func NewPostRepository(db *database.Database) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	coll, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		p, err := mapPostDoc(d)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	coll, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return nil, err
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		return nil, nil
	}

	var d postDoc
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting post %s: %w", id, err)
	}
	return mapPostDoc(d)
}

func (r *postRepository) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return nil, err
	}
	users, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, err
	}

	ok, err := docExists(ctx, users, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperr.ForeignKeyError{Field: "userId"}
	}

	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}
	doc := postDoc{
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Likes:     likes,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	var saved postDoc
	if err := coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("reading back created post: %w", err)
	}
	return mapPostDoc(saved)
}

func (r *postRepository) Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return nil, err
	}

	// a changed owner must resolve just like on create
	if req.UserID != nil {
		users, err := r.db.Collection(ctx, database.UsersCollection)
		if err != nil {
			return nil, err
		}
		ok, err := docExists(ctx, users, *req.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &apperr.ForeignKeyError{Field: "userId"}
		}
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	set := bson.M{}
	if req.UserID != nil {
		set["userId"] = *req.UserID
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Likes != nil {
		set["likes"] = *req.Likes
	}

	if len(set) == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &apperr.NotFoundError{Entity: "post", ID: id}
		}
		return p, nil
	}

	var updated postDoc
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("updating post %s: %w", id, err)
	}
	return mapPostDoc(updated)
}

// Delete removes the post after its comments, so a crash in between never
// leaves a comment pointing at a deleted post.
func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := database.ToObjectID(id)
	if err != nil {
		return false, nil
	}

	coll, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return false, err
	}
	comments, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return false, err
	}

	if _, err := comments.DeleteMany(ctx, bson.M{"postId": id}); err != nil {
		return false, fmt.Errorf("cascading comments of post %s: %w", id, err)
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting post %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}
