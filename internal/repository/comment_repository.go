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

type commentRepository struct {
	db *database.Database
}

func NewCommentRepository(db *database.Database) CommentRepository {
	return &commentRepository{db: db}
}

// comments list oldest-first: chronological thread order
func (r *commentRepository) List(ctx context.Context) ([]models.Comment, error) {
	return r.list(ctx, bson.M{})
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return r.list(ctx, bson.M{"postId": postID})
}

func (r *commentRepository) list(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	coll, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}

	comments := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		c, err := mapCommentDoc(d)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	coll, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return nil, err
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		return nil, nil
	}

	var d commentDoc
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting comment %s: %w", id, err)
	}
	return mapCommentDoc(d)
}

func (r *commentRepository) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return nil, err
	}

	if err := r.resolveRefs(ctx, &req.PostID, &req.UserID); err != nil {
		return nil, err
	}

	doc := commentDoc{
		PostID:    req.PostID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	var saved commentDoc
	if err := coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("reading back created comment: %w", err)
	}
	return mapCommentDoc(saved)
}

func (r *commentRepository) Update(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return nil, err
	}

	if err := r.resolveRefs(ctx, req.PostID, req.UserID); err != nil {
		return nil, err
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "comment", ID: id}
	}

	set := bson.M{}
	if req.PostID != nil {
		set["postId"] = *req.PostID
	}
	if req.UserID != nil {
		set["userId"] = *req.UserID
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}

	if len(set) == 0 {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, &apperr.NotFoundError{Entity: "comment", ID: id}
		}
		return c, nil
	}

	var updated commentDoc
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperr.NotFoundError{Entity: "comment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("updating comment %s: %w", id, err)
	}
	return mapCommentDoc(updated)
}

func (r *commentRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := database.ToObjectID(id)
	if err != nil {
		return false, nil
	}

	coll, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return false, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting comment %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}

// resolveRefs checks the present foreign keys, post before user, and
// reports the first one that does not resolve. Nil means "not in patch".
func (r *commentRepository) resolveRefs(ctx context.Context, postID, userID *string) error {
	if postID != nil {
		posts, err := r.db.Collection(ctx, database.PostsCollection)
		if err != nil {
			return err
		}
		ok, err := docExists(ctx, posts, *postID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperr.ForeignKeyError{Field: "postId"}
		}
	}
	if userID != nil {
		users, err := r.db.Collection(ctx, database.UsersCollection)
		if err != nil {
			return err
		}
		ok, err := docExists(ctx, users, *userID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperr.ForeignKeyError{Field: "userId"}
		}
	}
	return nil
}
