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

type userRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	coll, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		u, err := mapUserDoc(d)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	coll, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, err
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		// a malformed id cannot match any document
		return nil, nil
	}

	var d userDoc
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return mapUserDoc(d)
}

func (r *userRepository) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	// re-fetch so storage-side defaults are reflected in the result
	var saved userDoc
	if err := coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("reading back created user: %w", err)
	}
	return mapUserDoc(saved)
}

func (r *userRepository) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	coll, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return nil, err
	}

	oid, err := database.ToObjectID(id)
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: id}
	}

	set := bson.M{}
	if req.Username != nil {
		set["username"] = *req.Username
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Password != nil {
		set["password"] = *req.Password
	}

	// an empty patch writes nothing and returns the current record
	if len(set) == 0 {
		u, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, &apperr.NotFoundError{Entity: "user", ID: id}
		}
		return u, nil
	}

	var updated userDoc
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperr.NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}
	return mapUserDoc(updated)
}

// Delete removes the user and cascades to dependents first: comments by
// the user or on the user's posts, then the posts, then the user record
// itself, so a crash partway through never leaves a dangling foreign key.
// Completed steps are not undone on a later failure; the error surfaces.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := database.ToObjectID(id)
	if err != nil {
		return false, nil
	}

	users, err := r.db.Collection(ctx, database.UsersCollection)
	if err != nil {
		return false, err
	}
	posts, err := r.db.Collection(ctx, database.PostsCollection)
	if err != nil {
		return false, err
	}
	comments, err := r.db.Collection(ctx, database.CommentsCollection)
	if err != nil {
		return false, err
	}

	cur, err := posts.Find(ctx, bson.M{"userId": id}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return false, fmt.Errorf("finding posts of user %s: %w", id, err)
	}
	var ownedPosts []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &ownedPosts); err != nil {
		return false, fmt.Errorf("decoding post ids of user %s: %w", id, err)
	}
	postIDs := make([]string, 0, len(ownedPosts))
	for _, p := range ownedPosts {
		postIDs = append(postIDs, p.ID.Hex())
	}

	_, err = comments.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"userId": id},
		{"postId": bson.M{"$in": postIDs}},
	}})
	if err != nil {
		return false, fmt.Errorf("cascading comments of user %s: %w", id, err)
	}

	if _, err := posts.DeleteMany(ctx, bson.M{"userId": id}); err != nil {
		return false, fmt.Errorf("cascading posts of user %s: %w", id, err)
	}

	res, err := users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting user %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}
