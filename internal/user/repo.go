package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Leina1/Beta1/internal/domain"
)

// ErrDuplicateEmail is returned by Insert when the unique email index
// rejects the document.
var ErrDuplicateEmail = errors.New("email already in use")

type Repository struct {
	Col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{Col: col}
}

// FindByEmail returns the user with the exact email, or nil when none exists.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns one page of users matching the search term plus the total
// match count. The password hash is excluded by projection.
func (r *Repository) List(ctx context.Context, search string, page, limit int64) ([]domain.User, int64, error) {
	filter := searchFilter(search)

	count, err := r.Col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *Repository) Insert(ctx context.Context, u *domain.User) (string, error) {
	res, err := r.Col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateEmail
	}
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// Update applies the supplied fields to the user with the given id and
// reports whether a document matched.
func (r *Repository) Update(ctx context.Context, id string, fields UpdateFields) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": oid}, updateDoc(fields, time.Now()))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the user with the given id and reports whether one existed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// searchFilter matches users whose fullname or email contains the term,
// case-insensitively. An empty term matches everything.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: search, Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"fullname": re},
		bson.M{"email": re},
	}}
}

// updateDoc builds the $set document for a partial update. Only supplied
// fields are touched; updatedAt is always refreshed.
func updateDoc(f UpdateFields, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if f.FullName != nil {
		set["fullname"] = *f.FullName
	}
	if f.Email != nil {
		set["email"] = *f.Email
	}
	if f.Phone != nil {
		set["phone"] = *f.Phone
	}
	if f.Role != nil {
		set["role"] = *f.Role
	}
	return bson.M{"$set": set}
}
