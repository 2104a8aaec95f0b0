package mongo

import (
	"context"
	"fmt"

	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is a thin generic adapter over named collections. It performs no
// transactions; multi-step sequences are not atomic, which is why uniqueness
// is enforced by indexes rather than by check-then-insert.
type Store struct {
	db *mongo.Database
}

// NewStore wraps a database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Exists reports whether any document matches field == value.
func (s *Store) Exists(ctx context.Context, collection, field string, value any) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{field: value}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to check existence in %s", collection))
	}

	return true, nil
}

// InsertOne inserts a document. Unique-index violations surface as
// repository.ErrDuplicate so callers can map them to a conflict outcome.
func (s *Store) InsertOne(ctx context.Context, collection string, doc any) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}

		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to insert into %s", collection))
	}

	return nil
}

// FindOne decodes the first document matching field == value into out.
// Returns repository.ErrNotFound when nothing matches.
func (s *Store) FindOne(ctx context.Context, collection, field string, value, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{field: value}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to find one in %s", collection))
	}

	return nil
}

// FindOneOrNil is the non-raising variant of FindOne: absence is reported by
// the boolean, not an error. Callers pick deliberately between the two.
func (s *Store) FindOneOrNil(ctx context.Context, collection, field string, value, out any) (bool, error) {
	err := s.FindOne(ctx, collection, field, value, out)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// UpdateOne applies a partial $set to the first document matching
// field == value. Returns repository.ErrNotFound when no document matched.
func (s *Store) UpdateOne(ctx context.Context, collection, field string, value any, fields bson.M) error {
	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{field: value}, bson.M{"$set": fields})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to update in %s", collection))
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteOne removes the first document matching field == value.
// Returns repository.ErrNotFound when nothing was deleted.
func (s *Store) DeleteOne(ctx context.Context, collection, field string, value any) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{field: value})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to delete from %s", collection))
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// FindMany decodes a page of documents matching filter into out (a pointer to
// a slice), sorted by sortField descending.
func (s *Store) FindMany(ctx context.Context, collection string, page repository.Page, sortField string, filter bson.M, out any) error {
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: sortField, Value: -1}})

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to find in %s", collection))
	}

	if err := cursor.All(ctx, out); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to decode results from %s", collection))
	}

	return nil
}
