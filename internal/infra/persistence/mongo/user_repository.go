package mongo

import (
	"context"
	"time"

	"riptide/internal/domain/constants"
	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"
	"riptide/internal/infra/persistence/mongo/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// userRepository implements repository.UserRepository on the document store.
type userRepository struct {
	store *Store
}

// NewUserRepository creates a Mongo-backed user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// Create inserts the user. Username uniqueness is enforced by the index;
// violations surface as repository.ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.store.InsertOne(ctx, constants.CollectionUsers, model.FromUser(user))
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var doc model.UserDoc
	if err := r.store.FindOne(ctx, constants.CollectionUsers, "_id", id.String(), &doc); err != nil {
		return nil, err
	}

	return doc.ToEntity(), nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var doc model.UserDoc
	if err := r.store.FindOne(ctx, constants.CollectionUsers, "username", username, &doc); err != nil {
		return nil, err
	}

	return doc.ToEntity(), nil
}

// FindByUsernameOrNil reports absence with a nil user instead of an error.
func (r *userRepository) FindByUsernameOrNil(ctx context.Context, username string) (*entity.User, error) {
	var doc model.UserDoc
	found, err := r.store.FindOneOrNil(ctx, constants.CollectionUsers, "username", username, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return doc.ToEntity(), nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.store.Exists(ctx, constants.CollectionUsers, "_id", id.String())
}

func (r *userRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	fields := bson.M{
		"password":   passwordHash,
		"updated_at": time.Now(),
	}

	return r.store.UpdateOne(ctx, constants.CollectionUsers, "username", username, fields)
}
