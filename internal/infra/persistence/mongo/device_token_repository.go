package mongo

import (
	"context"

	"riptide/internal/domain/constants"
	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"
	"riptide/internal/infra/persistence/mongo/model"

	"github.com/google/uuid"
)

// deviceTokenRepository implements repository.DeviceTokenRepository on the
// document store. One token per user, enforced by the unique user_id index.
type deviceTokenRepository struct {
	store *Store
}

// NewDeviceTokenRepository creates a Mongo-backed device-token repository.
func NewDeviceTokenRepository(store *Store) repository.DeviceTokenRepository {
	return &deviceTokenRepository{store: store}
}

func (r *deviceTokenRepository) Create(ctx context.Context, token *entity.DeviceToken) error {
	return r.store.InsertOne(ctx, constants.CollectionDeviceTokens, model.FromDeviceToken(token))
}

func (r *deviceTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DeviceToken, error) {
	var doc model.DeviceTokenDoc
	if err := r.store.FindOne(ctx, constants.CollectionDeviceTokens, "user_id", userID.String(), &doc); err != nil {
		return nil, err
	}

	return doc.ToEntity(), nil
}

func (r *deviceTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.store.DeleteOne(ctx, constants.CollectionDeviceTokens, "user_id", userID.String())
}
