package mongo

import (
	"context"

	"riptide/internal/domain/constants"
	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"
	"riptide/internal/infra/persistence/mongo/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// notificationRepository implements repository.NotificationRepository on the
// document store.
type notificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a Mongo-backed notification repository.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.store.InsertOne(ctx, constants.CollectionNotifications, model.FromNotification(notification))
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, page repository.Page) ([]*entity.Notification, error) {
	var docs []*model.NotificationDoc

	filter := bson.M{"user_id": userID.String()}
	if err := r.store.FindMany(ctx, constants.CollectionNotifications, page, "created_at", filter, &docs); err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(docs))
	for _, doc := range docs {
		notifications = append(notifications, doc.ToEntity())
	}

	return notifications, nil
}
