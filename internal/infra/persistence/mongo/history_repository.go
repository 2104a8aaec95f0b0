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

// historyRepository implements repository.HistoryRepository on the
// document store.
type historyRepository struct {
	store *Store
}

// NewHistoryRepository creates a Mongo-backed history repository.
func NewHistoryRepository(store *Store) repository.HistoryRepository {
	return &historyRepository{store: store}
}

func (r *historyRepository) Create(ctx context.Context, history *entity.History) error {
	return r.store.InsertOne(ctx, constants.CollectionHistories, model.FromHistory(history))
}

func (r *historyRepository) FindByUser(ctx context.Context, userID uuid.UUID, page repository.Page) ([]*entity.History, error) {
	var docs []*model.HistoryDoc

	filter := bson.M{"user_id": userID.String()}
	if err := r.store.FindMany(ctx, constants.CollectionHistories, page, "created_at", filter, &docs); err != nil {
		return nil, err
	}

	histories := make([]*entity.History, 0, len(docs))
	for _, doc := range docs {
		histories = append(histories, doc.ToEntity())
	}

	return histories, nil
}
