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

// detectionRepository implements repository.DetectionRepository on the
// document store.
type detectionRepository struct {
	store *Store
}

// NewDetectionRepository creates a Mongo-backed detection-job repository.
func NewDetectionRepository(store *Store) repository.DetectionRepository {
	return &detectionRepository{store: store}
}

func (r *detectionRepository) Create(ctx context.Context, job *entity.DetectionJob) error {
	return r.store.InsertOne(ctx, constants.CollectionDetections, model.FromDetectionJob(job))
}

func (r *detectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DetectionJob, error) {
	var doc model.DetectionJobDoc
	if err := r.store.FindOne(ctx, constants.CollectionDetections, "_id", id.String(), &doc); err != nil {
		return nil, err
	}

	return doc.ToEntity(), nil
}

func (r *detectionRepository) UpdateState(ctx context.Context, id uuid.UUID, state entity.JobState, jobErr string) error {
	fields := bson.M{
		"state":      string(state),
		"updated_at": time.Now(),
	}
	if state == entity.JobFailed {
		fields["error"] = jobErr
	}

	return r.store.UpdateOne(ctx, constants.CollectionDetections, "_id", id.String(), fields)
}
