package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"uptask/internal/model"
)

type mongoTaskRepository struct {
	coll *mongo.Collection
}

// NewMongoTaskRepository builds a MongoDB-backed task repository.
func NewMongoTaskRepository(database *mongo.Database) TaskRepository {
	return &mongoTaskRepository{coll: database.Collection(TasksCollection)}
}

func (r *mongoTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = model.NewID()
	}
	now := time.Now().UTC()
	task.CreatedAt, task.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, task)
	return translateMongoError(err)
}

func (r *mongoTaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, translateMongoError(err)
	}
	return &task, nil
}

func (r *mongoTaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks := []model.Task{}
	cur, err := r.coll.Find(ctx, bson.M{"proyecto": projectID})
	if err != nil {
		return nil, translateMongoError(err)
	}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, translateMongoError(err)
	}
	return tasks, nil
}

func (r *mongoTaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"proyecto": projectID})
	return translateMongoError(err)
}
