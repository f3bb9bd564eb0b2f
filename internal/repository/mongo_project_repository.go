package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"uptask/internal/model"
)

type mongoProjectRepository struct {
	coll *mongo.Collection
}

// NewMongoProjectRepository builds a MongoDB-backed project repository.
func NewMongoProjectRepository(database *mongo.Database) ProjectRepository {
	return &mongoProjectRepository{coll: database.Collection(ProjectsCollection)}
}

func (r *mongoProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = model.NewID()
	}
	if project.Colaboradores == nil {
		project.Colaboradores = []string{}
	}
	now := time.Now().UTC()
	project.CreatedAt, project.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, project)
	return translateMongoError(err)
}

// Update replaces the stored document without upserting.
func (r *mongoProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if project.Colaboradores == nil {
		project.Colaboradores = []string{}
	}
	project.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		return nil, translateMongoError(err)
	}
	return &project, nil
}

func (r *mongoProjectRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Project, error) {
	projects := []model.Project{}
	cur, err := r.coll.Find(ctx, bson.M{"creador": creatorID})
	if err != nil {
		return nil, translateMongoError(err)
	}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, translateMongoError(err)
	}
	return projects, nil
}
