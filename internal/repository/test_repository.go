package repository

import (
	"context"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) (primitive.ObjectID, error) {
	res, err := r.Col.InsertOne(ctx, test)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperr.Persistence("test creation", nil)
	}
	return id, nil
}

func (r *TestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Test, error) {
	var t models.Test
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("test not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestRepository) FindManyByID(ctx context.Context, ids []primitive.ObjectID) ([]models.Test, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var tests []models.Test
	if err := cur.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}
