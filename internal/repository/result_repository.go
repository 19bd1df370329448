package repository

import (
	"context"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("test_results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.TestResult) (primitive.ObjectID, error) {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperr.Persistence("result creation", nil)
	}
	return id, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TestResult, error) {
	var res models.TestResult
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("test result not found")
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) FindByStudent(ctx context.Context, studentID string) ([]models.TestResult, error) {
	cur, err := r.Col.Find(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.TestResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultRepository) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"student_id": studentID})
}

// FindPageByStudent returns one page of a student's results, newest
// first. Pages are 1-based.
func (r *ResultRepository) FindPageByStudent(ctx context.Context, studentID string, page, limit int) ([]models.TestResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := r.Col.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.TestResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultRepository) FindRecentByStudent(ctx context.Context, studentID string, n int) ([]models.TestResult, error) {
	return r.FindPageByStudent(ctx, studentID, 1, n)
}
