package repository

import (
	"context"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DistributionRepository struct {
	Col *mongo.Collection
}

func NewDistributionRepository(db *mongo.Database) *DistributionRepository {
	return &DistributionRepository{Col: db.Collection("cet_distributions")}
}

// FindActive returns the single active quota document. Its absence is an
// operator error, not a caller error.
func (r *DistributionRepository) FindActive(ctx context.Context) (*models.Distribution, error) {
	var d models.Distribution
	err := r.Col.FindOne(ctx, bson.M{}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ConfigMissing("CET distribution configuration not found")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
