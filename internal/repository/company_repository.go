package repository

import (
	"context"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyRepository struct {
	Col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{Col: db.Collection("company_specs")}
}

func (r *CompanyRepository) FindByName(ctx context.Context, company string) (*models.CompanySpec, error) {
	var spec models.CompanySpec
	err := r.Col.FindOne(ctx, bson.M{"company_name": NormalizeTopicName(company)}).Decode(&spec)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("no test specification for company %s", company)
	}
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
