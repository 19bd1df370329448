package selection

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionSampler is the query surface the selector needs from the
// question store. Sampling is uniform over the eligible pool at call
// time and happens inside the storage layer.
type QuestionSampler interface {
	SampleByTopic(ctx context.Context, topicID primitive.ObjectID, standard, n int, exclude []primitive.ObjectID) ([]models.Question, error)
	SampleByTopics(ctx context.Context, topicIDs []primitive.ObjectID, standard, n int, exclude []primitive.ObjectID) ([]models.Question, error)
}

type TopicLookup interface {
	ResolveNames(ctx context.Context, names []string) ([]models.Topic, error)
}

type DistributionSource interface {
	FindActive(ctx context.Context) (*models.Distribution, error)
}

type CompanyCatalog interface {
	FindByName(ctx context.Context, company string) (*models.CompanySpec, error)
}

// SectionPick is one quota-mode section: the questions filled for a
// (subject, standard) distribution entry.
type SectionPick struct {
	Name      string
	Questions []models.Question
	Marks     int
}

// QuotaResult is the outcome of quota-mode selection across the whole
// distribution table.
type QuotaResult struct {
	Sections   []SectionPick
	TotalMarks int
}

func (q *QuotaResult) TotalQuestions() int {
	total := 0
	for _, s := range q.Sections {
		total += len(s.Questions)
	}
	return total
}
