package service

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage is consumed through narrow interfaces so the engine never sees
// query-language specifics; the mongo-backed repositories implement them.

type TestStore interface {
	Create(ctx context.Context, test *models.Test) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Test, error)
	FindManyByID(ctx context.Context, ids []primitive.ObjectID) ([]models.Test, error)
}

type ResultStore interface {
	Create(ctx context.Context, result *models.TestResult) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TestResult, error)
	FindByStudent(ctx context.Context, studentID string) ([]models.TestResult, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
	FindPageByStudent(ctx context.Context, studentID string, page, limit int) ([]models.TestResult, error)
	FindRecentByStudent(ctx context.Context, studentID string, n int) ([]models.TestResult, error)
}

type QuestionStore interface {
	FindManyByID(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error)
	InsertMany(ctx context.Context, questions []models.Question) ([]primitive.ObjectID, error)
}

type TopicStore interface {
	ResolveNames(ctx context.Context, names []string) ([]models.Topic, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Topic, error)
	FindAll(ctx context.Context) ([]models.Topic, error)
	FindBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]models.Topic, error)
	FindSubjectByName(ctx context.Context, name string) (*models.Subject, error)
	AllSubjects(ctx context.Context) ([]models.Subject, error)
	AllDomains(ctx context.Context) ([]models.Domain, error)
}

type DistributionStore interface {
	FindActive(ctx context.Context) (*models.Distribution, error)
}

// Publisher emits domain events; a nil publisher disables them.
type Publisher interface {
	Publish(eventType string, payload any) error
}
