package repository

import (
	"context"
	"strings"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TopicRepository struct {
	Topics   *mongo.Collection
	Subjects *mongo.Collection
	Domains  *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{
		Topics:   db.Collection("topics"),
		Subjects: db.Collection("subjects"),
		Domains:  db.Collection("domains"),
	}
}

// NormalizeTopicName is the single place topic (and subject, company)
// names are case-folded for lookup. Callers pass names as received.
func NormalizeTopicName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *TopicRepository) FindByName(ctx context.Context, name string) (*models.Topic, error) {
	var t models.Topic
	err := r.Topics.FindOne(ctx, bson.M{"topic_name": NormalizeTopicName(name)}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("topic not found: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ResolveNames maps topic names to topic documents, failing on the first
// unknown name.
func (r *TopicRepository) ResolveNames(ctx context.Context, names []string) ([]models.Topic, error) {
	topics := make([]models.Topic, 0, len(names))
	for _, name := range names {
		t, err := r.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *t)
	}
	return topics, nil
}

func (r *TopicRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Topic, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.Topics.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepository) FindAll(ctx context.Context) ([]models.Topic, error) {
	cur, err := r.Topics.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepository) FindBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]models.Topic, error) {
	cur, err := r.Topics.Find(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepository) FindSubjectByName(ctx context.Context, name string) (*models.Subject, error) {
	var s models.Subject
	err := r.Subjects.FindOne(ctx, bson.M{"subject_name": NormalizeTopicName(name)}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("subject not found: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *TopicRepository) AllSubjects(ctx context.Context) ([]models.Subject, error) {
	cur, err := r.Subjects.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subjects []models.Subject
	if err := cur.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *TopicRepository) AllDomains(ctx context.Context) ([]models.Domain, error) {
	cur, err := r.Domains.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var domains []models.Domain
	if err := cur.All(ctx, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}
