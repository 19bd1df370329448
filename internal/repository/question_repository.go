package repository

import (
	"context"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func sampleMatch(standard int, exclude []primitive.ObjectID) bson.M {
	match := bson.M{}
	if standard > 0 {
		match["difficulty_level"] = standard
	}
	if len(exclude) > 0 {
		match["_id"] = bson.M{"$nin": exclude}
	}
	return match
}

// SampleByTopic draws up to n questions uniformly at random from one
// topic's pool. Sampling happens query-side ($sample); the pool is never
// loaded into process memory. Fewer than n questions returned means the
// pool is exhausted, which callers turn into a shortfall error.
func (r *QuestionRepository) SampleByTopic(ctx context.Context, topicID primitive.ObjectID, standard, n int, exclude []primitive.ObjectID) ([]models.Question, error) {
	if n <= 0 {
		return nil, nil
	}
	match := sampleMatch(standard, exclude)
	match["topic_ids"] = topicID
	return r.sample(ctx, match, n)
}

// SampleByTopics draws from the union pool of the given topics.
func (r *QuestionRepository) SampleByTopics(ctx context.Context, topicIDs []primitive.ObjectID, standard, n int, exclude []primitive.ObjectID) ([]models.Question, error) {
	if n <= 0 {
		return nil, nil
	}
	match := sampleMatch(standard, exclude)
	match["topic_ids"] = bson.M{"$in": topicIDs}
	return r.sample(ctx, match, n)
}

func (r *QuestionRepository) sample(ctx context.Context, match bson.M, n int) ([]models.Question, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("question not found")
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindManyByID returns the questions that exist among ids; missing ids
// are silently absent from the result.
func (r *QuestionRepository) FindManyByID(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) InsertMany(ctx context.Context, questions []models.Question) ([]primitive.ObjectID, error) {
	docs := make([]interface{}, len(questions))
	for i := range questions {
		docs[i] = questions[i]
	}
	res, err := r.Col.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		if id, ok := raw.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *QuestionRepository) CountByTopic(ctx context.Context, topicID primitive.ObjectID, standard int) (int64, error) {
	filter := bson.M{"topic_ids": topicID}
	if standard > 0 {
		filter["difficulty_level"] = standard
	}
	return r.Col.CountDocuments(ctx, filter)
}
