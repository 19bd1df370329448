package service

import (
	"context"
	"testing"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// taggedQuestion builds a question tagged with one topic; correct option
// is always 0 so picks of 0 are correct and 1 incorrect.
func taggedQuestion(topicID primitive.ObjectID) models.Question {
	return models.Question{
		ID:            primitive.NewObjectID(),
		QuestionText:  "q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: 0,
		TopicIDs:      []primitive.ObjectID{topicID},
	}
}

// answered produces answers for questions of one topic: correct right
// ones and wrong wrong ones.
func answered(qs []models.Question, right, wrong int) []models.SelectedAnswer {
	var answers []models.SelectedAnswer
	for i := 0; i < right; i++ {
		answers = append(answers, models.SelectedAnswer{QuestionID: qs[i].ID, SelectedOption: 0})
	}
	for i := right; i < right+wrong; i++ {
		answers = append(answers, models.SelectedAnswer{QuestionID: qs[i].ID, SelectedOption: 1})
	}
	return answers
}

func questionsOf(topicID primitive.ObjectID, n int) []models.Question {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = taggedQuestion(topicID)
	}
	return qs
}

func storeResult(results *fakeResultStore, studentID string, testID primitive.ObjectID, answers []models.SelectedAnswer, score int, at time.Time) primitive.ObjectID {
	id, _ := results.Create(context.Background(), &models.TestResult{
		TestID:          testID,
		StudentID:       studentID,
		SelectedAnswers: answers,
		TimeTaken:       600,
		Score:           score,
		CreatedAt:       at,
	})
	return id
}

func TestGetTestResultBreaksDownAnswers(t *testing.T) {
	topic := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	qs := questionsOf(topic.ID, 3)
	tests := newFakeTestStore()
	testID := storedTest(tests, qs...)
	results := &fakeResultStore{}

	answers := answered(qs, 2, 1)
	resultID := storeResult(results, "student-1", testID, answers, 2, time.Now())

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(qs...), &fakeTopicStore{topics: []models.Topic{topic}})

	detail, err := svc.GetTestResult(context.Background(), models.Identity{UserID: "student-1"}, resultID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.TotalQuestions)
	assert.Equal(t, 2, detail.CorrectAnswers)
	require.Len(t, detail.QuestionAnalysis, 3)
	assert.True(t, detail.QuestionAnalysis[0].IsCorrect)
	assert.False(t, detail.QuestionAnalysis[2].IsCorrect)
	require.NotNil(t, detail.QuestionAnalysis[0].CorrectOption)
	assert.Equal(t, 0, *detail.QuestionAnalysis[0].CorrectOption)
}

func TestGetTestResultOwnership(t *testing.T) {
	topic := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	qs := questionsOf(topic.ID, 1)
	tests := newFakeTestStore()
	testID := storedTest(tests, qs...)
	results := &fakeResultStore{}
	resultID := storeResult(results, "owner", testID, answered(qs, 1, 0), 1, time.Now())

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(qs...), &fakeTopicStore{topics: []models.Topic{topic}})

	// Another student's lookup is indistinguishable from absence.
	_, err := svc.GetTestResult(context.Background(), models.Identity{UserID: "intruder"}, resultID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.GetTestResult(context.Background(), models.Identity{UserID: "owner"}, primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRecommendationsOrderByIncorrectCount(t *testing.T) {
	topicA := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	topicB := models.Topic{ID: primitive.NewObjectID(), TopicName: "graphs"}
	topicC := models.Topic{ID: primitive.NewObjectID(), TopicName: "trees"}
	topicD := models.Topic{ID: primitive.NewObjectID(), TopicName: "heaps"}

	qsA := questionsOf(topicA.ID, 6)
	qsB := questionsOf(topicB.ID, 3)
	qsC := questionsOf(topicC.ID, 9)
	qsD := questionsOf(topicD.ID, 1)

	// Incorrect counts: arrays 5, graphs 2, trees 8, heaps 0.
	answers := answered(qsA, 1, 5)
	answers = append(answers, answered(qsB, 1, 2)...)
	answers = append(answers, answered(qsC, 1, 8)...)
	answers = append(answers, answered(qsD, 1, 0)...)

	all := append(append(append(qsA, qsB...), qsC...), qsD...)
	tests := newFakeTestStore()
	testID := storedTest(tests, all...)
	results := &fakeResultStore{}
	resultID := storeResult(results, "s", testID, answers, 4, time.Now())

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(all...),
		&fakeTopicStore{topics: []models.Topic{topicA, topicB, topicC, topicD}})

	out, err := svc.GetResultWithRecommendations(context.Background(), models.Identity{UserID: "s"}, resultID)
	require.NoError(t, err)

	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "trees", out.Recommendations[0].TopicName)
	assert.Equal(t, "arrays", out.Recommendations[1].TopicName)
	assert.Equal(t, "graphs", out.Recommendations[2].TopicName)
	assert.Empty(t, out.Note)

	assert.Equal(t, "Practice Test", out.TestResult.TestName)
	assert.InDelta(t, float64(4)/float64(19)*100, out.TestResult.PercentageScore, 0.001)
}

func TestRecommendationsNoteWhenNoTopics(t *testing.T) {
	// The single answered question no longer exists, so no topic
	// performance can be derived.
	topic := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	qs := questionsOf(topic.ID, 1)
	tests := newFakeTestStore()
	testID := storedTest(tests, qs...)
	results := &fakeResultStore{}
	resultID := storeResult(results, "s", testID, answered(qs, 1, 0), 1, time.Now())

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(), &fakeTopicStore{})

	out, err := svc.GetResultWithRecommendations(context.Background(), models.Identity{UserID: "s"}, resultID)
	require.NoError(t, err)
	assert.Empty(t, out.Recommendations)
	assert.Equal(t, "No specific recommendations available", out.Note)
}

func TestGetUserAnalyticsEmptyHistory(t *testing.T) {
	svc := NewAnalyticsService(&fakeResultStore{}, newFakeTestStore(), newFakeQuestionStore(), &fakeTopicStore{})

	analytics, err := svc.GetUserAnalytics(context.Background(), models.Identity{UserID: "new-student"})
	require.NoError(t, err)
	assert.Equal(t, 0, analytics.TotalTests)
	assert.Equal(t, 0.0, analytics.AverageScore)
	assert.NotNil(t, analytics.TopicRecommendations)
	assert.Empty(t, analytics.TopicRecommendations)
	assert.NotNil(t, analytics.RecentTests)
	assert.Empty(t, analytics.RecentTests)
}

func TestGetUserAnalyticsAggregates(t *testing.T) {
	strong := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	weak := models.Topic{ID: primitive.NewObjectID(), TopicName: "graphs"}
	qsStrong := questionsOf(strong.ID, 4)
	qsWeak := questionsOf(weak.ID, 4)

	all := append(append([]models.Question{}, qsStrong...), qsWeak...)
	tests := newFakeTestStore()
	testID := storedTest(tests, all...)
	results := &fakeResultStore{}

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	// Attempt 1: strong 4/4, weak 1/3 wrong -> 5 correct of 8.
	answers1 := append(answered(qsStrong, 4, 0), answered(qsWeak, 1, 3)...)
	storeResult(results, "s", testID, answers1, 5, base)
	// Attempt 2: strong 3/1, weak 0/4 -> 3 correct of 8.
	answers2 := append(answered(qsStrong, 3, 1), answered(qsWeak, 0, 4)...)
	storeResult(results, "s", testID, answers2, 3, base.Add(time.Hour))

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(all...),
		&fakeTopicStore{topics: []models.Topic{strong, weak}})

	analytics, err := svc.GetUserAnalytics(context.Background(), models.Identity{UserID: "s"})
	require.NoError(t, err)

	assert.Equal(t, 2, analytics.TotalTests)
	// (5+3) correct over (8+8) questions.
	assert.InDelta(t, 50.0, analytics.AverageScore, 0.001)

	// Weakest topic first.
	require.NotEmpty(t, analytics.TopicRecommendations)
	assert.Equal(t, "graphs", analytics.TopicRecommendations[0].TopicName)

	require.Len(t, analytics.RecentTests, 2)
	// Newest first.
	assert.True(t, analytics.RecentTests[0].CreatedAt.After(analytics.RecentTests[1].CreatedAt))
}

func TestGetUserHistoryPagination(t *testing.T) {
	topic := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	qs := questionsOf(topic.ID, 1)
	tests := newFakeTestStore()
	testID := storedTest(tests, qs...)
	results := &fakeResultStore{}

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		storeResult(results, "s", testID, answered(qs, 1, 0), 1, base.Add(time.Duration(i)*time.Minute))
	}

	svc := NewAnalyticsService(results, tests, newFakeQuestionStore(qs...), &fakeTopicStore{topics: []models.Topic{topic}})
	ident := models.Identity{UserID: "s"}

	page1, err := svc.GetUserHistory(context.Background(), ident, 1, 3)
	require.NoError(t, err)
	assert.Len(t, page1.TestResults, 3)
	assert.Equal(t, int64(7), page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.Pages)

	page3, err := svc.GetUserHistory(context.Background(), ident, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page3.TestResults, 1)

	// Out of range page is empty, not an error.
	page9, err := svc.GetUserHistory(context.Background(), ident, 9, 3)
	require.NoError(t, err)
	assert.Empty(t, page9.TestResults)
	assert.Equal(t, 9, page9.Pagination.Page)

	// Page and limit are clamped to defaults.
	clamped, err := svc.GetUserHistory(context.Background(), ident, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Pagination.Page)
	assert.Equal(t, 10, clamped.Pagination.Limit)
	assert.Equal(t, 1, clamped.Pagination.Pages)
	assert.Len(t, clamped.TestResults, 7)

	// Entries join the test metadata.
	entry := page1.TestResults[0]
	assert.Equal(t, "Practice Test", entry.TestName)
	assert.Equal(t, 1800, entry.TotalDuration)
	assert.InDelta(t, 100.0, entry.PercentageScore, 0.001)
}
