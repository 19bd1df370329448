package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	recommendationCount = 3
	recentTestCount     = 5
	defaultPageLimit    = 10
)

type AnswerAnalysis struct {
	QuestionID     string `json:"question_id"`
	Question       string `json:"question,omitempty"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  *int   `json:"correct_option,omitempty"`
	IsCorrect      bool   `json:"is_correct"`
}

type ResultDetail struct {
	ID               string           `json:"id"`
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	TimeTaken        int              `json:"time_taken"`
	Invalid          bool             `json:"invalid"`
	QuestionAnalysis []AnswerAnalysis `json:"question_analysis"`
}

type TopicPerformance struct {
	TopicID           string  `json:"topic_id"`
	TopicName         string  `json:"topic_name"`
	Total             int     `json:"total"`
	Correct           int     `json:"correct"`
	Incorrect         int     `json:"incorrect"`
	PercentageCorrect float64 `json:"percentage_correct"`
}

type ResultSummary struct {
	ID              string    `json:"id"`
	TestID          string    `json:"test_id"`
	TestName        string    `json:"test_name"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	PercentageScore float64   `json:"percentage_score"`
	TimeTaken       int       `json:"time_taken"`
	CreatedAt       time.Time `json:"created_at"`
}

type ResultWithRecommendations struct {
	TestResult       ResultSummary      `json:"test_result"`
	TopicPerformance []TopicPerformance `json:"topic_performance"`
	Recommendations  []TopicPerformance `json:"recommendations"`
	Note             string             `json:"note,omitempty"`
}

type HistoryEntry struct {
	ResultID        string    `json:"result_id"`
	TestID          string    `json:"test_id"`
	TestName        string    `json:"test_name"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	TotalDuration   int       `json:"total_duration"`
	TimeTaken       int       `json:"time_taken"`
	PercentageScore float64   `json:"percentage_score"`
	CreatedAt       time.Time `json:"created_at"`
}

type UserAnalytics struct {
	TotalTests           int                `json:"total_tests"`
	AverageScore         float64            `json:"average_score"`
	TopicRecommendations []TopicPerformance `json:"topic_recommendations"`
	RecentTests          []HistoryEntry     `json:"recent_tests"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type HistoryPage struct {
	TestResults []HistoryEntry `json:"test_results"`
	Pagination  Pagination     `json:"pagination"`
}

// AnalyticsService joins results with question and topic metadata to
// produce per-topic accuracy, recommendations and history.
type AnalyticsService struct {
	results   ResultStore
	tests     TestStore
	questions QuestionStore
	topics    TopicStore
}

func NewAnalyticsService(results ResultStore, tests TestStore, questions QuestionStore, topics TopicStore) *AnalyticsService {
	return &AnalyticsService{results: results, tests: tests, questions: questions, topics: topics}
}

// GetTestResult reconstructs per-answer correctness for one result.
func (s *AnalyticsService) GetTestResult(ctx context.Context, ident models.Identity, resultID primitive.ObjectID) (*ResultDetail, error) {
	result, err := s.ownedResult(ctx, ident, resultID)
	if err != nil {
		return nil, err
	}
	byID, err := s.questionMap(ctx, answerQuestionIDs(result.SelectedAnswers))
	if err != nil {
		return nil, err
	}

	detail := &ResultDetail{
		ID:             result.ID.Hex(),
		TotalQuestions: len(result.SelectedAnswers),
		TimeTaken:      result.TimeTaken,
		Invalid:        result.AutoSubmission.IsAutoSubmitted,
	}
	for _, a := range result.SelectedAnswers {
		analysis := AnswerAnalysis{
			QuestionID:     a.QuestionID.Hex(),
			SelectedOption: a.SelectedOption,
		}
		if q, ok := byID[a.QuestionID]; ok {
			correct := q.CorrectOption
			analysis.Question = q.QuestionText
			analysis.CorrectOption = &correct
			analysis.IsCorrect = a.SelectedOption == correct
		}
		if analysis.IsCorrect {
			detail.CorrectAnswers++
		}
		detail.QuestionAnalysis = append(detail.QuestionAnalysis, analysis)
	}
	return detail, nil
}

// GetResultWithRecommendations adds topic-level performance and the
// three topics with the most incorrect answers.
func (s *AnalyticsService) GetResultWithRecommendations(ctx context.Context, ident models.Identity, resultID primitive.ObjectID) (*ResultWithRecommendations, error) {
	result, err := s.ownedResult(ctx, ident, resultID)
	if err != nil {
		return nil, err
	}
	test, err := s.tests.FindByID(ctx, result.TestID)
	if err != nil {
		return nil, err
	}

	performance, err := s.topicBreakdown(ctx, result.SelectedAnswers)
	if err != nil {
		return nil, err
	}
	// Most incorrect answers first.
	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].Incorrect > performance[j].Incorrect
	})

	recommendations := performance
	if len(recommendations) > recommendationCount {
		recommendations = recommendations[:recommendationCount]
	}

	out := &ResultWithRecommendations{
		TestResult: ResultSummary{
			ID:              result.ID.Hex(),
			TestID:          result.TestID.Hex(),
			TestName:        test.TestName,
			Score:           result.Score,
			TotalQuestions:  test.TotalQuestions,
			PercentageScore: percentage(result.Score, test.TotalQuestions),
			TimeTaken:       result.TimeTaken,
			CreatedAt:       result.CreatedAt,
		},
		TopicPerformance: performance,
		Recommendations:  recommendations,
	}
	if len(recommendations) == 0 {
		out.Recommendations = []TopicPerformance{}
		out.Note = "No specific recommendations available"
	}
	return out, nil
}

// GetUserAnalytics aggregates a student's entire history. A student with
// no results gets a well-formed empty payload, never an error.
func (s *AnalyticsService) GetUserAnalytics(ctx context.Context, ident models.Identity) (*UserAnalytics, error) {
	results, err := s.results.FindByStudent(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	analytics := &UserAnalytics{
		TopicRecommendations: []TopicPerformance{},
		RecentTests:          []HistoryEntry{},
	}
	if len(results) == 0 {
		return analytics, nil
	}
	analytics.TotalTests = len(results)

	testByID, err := s.testMap(ctx, results)
	if err != nil {
		return nil, err
	}

	totalScore, totalQuestions := 0, 0
	var allAnswers []models.SelectedAnswer
	for _, r := range results {
		if t, ok := testByID[r.TestID]; ok {
			totalScore += r.Score
			totalQuestions += t.TotalQuestions
		}
		allAnswers = append(allAnswers, r.SelectedAnswers...)
	}
	analytics.AverageScore = percentage(totalScore, totalQuestions)

	performance, err := s.topicBreakdown(ctx, allAnswers)
	if err != nil {
		return nil, err
	}
	// Weakest topics first.
	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].PercentageCorrect < performance[j].PercentageCorrect
	})
	if len(performance) > recommendationCount {
		performance = performance[:recommendationCount]
	}
	analytics.TopicRecommendations = performance

	recent, err := s.results.FindRecentByStudent(ctx, ident.UserID, recentTestCount)
	if err != nil {
		return nil, err
	}
	analytics.RecentTests = s.historyEntries(recent, testByID)

	log.Printf("Computed analytics for student %s over %d results", ident.UserID, len(results))
	return analytics, nil
}

// GetUserHistory returns one page of the student's results, newest
// first. An out-of-range page yields an empty page, not an error.
func (s *AnalyticsService) GetUserHistory(ctx context.Context, ident models.Identity, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	total, err := s.results.CountByStudent(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.FindPageByStudent(ctx, ident.UserID, page, limit)
	if err != nil {
		return nil, err
	}
	testByID, err := s.testMap(ctx, results)
	if err != nil {
		return nil, err
	}

	return &HistoryPage{
		TestResults: s.historyEntries(results, testByID),
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *AnalyticsService) ownedResult(ctx context.Context, ident models.Identity, resultID primitive.ObjectID) (*models.TestResult, error) {
	result, err := s.results.FindByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	// Ownership failures are indistinguishable from absence.
	if result.StudentID != ident.UserID {
		return nil, apperr.NotFound("test result not found")
	}
	return result, nil
}

// topicBreakdown groups answer correctness by topic. Questions that no
// longer exist are skipped, never an error.
func (s *AnalyticsService) topicBreakdown(ctx context.Context, answers []models.SelectedAnswer) ([]TopicPerformance, error) {
	byID, err := s.questionMap(ctx, answerQuestionIDs(answers))
	if err != nil {
		return nil, err
	}

	topicIDSet := make(map[primitive.ObjectID]struct{})
	for _, q := range byID {
		for _, tid := range q.TopicIDs {
			topicIDSet[tid] = struct{}{}
		}
	}
	topicIDs := make([]primitive.ObjectID, 0, len(topicIDSet))
	for tid := range topicIDSet {
		topicIDs = append(topicIDs, tid)
	}
	topics, err := s.topics.FindByIDs(ctx, topicIDs)
	if err != nil {
		return nil, err
	}
	topicName := make(map[primitive.ObjectID]string, len(topics))
	for _, t := range topics {
		topicName[t.ID] = t.TopicName
	}

	acc := make(map[primitive.ObjectID]*TopicPerformance)
	var order []primitive.ObjectID
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		correct := a.SelectedOption == q.CorrectOption
		for _, tid := range q.TopicIDs {
			p, ok := acc[tid]
			if !ok {
				p = &TopicPerformance{TopicID: tid.Hex(), TopicName: topicName[tid]}
				acc[tid] = p
				order = append(order, tid)
			}
			p.Total++
			if correct {
				p.Correct++
			} else {
				p.Incorrect++
			}
		}
	}

	out := make([]TopicPerformance, 0, len(order))
	for _, tid := range order {
		p := acc[tid]
		p.PercentageCorrect = percentage(p.Correct, p.Total)
		out = append(out, *p)
	}
	return out, nil
}

func (s *AnalyticsService) questionMap(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Question, error) {
	questions, err := s.questions.FindManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}

func (s *AnalyticsService) testMap(ctx context.Context, results []models.TestResult) (map[primitive.ObjectID]models.Test, error) {
	idSet := make(map[primitive.ObjectID]struct{}, len(results))
	var ids []primitive.ObjectID
	for _, r := range results {
		if _, ok := idSet[r.TestID]; !ok {
			idSet[r.TestID] = struct{}{}
			ids = append(ids, r.TestID)
		}
	}
	tests, err := s.tests.FindManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Test, len(tests))
	for _, t := range tests {
		byID[t.ID] = t
	}
	return byID, nil
}

func (s *AnalyticsService) historyEntries(results []models.TestResult, testByID map[primitive.ObjectID]models.Test) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(results))
	for _, r := range results {
		entry := HistoryEntry{
			ResultID:  r.ID.Hex(),
			TestID:    r.TestID.Hex(),
			Score:     r.Score,
			TimeTaken: r.TimeTaken,
			CreatedAt: r.CreatedAt,
		}
		if t, ok := testByID[r.TestID]; ok {
			entry.TestName = t.TestName
			entry.TotalQuestions = t.TotalQuestions
			entry.TotalDuration = t.TotalDuration
			entry.PercentageScore = percentage(r.Score, t.TotalQuestions)
		}
		entries = append(entries, entry)
	}
	return entries
}

func answerQuestionIDs(answers []models.SelectedAnswer) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(answers))
	for i, a := range answers {
		ids[i] = a.QuestionID
	}
	return ids
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
