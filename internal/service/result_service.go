package service

import (
	"context"
	"log"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Submission struct {
	Answers        []models.SelectedAnswer
	TimeTaken      int
	AutoSubmission models.AutoSubmission
}

// ResultService scores submissions against the stored answer keys and
// persists one result per attempt.
type ResultService struct {
	results   ResultStore
	tests     TestStore
	questions QuestionStore
	events    Publisher
	now       func() time.Time
}

func NewResultService(results ResultStore, tests TestStore, questions QuestionStore, events Publisher) *ResultService {
	return &ResultService{
		results:   results,
		tests:     tests,
		questions: questions,
		events:    events,
		now:       time.Now,
	}
}

// SubmitTest validates the submission against the test's authoritative
// question list, computes the score and persists a new result. Submitted
// answers must cover exactly the authoritative question set. Repeated
// submissions are allowed; each one records a separate attempt.
func (s *ResultService) SubmitTest(ctx context.Context, ident models.Identity, testID primitive.ObjectID, sub Submission) (*models.TestResult, error) {
	test, err := s.tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	authoritative := test.QuestionIDs()
	if len(sub.Answers) != len(authoritative) {
		return nil, apperr.AnswerMismatch("number of answers (%d) does not match number of questions (%d)", len(sub.Answers), len(authoritative))
	}

	expected := make(map[primitive.ObjectID]bool, len(authoritative))
	for _, id := range authoritative {
		expected[id] = false
	}
	for _, a := range sub.Answers {
		seen, ok := expected[a.QuestionID]
		if !ok {
			return nil, apperr.AnswerMismatch("answer references question %s which is not part of the test", a.QuestionID.Hex())
		}
		if seen {
			return nil, apperr.AnswerMismatch("duplicate answer for question %s", a.QuestionID.Hex())
		}
		expected[a.QuestionID] = true
	}

	questions, err := s.questions.FindManyByID(ctx, authoritative)
	if err != nil {
		return nil, err
	}
	key := make(map[primitive.ObjectID]int, len(questions))
	for _, q := range questions {
		key[q.ID] = q.CorrectOption
	}

	// Questions deleted since assembly simply score zero.
	score := 0
	for _, a := range sub.Answers {
		if correct, ok := key[a.QuestionID]; ok && a.SelectedOption == correct {
			score++
		}
	}

	result := &models.TestResult{
		TestID:          testID,
		StudentID:       ident.UserID,
		SelectedAnswers: sub.Answers,
		TimeTaken:       sub.TimeTaken,
		AutoSubmission:  sub.AutoSubmission,
		Score:           score,
		CreatedAt:       s.now(),
	}
	id, err := s.results.Create(ctx, result)
	if err != nil {
		return nil, apperr.Persistence("result creation", err)
	}
	result.ID = id
	log.Printf("Scored submission for test %s by %s: %d/%d", testID.Hex(), ident.UserID, score, len(authoritative))
	if s.events != nil {
		if perr := s.events.Publish("test.submitted", map[string]any{
			"result_id":  id.Hex(),
			"test_id":    testID.Hex(),
			"student_id": ident.UserID,
			"score":      score,
		}); perr != nil {
			log.Printf("Failed to publish test.submitted: %v", perr)
		}
	}
	return result, nil
}
