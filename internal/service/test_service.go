package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
	"assessment-service/internal/selection"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Structured-exam presets. Durations are seconds.
const (
	cetDuration  = 7200
	gateDuration = 10800
	gateTotal    = 65

	customExpiry  = 72 * time.Hour
	companyExpiry = 48 * time.Hour
	presetExpiry  = 24 * time.Hour
)

// gateTopics is the fixed topic set GATE practice tests draw from.
var gateTopics = []string{"Data Structures", "Algorithms", "Operating Systems", "Database Management"}

type CustomTestParams struct {
	Duration          int
	NumberOfQuestions int
	Topics            []string
	EducationLevel    string
}

// QuestionWithKey is the creator-facing view of an assembled question.
// It carries the answer key and must never be returned to a test-taker.
type QuestionWithKey struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation,omitempty"`
}

type CreatedTest struct {
	Test       *models.Test      `json:"test"`
	Questions  []QuestionWithKey `json:"questions"`
	TotalMarks int               `json:"total_marks,omitempty"`
}

// Taker-facing views: answer keys stripped.

type QuestionView struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

type SectionView struct {
	SectionName     string         `json:"section_name"`
	SectionDuration int            `json:"section_duration"`
	Questions       []QuestionView `json:"questions"`
}

type TestView struct {
	ID             string         `json:"id"`
	TestName       string         `json:"test_name"`
	TotalDuration  int            `json:"total_duration"`
	TotalQuestions int            `json:"total_questions"`
	ExpiryTime     *time.Time     `json:"expiry_time,omitempty"`
	Sections       []SectionView  `json:"sections,omitempty"`
	Questions      []QuestionView `json:"questions,omitempty"`
}

// TestService assembles and persists immutable tests.
type TestService struct {
	selector  *selection.Selector
	tests     TestStore
	questions QuestionStore
	events    Publisher
	now       func() time.Time
}

func NewTestService(selector *selection.Selector, tests TestStore, questions QuestionStore, events Publisher) *TestService {
	return &TestService{
		selector:  selector,
		tests:     tests,
		questions: questions,
		events:    events,
		now:       time.Now,
	}
}

func (s *TestService) CreateCustomTest(ctx context.Context, ident models.Identity, p CustomTestParams) (*CreatedTest, error) {
	if p.Duration <= 0 {
		return nil, apperr.Validation("test duration must be positive")
	}
	if p.NumberOfQuestions <= 0 {
		return nil, apperr.Validation("number of questions must be positive")
	}
	if len(p.Topics) == 0 {
		return nil, apperr.Validation("topic list cannot be empty")
	}
	if p.EducationLevel != models.EducationLevelUndergraduate && p.EducationLevel != models.EducationLevelJuniorCollege {
		return nil, apperr.Validation("unknown education level: %s", p.EducationLevel)
	}

	questions, err := s.selector.Uniform(ctx, p.Topics, p.NumberOfQuestions)
	if err != nil {
		return nil, err
	}
	return s.persistFlat(ctx, ident, "Custom Practice Test", questions, p.Duration, customExpiry)
}

func (s *TestService) CreateCompanyTest(ctx context.Context, ident models.Identity, educationLevel, company string) (*CreatedTest, error) {
	if educationLevel != models.EducationLevelUndergraduate {
		return nil, apperr.Validation("company specific tests are only available for undergraduate level")
	}
	if company == "" {
		return nil, apperr.Validation("company name is required")
	}
	spec, questions, err := s.selector.Catalog(ctx, company)
	if err != nil {
		return nil, err
	}
	name := spec.DisplayName
	if name == "" {
		name = spec.CompanyName
	}
	return s.persistFlat(ctx, ident, name+" Assessment", questions, spec.Duration, companyExpiry)
}

// CreateGateTest assembles the fixed GATE preset by uniform sampling
// over its topic set.
func (s *TestService) CreateGateTest(ctx context.Context, ident models.Identity, educationLevel string) (*CreatedTest, error) {
	if educationLevel != models.EducationLevelUndergraduate {
		return nil, apperr.Validation("GATE tests are only available for undergraduate level")
	}
	questions, err := s.selector.Uniform(ctx, gateTopics, gateTotal)
	if err != nil {
		return nil, err
	}
	return s.persistFlat(ctx, ident, "GATE Practice Test", questions, gateDuration, presetExpiry)
}

// CreateCETTest fills the active distribution table and persists a
// sectioned test, one section per (subject, standard) entry. Section
// durations are apportioned from the exam duration by question count,
// with the last section absorbing the rounding remainder.
func (s *TestService) CreateCETTest(ctx context.Context, ident models.Identity, educationLevel string) (*CreatedTest, error) {
	if educationLevel != models.EducationLevelJuniorCollege {
		return nil, apperr.Validation("CET tests are only available for junior college level")
	}
	picked, err := s.selector.Quota(ctx)
	if err != nil {
		return nil, err
	}

	total := picked.TotalQuestions()
	if total == 0 {
		return nil, apperr.ConfigMissing("CET distribution configuration has no question quotas")
	}
	now := s.now()
	expiry := now.Add(presetExpiry)
	test := &models.Test{
		TestName:       fmt.Sprintf("CET Practice Test %s", now.Format("2006-01-02 15:04")),
		TotalDuration:  cetDuration,
		TotalQuestions: total,
		TotalMarks:     picked.TotalMarks,
		ExpiryTime:     &expiry,
		CreatedBy:      ident.UserID,
		CreatedAt:      now,
	}

	allocated := 0
	var keys []QuestionWithKey
	for i, sec := range picked.Sections {
		dur := cetDuration * len(sec.Questions) / total
		if i == len(picked.Sections)-1 {
			dur = cetDuration - allocated
		}
		allocated += dur
		test.Sections = append(test.Sections, models.TestSection{
			SectionName:     sec.Name,
			SectionDuration: dur,
			Questions:       questionIDs(sec.Questions),
			TotalQuestions:  len(sec.Questions),
		})
		keys = append(keys, withKeys(sec.Questions)...)
	}

	id, err := s.tests.Create(ctx, test)
	if err != nil {
		return nil, apperr.Persistence("test creation", err)
	}
	test.ID = id
	log.Printf("Created CET test %s (%d questions, %d marks)", id.Hex(), total, picked.TotalMarks)
	s.publish("test.created", map[string]any{"test_id": id.Hex(), "created_by": ident.UserID})

	return &CreatedTest{Test: test, Questions: keys, TotalMarks: picked.TotalMarks}, nil
}

// GetTest returns a taker-facing view of the test with answer keys
// stripped.
func (s *TestService) GetTest(ctx context.Context, id primitive.ObjectID) (*TestView, error) {
	test, err := s.tests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.FindManyByID(ctx, test.QuestionIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	view := &TestView{
		ID:             test.ID.Hex(),
		TestName:       test.TestName,
		TotalDuration:  test.TotalDuration,
		TotalQuestions: test.TotalQuestions,
		ExpiryTime:     test.ExpiryTime,
	}
	if len(test.Sections) > 0 {
		for _, sec := range test.Sections {
			view.Sections = append(view.Sections, SectionView{
				SectionName:     sec.SectionName,
				SectionDuration: sec.SectionDuration,
				Questions:       viewsFor(sec.Questions, byID),
			})
		}
	} else {
		view.Questions = viewsFor(test.Questions, byID)
	}
	return view, nil
}

func (s *TestService) persistFlat(ctx context.Context, ident models.Identity, baseName string, questions []models.Question, duration int, ttl time.Duration) (*CreatedTest, error) {
	now := s.now()
	expiry := now.Add(ttl)
	test := &models.Test{
		TestName:       fmt.Sprintf("%s %s", baseName, now.Format("2006-01-02 15:04")),
		Questions:      questionIDs(questions),
		TotalDuration:  duration,
		TotalQuestions: len(questions),
		ExpiryTime:     &expiry,
		CreatedBy:      ident.UserID,
		CreatedAt:      now,
	}
	id, err := s.tests.Create(ctx, test)
	if err != nil {
		return nil, apperr.Persistence("test creation", err)
	}
	test.ID = id
	log.Printf("Created test %s (%d questions)", id.Hex(), len(questions))
	s.publish("test.created", map[string]any{"test_id": id.Hex(), "created_by": ident.UserID})

	return &CreatedTest{Test: test, Questions: withKeys(questions)}, nil
}

func (s *TestService) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}

func questionIDs(questions []models.Question) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func withKeys(questions []models.Question) []QuestionWithKey {
	out := make([]QuestionWithKey, len(questions))
	for i, q := range questions {
		out[i] = QuestionWithKey{
			ID:            q.ID.Hex(),
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		}
	}
	return out
}

func viewsFor(ids []primitive.ObjectID, byID map[primitive.ObjectID]models.Question) []QuestionView {
	out := make([]QuestionView, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, QuestionView{ID: q.ID.Hex(), QuestionText: q.QuestionText, Options: q.Options})
	}
	return out
}
