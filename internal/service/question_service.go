package service

import (
	"context"
	"log"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

// QuestionImport is one already-parsed row from an admin bulk upload.
// Spreadsheet parsing happens upstream; this service owns validation,
// topic resolution and storage.
type QuestionImport struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correct_option"`
	Topics        []string `json:"topics" binding:"required"`
	Standard      int      `json:"standard"`
	Explanation   string   `json:"explanation"`
}

type QuestionService struct {
	questions QuestionStore
	topics    TopicStore
	events    Publisher
	now       func() time.Time
}

func NewQuestionService(questions QuestionStore, topics TopicStore, events Publisher) *QuestionService {
	return &QuestionService{questions: questions, topics: topics, events: events, now: time.Now}
}

const optionCount = 4

// BulkImport validates and stores a batch of questions. The batch is
// all-or-nothing up to validation: any bad row or unknown topic rejects
// the whole request before anything is written.
func (s *QuestionService) BulkImport(ctx context.Context, ident models.Identity, rows []QuestionImport) (int, error) {
	if len(rows) == 0 {
		return 0, apperr.Validation("no questions to import")
	}

	now := s.now()
	questions := make([]models.Question, 0, len(rows))
	for i, row := range rows {
		if row.QuestionText == "" {
			return 0, apperr.Validation("row %d: question text is required", i+1)
		}
		if len(row.Options) != optionCount {
			return 0, apperr.Validation("row %d: expected %d options, got %d", i+1, optionCount, len(row.Options))
		}
		if row.CorrectOption < 0 || row.CorrectOption >= len(row.Options) {
			return 0, apperr.Validation("row %d: correct option %d out of range", i+1, row.CorrectOption)
		}
		if len(row.Topics) == 0 {
			return 0, apperr.Validation("row %d: at least one topic is required", i+1)
		}
		topics, err := s.topics.ResolveNames(ctx, row.Topics)
		if err != nil {
			return 0, err
		}
		q := models.Question{
			QuestionText:    row.QuestionText,
			Options:         row.Options,
			CorrectOption:   row.CorrectOption,
			DifficultyLevel: row.Standard,
			Explanation:     row.Explanation,
			CreatedAt:       now,
		}
		for _, t := range topics {
			q.TopicIDs = append(q.TopicIDs, t.ID)
		}
		questions = append(questions, q)
	}

	ids, err := s.questions.InsertMany(ctx, questions)
	if err != nil {
		return 0, apperr.Persistence("question import", err)
	}
	log.Printf("Imported %d questions (admin %s)", len(ids), ident.UserID)
	if s.events != nil {
		if perr := s.events.Publish("questions.imported", map[string]any{
			"count":    len(ids),
			"admin_id": ident.UserID,
		}); perr != nil {
			log.Printf("Failed to publish questions.imported: %v", perr)
		}
	}
	return len(ids), nil
}
