package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TestSection struct {
	SectionName     string               `bson:"section_name" json:"section_name"`
	SectionDuration int                  `bson:"section_duration" json:"section_duration"`
	Questions       []primitive.ObjectID `bson:"questions" json:"questions"`
	TotalQuestions  int                  `bson:"total_questions" json:"total_questions"`
}

// Test is append-only: created once and never mutated afterwards, apart
// from the optional expiry timestamp set at creation time. A test either
// carries a flat question list or a list of sections, never both.
type Test struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	TestName       string               `bson:"test_name" json:"test_name"`
	Sections       []TestSection        `bson:"sections,omitempty" json:"sections,omitempty"`
	Questions      []primitive.ObjectID `bson:"questions,omitempty" json:"questions,omitempty"`
	TotalDuration  int                  `bson:"total_duration" json:"total_duration"`
	TotalQuestions int                  `bson:"total_questions" json:"total_questions"`
	TotalMarks     int                  `bson:"total_marks,omitempty" json:"total_marks,omitempty"`
	ExpiryTime     *time.Time           `bson:"expiry_time,omitempty" json:"expiry_time,omitempty"`
	CreatedBy      string               `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
}

// QuestionIDs returns the authoritative question list, flattening
// sections in order for sectioned tests.
func (t *Test) QuestionIDs() []primitive.ObjectID {
	if len(t.Sections) == 0 {
		return t.Questions
	}
	ids := make([]primitive.ObjectID, 0, t.TotalQuestions)
	for _, s := range t.Sections {
		ids = append(ids, s.Questions...)
	}
	return ids
}
