package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SelectedAnswer struct {
	QuestionID     primitive.ObjectID `bson:"question_id" json:"question_id"`
	SelectedOption int                `bson:"selected_option" json:"selected_option"`
}

type AutoSubmission struct {
	IsAutoSubmitted bool `bson:"is_auto_submitted" json:"is_auto_submitted"`
	TabSwitches     int  `bson:"tab_switches" json:"tab_switches"`
}

// TestResult records one submission attempt. Results are created whole
// and never mutated; a student may accumulate several results for the
// same test, one per attempt.
type TestResult struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TestID          primitive.ObjectID `bson:"test_id" json:"test_id"`
	StudentID       string             `bson:"student_id" json:"student_id"`
	SelectedAnswers []SelectedAnswer   `bson:"selected_answers" json:"selected_answers"`
	TimeTaken       int                `bson:"time_taken" json:"time_taken"`
	AutoSubmission  AutoSubmission     `bson:"auto_submission" json:"auto_submission"`
	Score           int                `bson:"score" json:"score"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
