package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is immutable once created except for administrative correction.
// DifficultyLevel carries the school standard (grade) the question belongs to.
type Question struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	QuestionText    string               `bson:"question_text" json:"question_text"`
	Options         []string             `bson:"options" json:"options"`
	CorrectOption   int                  `bson:"correct_option" json:"correct_option"`
	TopicIDs        []primitive.ObjectID `bson:"topic_ids" json:"topic_ids"`
	DifficultyLevel int                  `bson:"difficulty_level" json:"difficulty_level"`
	Explanation     string               `bson:"explanation,omitempty" json:"explanation,omitempty"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
}
