package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type TopicQuota struct {
	TopicName        string `bson:"topic_name" json:"topic_name"`
	QuestionCount    int    `bson:"question_count" json:"question_count"`
	MarksPerQuestion int    `bson:"marks_per_question" json:"marks_per_question"`
}

type SubjectDistribution struct {
	Subject  string       `bson:"subject" json:"subject"`
	Standard int          `bson:"standard" json:"standard"`
	Topics   []TopicQuota `bson:"topics" json:"topics"`
}

// Distribution is the quota table driving structured-exam assembly.
// Exactly one document is active at a time.
type Distribution struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Distributions []SubjectDistribution `bson:"distributions" json:"distributions"`
}
