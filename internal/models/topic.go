package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Topic names are stored lower-cased and trimmed; lookup normalization
// lives in the topic repository, never at call sites.
type Topic struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TopicName string             `bson:"topic_name" json:"topic_name"`
	SubjectID primitive.ObjectID `bson:"subject_id" json:"subject_id"`
}

type Subject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectName string             `bson:"subject_name" json:"subject_name"`
	DomainID    primitive.ObjectID `bson:"domain_id" json:"domain_id"`
}

// Domain groups subjects by education level, e.g. "juniorCollege" or
// "undergraduate".
type Domain struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainName     string             `bson:"domain_name" json:"domain_name"`
	EducationLevel string             `bson:"education_level" json:"education_level"`
}

const (
	EducationLevelUndergraduate = "undergraduate"
	EducationLevelJuniorCollege = "juniorCollege"
)
