package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CompanySpec is the pre-stored catalog entry a company-specific test is
// assembled from. CompanyName is stored lower-cased and trimmed.
type CompanySpec struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName       string             `bson:"company_name" json:"company_name"`
	DisplayName       string             `bson:"display_name" json:"display_name"`
	Duration          int                `bson:"duration" json:"duration"`
	NumberOfQuestions int                `bson:"number_of_questions" json:"number_of_questions"`
	Topics            []string           `bson:"topics" json:"topics"`
}
