package selection

import (
	"context"
	"fmt"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Selector assembles question sets for tests. It is pure selection:
// it issues reads against the stores and never writes.
type Selector struct {
	questions QuestionSampler
	topics    TopicLookup
	dist      DistributionSource
	companies CompanyCatalog
}

func NewSelector(questions QuestionSampler, topics TopicLookup, dist DistributionSource, companies CompanyCatalog) *Selector {
	return &Selector{
		questions: questions,
		topics:    topics,
		dist:      dist,
		companies: companies,
	}
}

// Uniform draws total questions across the named topics: floor(total/K)
// from each topic, then the remainder from the union of all topics.
// Selection is duplicate-free by question ID even when questions are
// tagged with several of the named topics.
func (s *Selector) Uniform(ctx context.Context, topicNames []string, total int) ([]models.Question, error) {
	if total <= 0 {
		return nil, apperr.Validation("number of questions must be positive")
	}
	if len(topicNames) == 0 {
		return nil, apperr.Validation("topic list cannot be empty")
	}

	topics, err := s.topics.ResolveNames(ctx, topicNames)
	if err != nil {
		return nil, err
	}

	perTopic := total / len(topics)
	remainder := total % len(topics)

	selected := make([]models.Question, 0, total)
	picked := make([]primitive.ObjectID, 0, total)
	for _, topic := range topics {
		qs, err := s.questions.SampleByTopic(ctx, topic.ID, 0, perTopic, picked)
		if err != nil {
			return nil, err
		}
		if len(qs) < perTopic {
			return nil, apperr.Insufficient(topic.TopicName, perTopic, len(qs))
		}
		selected = append(selected, qs...)
		for _, q := range qs {
			picked = append(picked, q.ID)
		}
	}

	if remainder > 0 {
		topicIDs := make([]primitive.ObjectID, len(topics))
		for i, t := range topics {
			topicIDs[i] = t.ID
		}
		qs, err := s.questions.SampleByTopics(ctx, topicIDs, 0, remainder, picked)
		if err != nil {
			return nil, err
		}
		if len(qs) < remainder {
			return nil, apperr.InsufficientPool(remainder, len(qs))
		}
		selected = append(selected, qs...)
	}

	return selected, nil
}

// Quota fills the active distribution table: for every (subject,
// standard, topic) entry, exactly QuestionCount questions restricted to
// that entry's standard. One section per (subject, standard) entry.
func (s *Selector) Quota(ctx context.Context) (*QuotaResult, error) {
	dist, err := s.dist.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &QuotaResult{}
	var picked []primitive.ObjectID
	for _, sd := range dist.Distributions {
		section := SectionPick{Name: fmt.Sprintf("%s (Std %d)", sd.Subject, sd.Standard)}
		for _, quota := range sd.Topics {
			topics, err := s.topics.ResolveNames(ctx, []string{quota.TopicName})
			if err != nil {
				return nil, err
			}
			topic := topics[0]

			qs, err := s.questions.SampleByTopic(ctx, topic.ID, sd.Standard, quota.QuestionCount, picked)
			if err != nil {
				return nil, err
			}
			if len(qs) < quota.QuestionCount {
				return nil, apperr.Insufficient(quota.TopicName, quota.QuestionCount, len(qs))
			}
			section.Questions = append(section.Questions, qs...)
			section.Marks += quota.QuestionCount * quota.MarksPerQuestion
			result.TotalMarks += quota.QuestionCount * quota.MarksPerQuestion
			for _, q := range qs {
				picked = append(picked, q.ID)
			}
		}
		result.Sections = append(result.Sections, section)
	}
	return result, nil
}

// Catalog looks up a company's stored test specification and delegates
// to Uniform with its parameters.
func (s *Selector) Catalog(ctx context.Context, company string) (*models.CompanySpec, []models.Question, error) {
	spec, err := s.companies.FindByName(ctx, company)
	if err != nil {
		return nil, nil, err
	}
	qs, err := s.Uniform(ctx, spec.Topics, spec.NumberOfQuestions)
	if err != nil {
		return nil, nil, err
	}
	return spec, qs, nil
}
