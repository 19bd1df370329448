package service

import (
	"context"
	"sort"

	"assessment-service/internal/models"
)

type TopicRef struct {
	TopicID   string `json:"topic_id"`
	TopicName string `json:"topic_name"`
}

type SubjectTopics struct {
	SubjectName string     `json:"subject_name"`
	Topics      []TopicRef `json:"topics"`
}

type DomainTopics struct {
	DomainName     string          `json:"domain_name"`
	EducationLevel string          `json:"education_level"`
	Subjects       []SubjectTopics `json:"subjects"`
}

type CETSubjectView struct {
	Subject  string              `json:"subject"`
	Standard int                 `json:"standard"`
	Topics   []models.TopicQuota `json:"topics"`
}

// TopicService serves the taxonomy views clients browse before
// requesting a test.
type TopicService struct {
	topics TopicStore
	dist   DistributionStore
}

func NewTopicService(topics TopicStore, dist DistributionStore) *TopicService {
	return &TopicService{topics: topics, dist: dist}
}

// GetAllTopics returns every topic grouped by subject and domain.
func (s *TopicService) GetAllTopics(ctx context.Context) ([]DomainTopics, error) {
	topics, err := s.topics.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.topics.AllSubjects(ctx)
	if err != nil {
		return nil, err
	}
	domains, err := s.topics.AllDomains(ctx)
	if err != nil {
		return nil, err
	}

	topicsBySubject := make(map[string][]TopicRef)
	for _, t := range topics {
		key := t.SubjectID.Hex()
		topicsBySubject[key] = append(topicsBySubject[key], TopicRef{TopicID: t.ID.Hex(), TopicName: t.TopicName})
	}

	subjectsByDomain := make(map[string][]SubjectTopics)
	for _, sub := range subjects {
		subjectsByDomain[sub.DomainID.Hex()] = append(subjectsByDomain[sub.DomainID.Hex()], SubjectTopics{
			SubjectName: sub.SubjectName,
			Topics:      topicsBySubject[sub.ID.Hex()],
		})
	}

	out := make([]DomainTopics, 0, len(domains))
	for _, d := range domains {
		out = append(out, DomainTopics{
			DomainName:     d.DomainName,
			EducationLevel: d.EducationLevel,
			Subjects:       subjectsByDomain[d.ID.Hex()],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DomainName < out[j].DomainName })
	return out, nil
}

// GetCETTopics exposes the active quota table for browsing.
func (s *TopicService) GetCETTopics(ctx context.Context) ([]CETSubjectView, error) {
	dist, err := s.dist.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CETSubjectView, 0, len(dist.Distributions))
	for _, sd := range dist.Distributions {
		out = append(out, CETSubjectView{Subject: sd.Subject, Standard: sd.Standard, Topics: sd.Topics})
	}
	return out, nil
}

func (s *TopicService) GetTopicsBySubject(ctx context.Context, subjectName string) (*SubjectTopics, error) {
	subject, err := s.topics.FindSubjectByName(ctx, subjectName)
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.FindBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	view := &SubjectTopics{SubjectName: subject.SubjectName, Topics: make([]TopicRef, 0, len(topics))}
	for _, t := range topics {
		view.Topics = append(view.Topics, TopicRef{TopicID: t.ID.Hex(), TopicName: t.TopicName})
	}
	return view, nil
}
