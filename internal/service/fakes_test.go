package service

import (
	"context"
	"sort"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores implementing the service interfaces. They mirror the
// observable behavior of the mongo repositories (missing ids absent from
// batch lookups, newest-first history pages) so service tests exercise
// the same contracts.

type fakeTestStore struct {
	tests map[primitive.ObjectID]*models.Test
	fail  error
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{tests: make(map[primitive.ObjectID]*models.Test)}
}

func (f *fakeTestStore) Create(_ context.Context, test *models.Test) (primitive.ObjectID, error) {
	if f.fail != nil {
		return primitive.NilObjectID, f.fail
	}
	id := primitive.NewObjectID()
	copied := *test
	copied.ID = id
	f.tests[id] = &copied
	return id, nil
}

func (f *fakeTestStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Test, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, apperr.NotFound("test not found")
	}
	return t, nil
}

func (f *fakeTestStore) FindManyByID(_ context.Context, ids []primitive.ObjectID) ([]models.Test, error) {
	var out []models.Test
	for _, id := range ids {
		if t, ok := f.tests[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeResultStore struct {
	results []*models.TestResult
	fail    error
}

func (f *fakeResultStore) Create(_ context.Context, result *models.TestResult) (primitive.ObjectID, error) {
	if f.fail != nil {
		return primitive.NilObjectID, f.fail
	}
	id := primitive.NewObjectID()
	copied := *result
	copied.ID = id
	f.results = append(f.results, &copied)
	return id, nil
}

func (f *fakeResultStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.TestResult, error) {
	for _, r := range f.results {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperr.NotFound("test result not found")
}

func (f *fakeResultStore) byStudent(studentID string) []models.TestResult {
	var out []models.TestResult
	for _, r := range f.results {
		if r.StudentID == studentID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeResultStore) FindByStudent(_ context.Context, studentID string) ([]models.TestResult, error) {
	return f.byStudent(studentID), nil
}

func (f *fakeResultStore) CountByStudent(_ context.Context, studentID string) (int64, error) {
	return int64(len(f.byStudent(studentID))), nil
}

func (f *fakeResultStore) FindPageByStudent(_ context.Context, studentID string, page, limit int) ([]models.TestResult, error) {
	all := f.byStudent(studentID)
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeResultStore) FindRecentByStudent(ctx context.Context, studentID string, n int) ([]models.TestResult, error) {
	return f.FindPageByStudent(ctx, studentID, 1, n)
}

type fakeQuestionStore struct {
	questions map[primitive.ObjectID]models.Question
	fail      error
}

func newFakeQuestionStore(qs ...models.Question) *fakeQuestionStore {
	f := &fakeQuestionStore{questions: make(map[primitive.ObjectID]models.Question)}
	for _, q := range qs {
		f.questions[q.ID] = q
	}
	return f
}

func (f *fakeQuestionStore) FindManyByID(_ context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	var out []models.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) InsertMany(_ context.Context, qs []models.Question) ([]primitive.ObjectID, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	ids := make([]primitive.ObjectID, len(qs))
	for i, q := range qs {
		if q.ID.IsZero() {
			q.ID = primitive.NewObjectID()
		}
		f.questions[q.ID] = q
		ids[i] = q.ID
	}
	return ids, nil
}

type fakeTopicStore struct {
	topics   []models.Topic
	subjects []models.Subject
	domains  []models.Domain
}

func (f *fakeTopicStore) ResolveNames(_ context.Context, names []string) ([]models.Topic, error) {
	out := make([]models.Topic, 0, len(names))
	for _, name := range names {
		found := false
		for _, t := range f.topics {
			if t.TopicName == name {
				out = append(out, t)
				found = true
				break
			}
		}
		if !found {
			return nil, apperr.NotFound("topic not found: %s", name)
		}
	}
	return out, nil
}

func (f *fakeTopicStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Topic, error) {
	var out []models.Topic
	for _, id := range ids {
		for _, t := range f.topics {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTopicStore) FindAll(context.Context) ([]models.Topic, error) {
	return f.topics, nil
}

func (f *fakeTopicStore) FindBySubject(_ context.Context, subjectID primitive.ObjectID) ([]models.Topic, error) {
	var out []models.Topic
	for _, t := range f.topics {
		if t.SubjectID == subjectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTopicStore) FindSubjectByName(_ context.Context, name string) (*models.Subject, error) {
	for i := range f.subjects {
		if f.subjects[i].SubjectName == name {
			return &f.subjects[i], nil
		}
	}
	return nil, apperr.NotFound("subject not found: %s", name)
}

func (f *fakeTopicStore) AllSubjects(context.Context) ([]models.Subject, error) {
	return f.subjects, nil
}

func (f *fakeTopicStore) AllDomains(context.Context) ([]models.Domain, error) {
	return f.domains, nil
}

type publishedEvent struct {
	Type    string
	Payload any
}

type fakePublisher struct {
	events []publishedEvent
	fail   error
}

func (f *fakePublisher) Publish(eventType string, payload any) error {
	if f.fail != nil {
		return f.fail
	}
	f.events = append(f.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}
