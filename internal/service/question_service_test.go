package service

import (
	"context"
	"testing"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validImportRow(topics ...string) QuestionImport {
	return QuestionImport{
		QuestionText:  "What is the time complexity of binary search?",
		Options:       []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
		CorrectOption: 1,
		Topics:        topics,
		Standard:      0,
		Explanation:   "Halves the search space each step.",
	}
}

func TestBulkImportStoresValidatedRows(t *testing.T) {
	arrays := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	store := newFakeQuestionStore()
	events := &fakePublisher{}
	svc := NewQuestionService(store, &fakeTopicStore{topics: []models.Topic{arrays}}, events)

	count, err := svc.BulkImport(context.Background(), models.Identity{UserID: "admin-1", Role: "admin"},
		[]QuestionImport{validImportRow("arrays"), validImportRow("arrays")})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, store.questions, 2)
	for _, q := range store.questions {
		assert.Equal(t, []primitive.ObjectID{arrays.ID}, q.TopicIDs)
		assert.Equal(t, 1, q.CorrectOption)
	}

	require.Len(t, events.events, 1)
	assert.Equal(t, "questions.imported", events.events[0].Type)
}

func TestBulkImportRejectsBadRows(t *testing.T) {
	arrays := models.Topic{ID: primitive.NewObjectID(), TopicName: "arrays"}
	store := newFakeQuestionStore()
	svc := NewQuestionService(store, &fakeTopicStore{topics: []models.Topic{arrays}}, nil)
	ident := models.Identity{UserID: "admin-1", Role: "admin"}

	noText := validImportRow("arrays")
	noText.QuestionText = ""
	threeOptions := validImportRow("arrays")
	threeOptions.Options = []string{"a", "b", "c"}
	badKey := validImportRow("arrays")
	badKey.CorrectOption = 4
	noTopics := validImportRow()

	for _, row := range []QuestionImport{noText, threeOptions, badKey, noTopics} {
		_, err := svc.BulkImport(context.Background(), ident, []QuestionImport{row})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "row: %+v", row)
	}

	_, err := svc.BulkImport(context.Background(), ident, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// A bad row anywhere rejects the whole batch before any write.
	_, err = svc.BulkImport(context.Background(), ident, []QuestionImport{validImportRow("arrays"), badKey})
	require.Error(t, err)
	assert.Empty(t, store.questions)
}

func TestBulkImportUnknownTopic(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewQuestionService(store, &fakeTopicStore{}, nil)

	_, err := svc.BulkImport(context.Background(), models.Identity{UserID: "a"}, []QuestionImport{validImportRow("nonexistent")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Empty(t, store.questions)
}
