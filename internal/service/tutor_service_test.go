package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

func newTutorService(t *testing.T, handler http.Handler) (*TutorService, *staticProvider) {
	t.Helper()
	provider := newProvider(t, handler)
	return NewTutorService(provider, zap.NewNop()), provider
}

func TestBrowseRanksByRating(t *testing.T) {
	rate := model.Decimal(20)
	high := model.Decimal(5.0)
	low := model.Decimal(3.0)

	mux := http.NewServeMux()
	mux.HandleFunc("/tutors/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*model.TutorProfile{
			{ID: 1, Username: "norate", HourlyRate: &rate},
			{ID: 2, Username: "low", AverageRating: &low, TotalRatings: 4},
			{ID: 3, Username: "high", AverageRating: &high, TotalRatings: 10},
		})
	})

	svc, _ := newTutorService(t, mux)
	tutors := svc.Browse(context.Background(), 100)

	require.Len(t, tutors, 3)
	assert.Equal(t, "high", tutors[0].Username)
	assert.Equal(t, "low", tutors[1].Username)
	assert.Equal(t, "norate", tutors[2].Username)
}

func TestBrowseEmptyOnAPIError(t *testing.T) {
	svc, _ := newTutorService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.Empty(t, svc.Browse(context.Background(), 100))
}

func TestFilter(t *testing.T) {
	tutors := []*model.TutorProfile{
		{ID: 1, Username: "anna", FirstName: "Анна", Location: "Москва", Topics: []string{"математика"}},
		{ID: 2, Username: "boris", FirstName: "Борис", Location: "Казань", Topics: []string{"физика"}, Bio: "Готовлю к олимпиадам"},
		{ID: 3, Username: "vera", FirstName: "Вера", Location: "Москва", Topics: []string{"химия", "математика"}},
	}

	svc := NewTutorService(nil, zap.NewNop())

	// Пустой запрос возвращает всех
	assert.Len(t, svc.Filter(tutors, "  "), 3)

	byTopic := svc.Filter(tutors, "математика")
	require.Len(t, byTopic, 2)
	assert.Equal(t, int64(1), byTopic[0].ID)
	assert.Equal(t, int64(3), byTopic[1].ID)

	// Регистр не учитывается, ищем и по имени
	byName := svc.Filter(tutors, "бОрИс")
	require.Len(t, byName, 1)
	assert.Equal(t, int64(2), byName[0].ID)

	byLocation := svc.Filter(tutors, "москва")
	assert.Len(t, byLocation, 2)

	// Совпадение по описанию
	byBio := svc.Filter(tutors, "олимпиад")
	require.Len(t, byBio, 1)
	assert.Equal(t, int64(2), byBio[0].ID)

	assert.Empty(t, svc.Filter(tutors, "биология"))
}
