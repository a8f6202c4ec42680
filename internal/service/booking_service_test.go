package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
	"go.uber.org/zap"
)

// staticProvider - ClientProvider без БД для тестов
type staticProvider struct {
	client  *api.Client
	account *model.Account
}

func (p *staticProvider) ClientFor(int64) *api.Client { return p.client }

func (p *staticProvider) Account(context.Context, int64) (*model.Account, error) {
	if p.account == nil {
		return nil, ErrNotLoggedIn
	}
	return p.account, nil
}

func newProvider(t *testing.T, handler http.Handler) *staticProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &staticProvider{
		client:  api.New(server.URL, 5*time.Second, zap.NewNop()),
		account: &model.Account{ChatID: 100, UserID: 7, Username: "tutor7", IsTutor: true},
	}
}

func TestAvailableSlotsFiltersBooked(t *testing.T) {
	// Завтрашний слот 09:00-11:00, первый час уже занят
	tomorrow := model.DateOf(time.Now().AddDate(0, 0, 1))
	booked := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local)

	mux := http.NewServeMux()
	mux.HandleFunc("/set-availability/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("tutor"))
		fmt.Fprintf(w, `[
			{"id": 1, "available_date": "%s", "available_time_start": "09:00:00", "available_time_end": "11:00:00", "recurring": false},
			{"id": 2, "available_date": "%s", "available_time_start": "14:00:00", "available_time_end": "15:00:00", "recurring": false}
		]`, tomorrow, tomorrow)
	})
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{"id": 50, "tutor": 7, "student": 3, "date_time": "%s", "duration": "01:00:00", "status": "confirmed"}
		], "next": null}`, booked.Format(time.RFC3339))
	})

	svc := NewBookingService(newProvider(t, mux), zap.NewNop())
	slots := svc.AvailableSlots(context.Background(), 100, 7)

	require.Len(t, slots, 1)
	assert.Equal(t, int64(2), slots[0].TemplateID)
	assert.Equal(t, "14:00:00", slots[0].TimeStart)
}

func TestAvailableSlotsEmptyOnAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewBookingService(newProvider(t, mux), zap.NewNop())
	slots := svc.AvailableSlots(context.Background(), 100, 7)

	assert.Empty(t, slots)
}

func TestBookRejectsTooLongDuration(t *testing.T) {
	svc := NewBookingService(newProvider(t, http.NewServeMux()), zap.NewNop())

	_, err := svc.Book(context.Background(), 100, &BookingForm{
		TutorID: 7,
		Slot: schedule.Slot{
			TemplateID: 1,
			Date:       model.NewDate(2025, time.June, 2, time.Local),
			TimeStart:  "09:00:00",
			TimeEnd:    "11:00:00",
		},
		Duration: "02:30:00",
	})

	assert.ErrorIs(t, err, ErrDurationTooLong)
}

func TestBookSendsPendingRequest(t *testing.T) {
	var got map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"id": 42, "tutor": 7, "student": 3, "status": "pending"}`)
	})

	svc := NewBookingService(newProvider(t, mux), zap.NewNop())
	session, err := svc.Book(context.Background(), 100, &BookingForm{
		TutorID: 7,
		Slot: schedule.Slot{
			TemplateID: 1,
			Date:       model.NewDate(2025, time.June, 2, time.Local),
			TimeStart:  "09:00:00",
			TimeEnd:    "11:00:00",
		},
		Duration: "01:30:00",
		Topic:    "Algebra",
		Mode:     model.ModeWebcam,
		Notes:    "first lesson",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), session.ID)
	assert.Equal(t, "pending", got["status"])
	assert.Equal(t, "01:30:00", got["duration"])
	assert.Equal(t, float64(7), got["tutor"])
}

func TestMySessionsGrouping(t *testing.T) {
	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	past := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)

	mux := http.NewServeMux()
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{"id": 1, "date_time": "%s", "status": "completed"},
			{"id": 2, "date_time": "%s", "status": "confirmed"},
			{"id": 3, "date_time": "%s", "status": "pending"}
		], "next": null}`, past, future, future)
	})

	svc := NewBookingService(newProvider(t, mux), zap.NewNop())
	list, err := svc.MySessions(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, list.Past, 1)
	require.Len(t, list.Upcoming, 1)
	require.Len(t, list.Pending, 1)
	assert.Equal(t, int64(1), list.Past[0].ID)
	assert.Equal(t, int64(2), list.Upcoming[0].ID)
	assert.Equal(t, int64(3), list.Pending[0].ID)
}

func TestDeleteAvailabilityGuard(t *testing.T) {
	// Recurring слот по понедельникам 09:00-11:00, на понедельник
	// записано занятие в 10:30
	monday := time.Date(2025, time.June, 2, 10, 30, 0, 0, time.Local)

	var deleted bool
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{"id": 60, "tutor": 7, "date_time": "%s", "duration": "01:00:00", "status": "confirmed"}
		], "next": null}`, monday.Format(time.RFC3339))
	})
	mux.HandleFunc("/set-availability/", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	svc := NewAvailabilityService(newProvider(t, mux), zap.NewNop())
	template := &model.AvailabilityTemplate{
		ID:            5,
		AvailableDate: model.NewDate(2025, time.May, 26, time.Local), // тоже понедельник
		TimeStart:     "09:00:00",
		TimeEnd:       "11:00:00",
		Recurring:     true,
	}

	err := svc.Delete(context.Background(), 100, template)
	assert.ErrorIs(t, err, ErrSlotHasSessions)
	assert.False(t, deleted)

	// Слот в другое время удаляется
	free := &model.AvailabilityTemplate{
		ID:            6,
		AvailableDate: model.NewDate(2025, time.May, 26, time.Local),
		TimeStart:     "14:00:00",
		TimeEnd:       "16:00:00",
		Recurring:     true,
	}
	err = svc.Delete(context.Background(), 100, free)
	require.NoError(t, err)
	assert.True(t, deleted)
}
