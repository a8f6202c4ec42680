package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Бэкенд на создание слота отвечает одиночным объектом, хотя
// принимает массив. Клиент обязан понимать оба варианта.
func TestCreateAvailabilitySingleObjectResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/set-availability/", r.URL.Path)

		var body []map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)

		fmt.Fprint(w, `{"id": 7, "available_date": "2026-01-09", "available_time_start": "09:00:00", "available_time_end": "11:00:00", "recurring": true}`)
	}))

	created, err := client.CreateAvailability(context.Background(), &NewAvailability{
		TimeStart: "09:00:00",
		TimeEnd:   "11:00:00",
		Recurring: true,
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(7), created[0].ID)
	assert.True(t, created[0].Recurring)
}

func TestCreateAvailabilityArrayResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 8, "available_date": "2026-01-10", "available_time_start": "14:00:00", "available_time_end": "16:00:00", "recurring": false}]`)
	}))

	created, err := client.CreateAvailability(context.Background(), &NewAvailability{
		TimeStart: "14:00:00",
		TimeEnd:   "16:00:00",
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(8), created[0].ID)
	assert.False(t, created[0].Recurring)
}
