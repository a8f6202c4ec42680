package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// MyAvailability - слоты текущего тьютора
func (c *Client) MyAvailability(ctx context.Context) ([]*model.AvailabilityTemplate, error) {
	templates, err := collect[*model.AvailabilityTemplate](ctx, c, "/set-availability/")
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return templates, nil
}

// TutorAvailability - слоты произвольного тьютора для записи
func (c *Client) TutorAvailability(ctx context.Context, tutorID int64) ([]*model.AvailabilityTemplate, error) {
	path := fmt.Sprintf("/set-availability/?tutor=%d", tutorID)
	templates, err := collect[*model.AvailabilityTemplate](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("list tutor %d availability: %w", tutorID, err)
	}
	return templates, nil
}

// NewAvailability - поля нового слота
type NewAvailability struct {
	AvailableDate model.Date `json:"available_date"`
	TimeStart     string     `json:"available_time_start"`
	TimeEnd       string     `json:"available_time_end"`
	Recurring     bool       `json:"recurring"`
}

// CreateAvailability создаёт слот. Сервер принимает массив, а отвечает
// либо массивом, либо одиночным объектом, поэтому разбираем оба варианта.
func (c *Client) CreateAvailability(ctx context.Context, slot *NewAvailability) ([]*model.AvailabilityTemplate, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/set-availability/", []*NewAvailability{slot}, &raw); err != nil {
		return nil, fmt.Errorf("create availability: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var created []*model.AvailabilityTemplate
		if err := json.Unmarshal(trimmed, &created); err != nil {
			return nil, fmt.Errorf("decode created availability: %w", err)
		}
		return created, nil
	}

	var created model.AvailabilityTemplate
	if err := json.Unmarshal(trimmed, &created); err != nil {
		return nil, fmt.Errorf("decode created availability: %w", err)
	}
	return []*model.AvailabilityTemplate{&created}, nil
}

// DeleteAvailability удаляет слот, id передаётся в теле запроса
func (c *Client) DeleteAvailability(ctx context.Context, id int64) error {
	body := map[string]int64{"id": id}
	if err := c.delete(ctx, "/set-availability/", body); err != nil {
		return fmt.Errorf("delete availability %d: %w", id, err)
	}
	return nil
}
