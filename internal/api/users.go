package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// Profile возвращает профиль текущего пользователя
func (c *Client) Profile(ctx context.Context) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	if err := c.get(ctx, "/profile/", &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// ProfileOf возвращает профиль пользователя по имени
func (c *Client) ProfileOf(ctx context.Context, username string) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	if err := c.get(ctx, "/profile/"+username+"/", &profile); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", username, err)
	}
	return &profile, nil
}

// ProfileUpdate - изменяемые поля профиля. Указатели, чтобы
// не затирать поля, которые пользователь не менял.
type ProfileUpdate struct {
	FirstName         *string  `json:"first_name,omitempty"`
	LastName          *string  `json:"last_name,omitempty"`
	Bio               *string  `json:"bio,omitempty"`
	LessonDescription *string  `json:"lesson_description,omitempty"`
	Location          *string  `json:"location,omitempty"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	PreferredMode     *string  `json:"preferred_mode,omitempty"`
}

// UpdateProfile частично обновляет профиль текущего пользователя
func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	if err := c.put(ctx, "/profile/", update, &profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &profile, nil
}

// Tutors возвращает каталог тьюторов, пройдя все страницы
func (c *Client) Tutors(ctx context.Context) ([]*model.TutorProfile, error) {
	tutors, err := collect[*model.TutorProfile](ctx, c, "/tutors/")
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}

// User возвращает пользователя по числовому id
func (c *Client) User(ctx context.Context, id int64) (*model.TutorProfile, error) {
	var user model.TutorProfile
	if err := c.get(ctx, fmt.Sprintf("/users/%d/", id), &user); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// UserTopics - темы, которые преподаёт тьютор
func (c *Client) UserTopics(ctx context.Context, id int64) ([]string, error) {
	var topics []string
	if err := c.get(ctx, fmt.Sprintf("/users/%d/topics/", id), &topics); err != nil {
		return nil, fmt.Errorf("get user %d topics: %w", id, err)
	}
	return topics, nil
}

type topicPayload struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddTopic привязывает тему к профилю тьютора. Тема ищется в общем
// справочнике и создаётся, если её там ещё нет.
func (c *Client) AddTopic(ctx context.Context, userID int64, name string) error {
	var found []topicPayload
	path := "/topics/?name=" + url.QueryEscape(name)
	if err := c.get(ctx, path, &found); err != nil {
		return fmt.Errorf("lookup topic %q: %w", name, err)
	}

	var topicID int64
	for _, t := range found {
		if strings.EqualFold(t.Name, name) {
			topicID = t.ID
			break
		}
	}
	if topicID == 0 {
		var created topicPayload
		if err := c.post(ctx, "/topics/", &topicPayload{Name: name}, &created); err != nil {
			return fmt.Errorf("create topic %q: %w", name, err)
		}
		topicID = created.ID
	}

	link := map[string]int64{"topic": topicID, "tutor": userID}
	if err := c.post(ctx, "/tutor-topics/", link, nil); err != nil {
		return fmt.Errorf("add topic %q: %w", name, err)
	}
	return nil
}

// RemoveTopic отвязывает тему от профиля тьютора по названию
func (c *Client) RemoveTopic(ctx context.Context, name string) error {
	body := map[string]string{"topic_name": name}
	if err := c.delete(ctx, "/tutor-topics/remove_by_name/", body); err != nil {
		return fmt.Errorf("remove topic %q: %w", name, err)
	}
	return nil
}
