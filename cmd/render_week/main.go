package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
)

// Утилита для ручной проверки рендера недельного расписания:
// собирает тестовые окна и занятия и сохраняет week.png
func main() {
	now := time.Now()
	monday := now
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}
	mondayDate := model.DateOf(monday)

	templates := []*model.AvailabilityTemplate{
		{ID: 1, AvailableDate: mondayDate, TimeStart: "09:00:00", TimeEnd: "12:00:00"},
		{ID: 2, AvailableDate: mondayDate.AddDays(1), TimeStart: "10:00:00", TimeEnd: "13:00:00"},
		{ID: 3, AvailableDate: mondayDate.AddDays(2), TimeStart: "15:00:00", TimeEnd: "18:00:00"},
		{ID: 4, AvailableDate: mondayDate.AddDays(4), TimeStart: "11:00:00", TimeEnd: "14:00:00"},
	}
	slots := schedule.Expand(templates, now)

	sessions := []*model.Session{
		{
			ID:          1,
			StudentName: "Пётр Сидоров",
			DateTime:    mondayDate.AddDays(1).Time.Add(10 * time.Hour),
			Duration:    "01:30:00",
			Status:      model.SessionStatusConfirmed,
		},
		{
			ID:          2,
			StudentName: "Мария Козлова",
			DateTime:    mondayDate.AddDays(2).Time.Add(16 * time.Hour),
			Duration:    "01:00:00",
			Status:      model.SessionStatusPending,
		},
	}

	imageData, err := common.GenerateWeekImage(now, slots, sessions, true)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", filename)
	fmt.Printf("📊 Окон: %d, занятий: %d\n", len(slots), len(sessions))
}
