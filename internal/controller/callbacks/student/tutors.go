package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

const tutorsPerPage = 5

// ========================
// Tutor Catalog Handlers
// ========================

// HandleTutorsPage показывает страницу каталога тьюторов
func HandleTutorsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	page64, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	page := int(page64)
	chatID := common.ChatIDFromCallback(callback)

	tutors := h.TutorService.Browse(ctx, chatID)
	common.AnswerCallback(ctx, b, callback.ID, "")
	text, markup := RenderTutorsPage(tutors, page)
	common.EditOrSend(ctx, b, callback, text, markup)
}

// RenderTutorsPage собирает текст и клавиатуру страницы каталога.
// Используется и из callback, и из команды /tutors.
func RenderTutorsPage(tutors []*model.TutorProfile, page int) (string, *models.InlineKeyboardMarkup) {
	if len(tutors) == 0 {
		return "😔 Тьюторы не найдены. Попробуйте позже.", keyboard.Empty()
	}

	totalPages := (len(tutors) + tutorsPerPage - 1) / tutorsPerPage
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	from, to := keyboard.Paginate(len(tutors), page, tutorsPerPage)

	var lines []string
	lines = append(lines, "🎓 <b>Наши тьюторы</b>\n")
	kb := keyboard.NewBuilder()

	for i, tutor := range tutors[from:to] {
		lines = append(lines, formatting.FormatTutorShort(tutor, from+i+1))
		kb.Row(keyboard.Button(
			fmt.Sprintf("%d. %s", from+i+1, tutor.DisplayName()),
			fmt.Sprintf("view_tutor:%d", tutor.ID),
		))
	}

	kb.AddRow(keyboard.PaginationRow("tutors_page:", page, totalPages))

	return strings.Join(lines, "\n\n"), kb.Build()
}

// HandleViewTutor показывает карточку тьютора
func HandleViewTutor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	tutorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	profile, topics, reviews, err := h.TutorService.Details(ctx, chatID, tutorID)
	if err != nil {
		h.Logger.Error("Failed to load tutor details",
			zap.Error(err),
			zap.Int64("tutor_id", tutorID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	if len(topics) > 0 {
		profile.Topics = topics
	}

	text := formatting.FormatTutorCard(profile)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Свободное время", fmt.Sprintf("tutor_slots:%d", tutorID))).
		Row(keyboard.Button("💬 Написать", fmt.Sprintf("open_chat:%d", tutorID)))
	if len(reviews) > 0 {
		kb.Row(keyboard.Button(
			fmt.Sprintf("⭐ Отзывы (%d)", len(reviews)),
			fmt.Sprintf("tutor_reviews:%d", tutorID),
		))
	}
	kb.Row(keyboard.Button("⬅️ К каталогу", "tutors_page:0"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, kb.Build())
}

// HandleTutorReviews показывает отзывы о тьюторе
func HandleTutorReviews(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	tutorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	reviews, err := h.ReviewService.OfTutor(ctx, chatID, tutorID)
	if err != nil {
		h.Logger.Error("Failed to load reviews",
			zap.Error(err),
			zap.Int64("tutor_id", tutorID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var lines []string
	if avg := model.AverageRating(reviews); avg > 0 {
		lines = append(lines, fmt.Sprintf("⭐ <b>Отзывы</b> (средняя оценка %.1f)\n", avg))
	} else {
		lines = append(lines, "⭐ <b>Отзывы</b>\n")
	}

	// Показываем не больше 10 последних
	shown := reviews
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, review := range shown {
		lines = append(lines, formatting.FormatReview(review))
	}
	if len(shown) == 0 {
		lines = append(lines, "Отзывов пока нет")
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ К тьютору", fmt.Sprintf("view_tutor:%d", tutorID)))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, strings.Join(lines, "\n\n"), kb.Build())
}

// HandleTutorSlots показывает свободные окна тьютора и запускает запись
func HandleTutorSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	tutorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	slots := h.BookingService.AvailableSlots(ctx, chatID, tutorID)
	if len(slots) == 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "😔 У тьютора нет свободного времени")
		return
	}

	// Слоты производные, поэтому сохраняем список и адресуем кнопки индексами
	h.StateManager.SetData(chatID, "booking_tutor_id", tutorID)
	h.StateManager.SetData(chatID, "booking_slots", slots)

	kb := keyboard.NewBuilder()
	limit := len(slots)
	if limit > 12 {
		limit = 12
	}
	for i := 0; i < limit; i++ {
		start, _ := slots[i].StartAt()
		label := fmt.Sprintf("%s-%s", start.Format("02.01 15:04"), formatting.FormatClock(slots[i].TimeEnd))
		kb.Row(keyboard.Button(label, "pick_slot:"+strconv.Itoa(i)))
	}
	kb.Row(keyboard.Button("⬅️ К тьютору", fmt.Sprintf("view_tutor:%d", tutorID)))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "📅 <b>Выберите время занятия:</b>", kb.Build())
}
