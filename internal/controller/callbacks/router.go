package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/inbox"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/student"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/tutor"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
)

// ========================
// Callback Data Patterns
// ========================

// Common callbacks
const (
	BackToMain = "back_to_main"
	Noop       = "noop"
)

// Student callbacks - каталог тьюторов и запись на занятие
const (
	TutorsPage   = "tutors_page:"   // tutors_page:2
	ViewTutor    = "view_tutor:"    // view_tutor:123
	TutorReviews = "tutor_reviews:" // tutor_reviews:123
	TutorSlots   = "tutor_slots:"   // tutor_slots:123

	PickSlot     = "pick_slot:"     // pick_slot:3 (индекс в сохранённом списке)
	PickDuration = "pick_duration:" // pick_duration:90 (минуты)
	PickTopic    = "pick_topic:"    // pick_topic:0, pick_topic:-1 = без темы
	PickMode     = "pick_mode:"     // pick_mode:webcam
	SkipNotes    = "skip_notes"
	ConfirmBook  = "confirm_book"
	CancelDialog = "cancel_dialog"
)

// Session callbacks - управление занятиями с обеих сторон
const (
	ViewSession      = "view_session:"      // view_session:42
	CancelSession    = "cancel_session:"    // cancel_session:42
	ConfirmCancelSes = "confirm_cancel:"    // confirm_cancel:42
	AcceptSession    = "accept_session:"    // accept_session:42 (тьютор)
	RejectSession    = "reject_session:"    // reject_session:42 (тьютор)
	CompleteSession  = "complete_session:"  // complete_session:42 (тьютор)
	RescheduleStart  = "reschedule:"        // reschedule:42 (тьютор вводит время)
	RescheduleAccept = "resched_accept:"    // resched_accept:42 (студент)
	RescheduleReject = "resched_reject:"    // resched_reject:42 (студент)
)

// Review callbacks
const (
	RateSession       = "rate_session:" // rate_session:42
	SetRating         = "set_rating:"   // set_rating:42:5
	SkipReviewComment = "skip_review_comment"
)

// Tutor callbacks - расписание доступности
const (
	AddSlot       = "add_slot"
	SlotRecurring = "slot_recurring:" // slot_recurring:yes | slot_recurring:no
	DeleteSlot    = "delete_slot:"    // delete_slot:17
	WeekImage     = "week_image"
)

// Inbox callbacks - переписка и уведомления
const (
	OpenChat     = "open_chat:" // open_chat:123
	CloseChat    = "close_chat"
	NotifRead    = "notif_read:" // notif_read:9
	NotifReadAll = "notif_read_all"
	NotifDelete  = "notif_delete:" // notif_delete:9
)

// Settings callbacks
const (
	BecomeTutor       = "become_tutor"
	ChangePassword    = "change_password"
	DeleteAccount     = "delete_account"
	ConfirmDeleteAcct = "confirm_delete_account"

	EditProfileMenu = "edit_profile"
	EditBio         = "edit_bio"
	EditLocation    = "edit_location"
	EditRate        = "edit_rate"
	EditMode        = "edit_mode"
	SetMode         = "set_mode:" // set_mode:webcam
	EditTopics      = "edit_topics"
	RemoveTopic     = "remove_topic:" // remove_topic:2 (индекс в сохранённом списке)
	AddTopic        = "add_topic"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.AnswerCallback(ctx, b, callback.ID, "")
		common.EditOrSend(ctx, b, callback, "Главное меню: /help", nil)
	case data == Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == CancelDialog:
		student.HandleCancelDialog(ctx, b, callback, h)

	// ===== Student: Tutor Catalog =====
	case strings.HasPrefix(data, TutorsPage):
		student.HandleTutorsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewTutor):
		student.HandleViewTutor(ctx, b, callback, h)
	case strings.HasPrefix(data, TutorReviews):
		student.HandleTutorReviews(ctx, b, callback, h)
	case strings.HasPrefix(data, TutorSlots):
		student.HandleTutorSlots(ctx, b, callback, h)

	// ===== Student: Booking Flow =====
	case strings.HasPrefix(data, PickSlot):
		student.HandlePickSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, PickDuration):
		student.HandlePickDuration(ctx, b, callback, h)
	case strings.HasPrefix(data, PickTopic):
		student.HandlePickTopic(ctx, b, callback, h)
	case strings.HasPrefix(data, PickMode):
		student.HandlePickMode(ctx, b, callback, h)
	case data == SkipNotes:
		student.HandleSkipNotes(ctx, b, callback, h)
	case data == ConfirmBook:
		student.HandleConfirmBooking(ctx, b, callback, h)

	// ===== Sessions =====
	case strings.HasPrefix(data, ViewSession):
		student.HandleViewSession(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelSession):
		student.HandleCancelSession(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmCancelSes):
		student.HandleConfirmCancelSession(ctx, b, callback, h)
	case strings.HasPrefix(data, RescheduleAccept):
		student.HandleRescheduleResponse(ctx, b, callback, h, true)
	case strings.HasPrefix(data, RescheduleReject):
		student.HandleRescheduleResponse(ctx, b, callback, h, false)
	case strings.HasPrefix(data, AcceptSession):
		tutor.HandleAcceptSession(ctx, b, callback, h)
	case strings.HasPrefix(data, RejectSession):
		tutor.HandleRejectSession(ctx, b, callback, h)
	case strings.HasPrefix(data, CompleteSession):
		tutor.HandleCompleteSession(ctx, b, callback, h)
	case strings.HasPrefix(data, RescheduleStart):
		tutor.HandleRescheduleStart(ctx, b, callback, h)

	// ===== Reviews =====
	case strings.HasPrefix(data, RateSession):
		student.HandleRateSession(ctx, b, callback, h)
	case strings.HasPrefix(data, SetRating):
		student.HandleSetRating(ctx, b, callback, h)
	case data == SkipReviewComment:
		student.HandleSkipReviewComment(ctx, b, callback, h)

	// ===== Tutor: Availability =====
	case data == AddSlot:
		tutor.HandleAddSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, SlotRecurring):
		tutor.HandleSlotRecurring(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteSlot):
		tutor.HandleDeleteSlot(ctx, b, callback, h)
	case data == WeekImage:
		tutor.HandleWeekImage(ctx, b, callback, h)

	// ===== Inbox =====
	case strings.HasPrefix(data, OpenChat):
		inbox.HandleOpenChat(ctx, b, callback, h)
	case data == CloseChat:
		inbox.HandleCloseChat(ctx, b, callback, h)
	case strings.HasPrefix(data, NotifRead):
		inbox.HandleNotificationRead(ctx, b, callback, h)
	case data == NotifReadAll:
		inbox.HandleNotificationReadAll(ctx, b, callback, h)
	case strings.HasPrefix(data, NotifDelete):
		inbox.HandleNotificationDelete(ctx, b, callback, h)

	// ===== Settings =====
	case data == BecomeTutor:
		tutor.HandleBecomeTutor(ctx, b, callback, h)
	case data == ChangePassword:
		student.HandleChangePassword(ctx, b, callback, h)
	case data == DeleteAccount:
		student.HandleDeleteAccount(ctx, b, callback, h)
	case data == ConfirmDeleteAcct:
		student.HandleConfirmDeleteAccount(ctx, b, callback, h)
	case data == EditProfileMenu:
		student.HandleEditProfileMenu(ctx, b, callback, h)
	case data == EditBio:
		student.HandleEditField(ctx, b, callback, h, state.StateEditBio, "✏️ Напишите пару слов о себе:")
	case data == EditLocation:
		student.HandleEditField(ctx, b, callback, h, state.StateEditLocation, "📍 Укажите ваш город:")
	case data == EditRate:
		student.HandleEditField(ctx, b, callback, h, state.StateEditRate, "💵 Укажите ставку в $ за час, например 25 или 19.50:")
	case data == EditMode:
		student.HandleEditMode(ctx, b, callback, h)
	case strings.HasPrefix(data, SetMode):
		student.HandleSetMode(ctx, b, callback, h)
	case data == EditTopics:
		student.HandleEditTopics(ctx, b, callback, h)
	case strings.HasPrefix(data, RemoveTopic):
		student.HandleRemoveTopic(ctx, b, callback, h)
	case data == AddTopic:
		student.HandleAddTopic(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "Неизвестная команда")
	}
}
