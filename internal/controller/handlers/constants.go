package handlers

// Тексты справки
const (
	welcomeText = "👋 Привет, %s!\n\n" +
		"Это TutorSpace - бот для поиска тьюторов и записи на занятия.\n\n" +
		"🔑 Войти в аккаунт: /login\n" +
		"🆕 Создать аккаунт: /register\n" +
		"❓ Справка: /help"

	helpText = "📖 <b>Команды бота</b>\n\n" +
		"<b>Для всех:</b>\n" +
		"/tutors - каталог тьюторов\n" +
		"/mysessions - мои занятия\n" +
		"/messages - переписки\n" +
		"/notifications - уведомления\n" +
		"/reviews - оценить прошедшие занятия\n" +
		"/settings - профиль и настройки\n\n" +
		"<b>Для тьюторов:</b>\n" +
		"/myschedule - моё свободное время\n\n" +
		"<b>Аккаунт:</b>\n" +
		"/login - войти\n" +
		"/register - зарегистрироваться\n" +
		"/logout - выйти\n" +
		"/cancel - прервать текущий диалог"
)
