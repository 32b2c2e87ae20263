package main

// translations maps language -> key -> text. English is the fallback for
// any key missing in another language.
var translations = map[string]map[string]string{
	"en": {
		"welcome":              "Hi! I can show the course catalog, upcoming dates and prices, and sign you up for a course.\nSend /help to see what I understand.",
		"welcome_menu":         "Hi! Use the menu below to browse courses, see dates and prices, or register.",
		"help_title":           "Available commands:",
		"unknown_command":      "Unknown command. Send /help for the list of commands.",
		"try_again_later":      "Something went wrong on our side. Please try again later.",
		"courses_not_found":    "No courses found.",
		"choose_course":        "Choose a course",
		"found_courses":        "Courses found:",
		"findcourse_usage":     "Please type a keyword after the /findcourse command.",
		"keyword_not_found":    "No courses found for the keyword \"%s\".",
		"no_available_courses": "There are no courses open for enrollment right now.",
		"choose_register":      "Choose a course to register for",
		"registered":           "You have successfully registered for the course: %s",
		"course_gone":          "This course is no longer in the catalog. Please open the list again.",
		"price_usage":          "Please type a course name after the /courseprice command.",
		"price_not_found":      "No prices found for the course \"%s\".",
		"price_title":          "Prices for %s:",
		"choose_price":         "Choose a course to see its prices",
		"label_courses":        "📚 Course list",
		"label_available":      "📅 Available courses",
		"label_register":       "📝 Register",
		"label_price":          "💰 Price",
		"label_help":           "❓ Help",
		"desc_start":           "Start the bot",
		"desc_help":            "Show this help",
		"desc_courses":         "List all courses",
		"desc_findcourse":      "Find courses by keyword",
		"desc_available":       "Courses open for enrollment",
		"desc_registration":    "Register for a course",
		"desc_courseprice":     "Show prices for a course",
	},
	"ru": {
		"welcome":              "Привет! Я покажу каталог курсов, ближайшие даты и цены, а также запишу вас на курс.\nОтправьте /help, чтобы увидеть список команд.",
		"welcome_menu":         "Привет! Используйте меню ниже, чтобы посмотреть курсы, даты и цены или записаться.",
		"help_title":           "Доступные команды:",
		"unknown_command":      "Неизвестная команда. Отправьте /help для списка команд.",
		"try_again_later":      "Что-то пошло не так. Пожалуйста, попробуйте позже.",
		"courses_not_found":    "Курсы не найдены",
		"choose_course":        "Выберите курс",
		"found_courses":        "Найденные курсы:",
		"findcourse_usage":     "Пожалуйста, введите ключевое слово после команды /findcourse",
		"keyword_not_found":    "Курсы с ключевым словом \"%s\" не найдены.",
		"no_available_courses": "Сейчас нет курсов, открытых для записи.",
		"choose_register":      "Выберите курс для записи",
		"registered":           "Вы успешно записались на курс: %s",
		"course_gone":          "Этого курса больше нет в каталоге. Откройте список заново.",
		"price_usage":          "Пожалуйста, введите название курса после команды /courseprice",
		"price_not_found":      "Цены для курса \"%s\" не найдены.",
		"price_title":          "Цены на курс %s:",
		"choose_price":         "Выберите курс, чтобы узнать цены",
		"label_courses":        "📚 Список курсов",
		"label_available":      "📅 Доступные курсы",
		"label_register":       "📝 Записаться",
		"label_price":          "💰 Цены",
		"label_help":           "❓ Помощь",
		"desc_start":           "Запустить бота",
		"desc_help":            "Показать помощь",
		"desc_courses":         "Список всех курсов",
		"desc_findcourse":      "Найти курс по ключевому слову",
		"desc_available":       "Курсы, открытые для записи",
		"desc_registration":    "Записаться на курс",
		"desc_courseprice":     "Цены на курс",
	},
}
