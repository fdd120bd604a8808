package i18n

var catalog = map[string]map[string]string{
	EN: {
		"error.invalid_input":     "The request is invalid.",
		"error.not_authenticated": "Please sign in to continue.",
		"error.not_found":         "Not found.",
		"error.not_authorized":    "You are not allowed to do this.",
		"error.invalid_status":    "This action is not available right now.",
		"error.already_exists":    "This has already been done.",
		"error.validation_failed": "Please check the entered data.",
		"error.create_failed":     "Could not save. Please try again.",
		"error.update_failed":     "Could not update. Please try again.",
		"error.unexpected":        "Something went wrong. Please try again.",
		"error.rate_limited":      "Too many requests. Please wait a moment.",

		"boost.invalid_product":      "Invalid product.",
		"boost.invalid_duration":     "Boost duration must be 7, 14 or 30 days.",
		"boost.invalid_locale":       "Unsupported locale.",
		"boost.product_not_found":    "Product not found.",
		"boost.not_owner":            "You can only boost your own listings.",
		"boost.already_boosted":      "This listing is already boosted.",
		"boost.none_remaining":       "You have no boosts remaining this month.",
		"boost.price_not_found":      "No price is configured for this boost duration.",
		"boost.checkout_unavailable": "Payments are not configured.",
		"boost.checkout_failed":      "Could not start checkout. Please try again.",
		"boost.profile_not_found":    "Seller profile not found.",
		"boost.product_name":         "Listing boost (%d days)",

		"order.invalid_item":            "Invalid order item.",
		"order.item_not_found":          "Order item not found.",
		"order.not_buyer":               "Only the buyer can do this.",
		"order.already_shipped":         "This item has already been shipped and cannot be cancelled.",
		"order.already_delivered":       "This item has already been delivered and cannot be cancelled.",
		"order.already_cancelled":       "This item is already cancelled.",
		"order.cancel_failed":           "Could not cancel the order. Please try again.",
		"order.return_reason_short":     "Please describe the reason for the return (at least 3 characters).",
		"order.return_not_delivered":    "Returns can only be requested for delivered items.",
		"order.return_exists":           "A return has already been requested for this item.",
		"order.return_failed":           "Could not create the return request. Please try again.",
		"order.invalid_issue_type":      "Invalid issue type.",
		"order.issue_description_short": "Please describe the issue (at least 10 characters).",
		"order.issue_failed":            "Could not report the issue. Please try again.",

		"issue.not_received":     "Item Not Received",
		"issue.wrong_item":       "Wrong Item Received",
		"issue.damaged":          "Item Damaged",
		"issue.not_as_described": "Not As Described",
		"issue.missing_parts":    "Missing Parts",
		"issue.other":            "Other",

		"message.return_request": "Return requested for \"%s\".\nReason: %s",
		"message.issue_report":   "Issue reported: %s\nItem: \"%s\"\n\n%s",

		"notify.order_cancelled.title":       "Order cancelled",
		"notify.order_cancelled.body":        "The buyer cancelled \"%s\".",
		"notify.order_cancelled.body_reason": "The buyer cancelled \"%s\". Reason: %s",
		"notify.return_requested.title":      "Return requested",
		"notify.return_requested.body":       "The buyer requested a return for \"%s\".",
		"notify.order_issue.title":           "Issue reported: %s",
		"notify.order_issue.body":            "The buyer reported a problem with \"%s\".",
		"notify.email.footer":                "Open your seller dashboard to respond.",
	},
	BG: {
		"error.invalid_input":     "Невалидна заявка.",
		"error.not_authenticated": "Моля, влезте в профила си.",
		"error.not_found":         "Не е намерено.",
		"error.not_authorized":    "Нямате права за това действие.",
		"error.invalid_status":    "Това действие не е достъпно в момента.",
		"error.already_exists":    "Това вече е направено.",
		"error.validation_failed": "Моля, проверете въведените данни.",
		"error.create_failed":     "Записът не беше успешен. Опитайте отново.",
		"error.update_failed":     "Обновяването не беше успешно. Опитайте отново.",
		"error.unexpected":        "Възникна грешка. Опитайте отново.",
		"error.rate_limited":      "Твърде много заявки. Моля, изчакайте малко.",

		"boost.invalid_product":      "Невалиден продукт.",
		"boost.invalid_duration":     "Продължителността на промоцията трябва да е 7, 14 или 30 дни.",
		"boost.invalid_locale":       "Неподдържан език.",
		"boost.product_not_found":    "Продуктът не е намерен.",
		"boost.not_owner":            "Можете да промотирате само своите обяви.",
		"boost.already_boosted":      "Тази обява вече е промотирана.",
		"boost.none_remaining":       "Нямате оставащи промоции за този месец.",
		"boost.price_not_found":      "Няма зададена цена за тази продължителност.",
		"boost.checkout_unavailable": "Плащанията не са конфигурирани.",
		"boost.checkout_failed":      "Плащането не можа да започне. Опитайте отново.",
		"boost.profile_not_found":    "Профилът на продавача не е намерен.",
		"boost.product_name":         "Промоция на обява (%d дни)",

		"order.invalid_item":            "Невалиден артикул от поръчка.",
		"order.item_not_found":          "Артикулът от поръчката не е намерен.",
		"order.not_buyer":               "Само купувачът може да направи това.",
		"order.already_shipped":         "Артикулът вече е изпратен и не може да бъде отменен.",
		"order.already_delivered":       "Артикулът вече е доставен и не може да бъде отменен.",
		"order.already_cancelled":       "Артикулът вече е отменен.",
		"order.cancel_failed":           "Поръчката не можа да бъде отменена. Опитайте отново.",
		"order.return_reason_short":     "Моля, опишете причината за връщане (поне 3 символа).",
		"order.return_not_delivered":    "Връщане може да се заяви само за доставени артикули.",
		"order.return_exists":           "Вече е заявено връщане за този артикул.",
		"order.return_failed":           "Заявката за връщане не беше създадена. Опитайте отново.",
		"order.invalid_issue_type":      "Невалиден тип проблем.",
		"order.issue_description_short": "Моля, опишете проблема (поне 10 символа).",
		"order.issue_failed":            "Проблемът не можа да бъде докладван. Опитайте отново.",

		"issue.not_received":     "Не е получено",
		"issue.wrong_item":       "Грешен артикул",
		"issue.damaged":          "Повреден артикул",
		"issue.not_as_described": "Не отговаря на описанието",
		"issue.missing_parts":    "Липсващи части",
		"issue.other":            "Друго",

		"message.return_request": "Заявено връщане за \"%s\".\nПричина: %s",
		"message.issue_report":   "Докладван проблем: %s\nАртикул: \"%s\"\n\n%s",

		"notify.order_cancelled.title":       "Поръчката е отменена",
		"notify.order_cancelled.body":        "Купувачът отмени \"%s\".",
		"notify.order_cancelled.body_reason": "Купувачът отмени \"%s\". Причина: %s",
		"notify.return_requested.title":      "Заявено връщане",
		"notify.return_requested.body":       "Купувачът заяви връщане за \"%s\".",
		"notify.order_issue.title":           "Докладван проблем: %s",
		"notify.order_issue.body":            "Купувачът докладва проблем с \"%s\".",
		"notify.email.footer":                "Отворете таблото си на продавач, за да отговорите.",
	},
}
