package i18n

// loadEnglishMessages loads all English translations.
func loadEnglishMessages() {
	messages[LangEN] = map[string]string{
		// Common
		"app.name":        "Escriba",
		"app.description": "AI-powered school work generator",
		"app.version":     "Escriba v%s",

		// Work session
		"work.started":   "New work session started.",
		"work.prompt":    "You> ",
		"work.assistant": "Escriba> ",
		"work.sending":   "Generating work...",
		"work.goodbye":   "Goodbye!",
		"work.help":      "Type the work topic, /novo to start over, /sair to quit.",

		// Notices
		"notice.success":       "Work generated successfully! %d points debited.",
		"notice.files":         "Generated files:",
		"notice.copied":        "Content copied to clipboard.",
		"notice.copy.failed":   "Could not copy to clipboard.",
		"notice.balance":       "Current balance: %d points.",
		"notice.credited":      "%d points added. Current balance: %d points.",
		"notice.reset.done":    "History and balance reset.",
		"notice.history.empty": "No works in history yet.",

		// Errors
		"error.insufficient":       "Not enough points to generate this work. Buy more points to continue.",
		"error.generation":         "Could not generate the work: %s",
		"error.generation.generic": "Could not generate the work. Please try again.",
		"error.transport":          "Connection to the generation service failed. Check your internet and try again.",
		"error.busy":               "A generation is already in progress. Wait for it to finish.",
		"error.empty":              "Type the work topic before submitting.",
		"error.config":             "failed to load configuration: %v",

		// History listing
		"history.title":  "Generated works (newest first):",
		"history.item":   "%s  [%s/%s]  %s  (%d points)",
		"history.amount": "%d work(s) found.",
	}
}
