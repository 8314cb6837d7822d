package ledger

// Settings are user display preferences. They carry no logic; they exist
// so preferences survive restarts alongside the ledgers.
type Settings struct {
	Theme           string `json:"theme"`
	DateFormat      string `json:"dateFormat"`
	TimeFormat      string `json:"timeFormat"`
	Language        string `json:"language"`
	CalendarView    string `json:"calendarView"`
	Timezone        string `json:"timezone"`
	ReminderMinutes int    `json:"reminderTime"`
	Currency        string `json:"currency"`
}

// DefaultSettings mirrors what a fresh client starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "light",
		DateFormat:      "dd/MM/yyyy",
		TimeFormat:      "24h",
		Language:        "pt-BR",
		CalendarView:    "month",
		Timezone:        "America/Sao_Paulo",
		ReminderMinutes: 30,
		Currency:        "BRL",
	}
}
