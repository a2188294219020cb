package domain

// Параметры поиска слотов по умолчанию
const (
	DefaultSlotDurationMinutes = 60
	SlotIntervalMinutes        = 60
	SearchHorizonDays          = 4 * 7
	NextAvailableDaysAhead     = 5
	DefaultTimezone            = "America/Sao_Paulo"
)

// Time format constants
const (
	TimeFormat    = "15:04"      // HH:MM
	DateFormat    = "2006-01-02" // YYYY-MM-DD
	NotesDateFmt  = "02/01/2006" // DD/MM/YYYY
	MaxServiceIDs = 20
)

// NonTerminalStatuses статусы, участвующие в проверке конфликтов
var NonTerminalStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// TerminalStatuses статусы, после которых запись не занимает время
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
