package calendar

// Metrics метрики уведомлений календаря
type Metrics interface {
	RecordCalendarNotification(operation string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
