package render

// Level classifies a Notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a one-shot message shown after a submission attempt.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Success builds a success notification.
func Success(message string) *Notification {
	return &Notification{Level: LevelSuccess, Message: message}
}

// Failure builds an error notification.
func Failure(message string) *Notification {
	return &Notification{Level: LevelError, Message: message}
}
