// Package domain defines typed views of the Appwrite documents this service
// reads. The BaaS stores them schema-less; decoding into these structs is the
// validation boundary.
package domain

import "time"

// ClassSession is one recorded study session for a class.
type ClassSession struct {
	UserID      string    `json:"userId"`
	ClassID     string    `json:"classId"`
	SessionDate time.Time `json:"sessionDate"`
	TotalTime   int       `json:"totalTime"`
	SessionType string    `json:"sessionType"`
}

// ClassSessionTotals is the single aggregate row kept per class.
type ClassSessionTotals struct {
	UserID        string `json:"userId"`
	ClassID       string `json:"classId"`
	LectureTotal  int    `json:"lectureTotal"`
	HomeworkTotal int    `json:"homeworkTotal"`
	OthersTotal   int    `json:"othersTotal"`
}

// ClassReminder is a class-scoped reminder.
type ClassReminder struct {
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReminderAt  time.Time `json:"reminderAt"`
	IsCompleted bool      `json:"isCompleted"`
}

// ClassNote is a free-form note attached to a class.
type ClassNote struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// GeneralTask is a checklist entry.
type GeneralTask struct {
	UserID      string `json:"userId"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// GeneralReminder is a reminder outside any class.
type GeneralReminder struct {
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"dueAt"`
	IsDone      bool      `json:"isDone"`
}

// GeneralNote is a quick note.
type GeneralNote struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// FinanceIncome is one logged income entry.
type FinanceIncome struct {
	UserID   string  `json:"userId"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// FinanceExpense is one logged expense entry.
type FinanceExpense struct {
	UserID   string  `json:"userId"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// PhysicalSteps is a daily step count entry.
type PhysicalSteps struct {
	UserID     string `json:"userId"`
	StepsCount int    `json:"stepsCount"`
}

// PhysicalGymDuration is one gym visit's duration in minutes.
type PhysicalGymDuration struct {
	UserID   string `json:"userId"`
	Duration int    `json:"duration"`
}

// PhysicalGymCheckin records a gym check-in; only its creation time matters.
type PhysicalGymCheckin struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"$createdAt"`
}

// PhysicalOther is any other tracked activity.
type PhysicalOther struct {
	UserID       string `json:"userId"`
	ActivityName string `json:"activityName"`
	Duration     int    `json:"duration"`
}
