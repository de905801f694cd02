// Package config centralises configuration parsing for the Prodify context service.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the service.
type Config struct {
	HTTPAddress string
	CORSOrigin  string

	AppwriteEndpoint   string
	AppwriteProjectID  string
	AppwriteDatabaseID string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	DigestTimeZone string

	Collections Collections
}

// Collections holds the Appwrite collection identifiers, one per tracked category.
type Collections struct {
	ClassSessions      string
	ClassSessionTotals string
	ClassReminders     string
	ClassNotes         string
	GeneralTasks       string
	GeneralReminders   string
	GeneralNotes       string
	FinanceIncomes     string
	FinanceExpenses    string
	PhysicalSteps      string
	PhysicalGymTimes   string
	PhysicalGymChecks  string
	PhysicalOther      string
}

// Load reads environment variables into Config. It fails when a variable the
// service cannot run without (Appwrite endpoint/project/database, Gemini key)
// is unset.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddress: getEnv("HTTP_ADDRESS", ":3001"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),

		AppwriteEndpoint:   os.Getenv("APPWRITE_ENDPOINT"),
		AppwriteProjectID:  os.Getenv("APPWRITE_PROJECT_ID"),
		AppwriteDatabaseID: os.Getenv("APPWRITE_DATABASE_ID"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTimeout: getDurationEnv("GEMINI_TIMEOUT", 30*time.Second),

		DigestTimeZone: getEnv("DIGEST_TIME_ZONE", "UTC"),

		Collections: Collections{
			ClassSessions:      getEnv("APPWRITE_COLLECTION_CLASS_SESSIONS_ID", "classSessions"),
			ClassSessionTotals: getEnv("APPWRITE_COLLECTION_CLASS_SESSION_TOTALS_ID", "classSessionTotals"),
			ClassReminders:     getEnv("APPWRITE_COLLECTION_CLASS_REMINDERS_ID", "classReminders"),
			ClassNotes:         getEnv("APPWRITE_COLLECTION_CLASS_NOTES_ID", "classNotes"),
			GeneralTasks:       getEnv("APPWRITE_COLLECTION_GENERAL_TASKS_ID", "generalTasks"),
			GeneralReminders:   getEnv("APPWRITE_COLLECTION_GENERAL_REMINDERS_ID", "generalReminders"),
			GeneralNotes:       getEnv("APPWRITE_COLLECTION_GENERAL_NOTES_ID", "generalNotes"),
			FinanceIncomes:     getEnv("APPWRITE_COLLECTION_FINANCE_INCOMES_ID", "financeIncomes"),
			FinanceExpenses:    getEnv("APPWRITE_COLLECTION_FINANCE_EXPENSES_ID", "financeExpenses"),
			PhysicalSteps:      getEnv("APPWRITE_COLLECTION_PHYSICAL_STEPS_ID", "physicalSteps"),
			PhysicalGymTimes:   getEnv("APPWRITE_COLLECTION_PHYSICAL_GYM_DURATION_ID", "physicalGymDurations"),
			PhysicalGymChecks:  getEnv("APPWRITE_COLLECTION_PHYSICAL_GYM_CHECKIN_ID", "physicalGymCheckins"),
			PhysicalOther:      getEnv("APPWRITE_COLLECTION_PHYSICAL_OTHER_ID", "physicalOther"),
		},
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{"APPWRITE_ENDPOINT", cfg.AppwriteEndpoint},
		{"APPWRITE_PROJECT_ID", cfg.AppwriteProjectID},
		{"APPWRITE_DATABASE_ID", cfg.AppwriteDatabaseID},
		{"GEMINI_API_KEY", cfg.GeminiAPIKey},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
