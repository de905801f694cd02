package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1")
	t.Setenv("APPWRITE_PROJECT_ID", "proj")
	t.Setenv("APPWRITE_DATABASE_ID", "db")
	t.Setenv("GEMINI_API_KEY", "key")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":3001", cfg.HTTPAddress)
	require.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	require.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiBaseURL)
	require.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	require.Equal(t, "UTC", cfg.DigestTimeZone)
	require.Equal(t, "classSessions", cfg.Collections.ClassSessions)
	require.Equal(t, "physicalGymCheckins", cfg.Collections.PhysicalGymChecks)
}

func TestLoadFailsOnMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadReportsAllMissing(t *testing.T) {
	t.Setenv("APPWRITE_ENDPOINT", "")
	t.Setenv("APPWRITE_PROJECT_ID", "")
	t.Setenv("APPWRITE_DATABASE_ID", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	for _, name := range []string{"APPWRITE_ENDPOINT", "APPWRITE_PROJECT_ID", "APPWRITE_DATABASE_ID", "GEMINI_API_KEY"} {
		require.Contains(t, err.Error(), name)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("GEMINI_TIMEOUT", "45s")
	t.Setenv("APPWRITE_COLLECTION_GENERAL_TASKS_ID", "tasks-v2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, 45*time.Second, cfg.GeminiTimeout)
	require.Equal(t, "tasks-v2", cfg.Collections.GeneralTasks)
}
