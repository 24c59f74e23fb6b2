package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("GROQ_API_KEY", "test-groq-key")
}

func TestNewFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_MODEL", "gemini-1.5-flash")
	t.Setenv("CMS_API_URL", "https://cms.example.com")
	t.Setenv("CMS_ADMIN_API_KEY", "abc:def")
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")
	t.Setenv("ADMIN_TELEGRAM_ID", "123")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.GeminiAPIKey != "test-gemini-key" {
		t.Errorf("Expected Gemini key 'test-gemini-key', got '%s'", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("Expected model 'gemini-1.5-flash', got '%s'", cfg.GeminiModel)
	}
	if cfg.CMSURL != "https://cms.example.com" {
		t.Errorf("Unexpected CMS URL: %s", cfg.CMSURL)
	}
	if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[0] != 123 || cfg.TelegramAllowedUserIDs[1] != 456 {
		t.Errorf("Unexpected allowed user IDs: %v", cfg.TelegramAllowedUserIDs)
	}
	if cfg.AdminTelegramID != 123 {
		t.Errorf("Expected admin ID 123, got %d", cfg.AdminTelegramID)
	}
}

func TestNewFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ARTIFACTS_PATH", "")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("Expected default model 'gemini-1.5-pro', got '%s'", cfg.GeminiModel)
	}
	if cfg.ArtifactsPath != "data/recipes" {
		t.Errorf("Expected default artifacts path, got '%s'", cfg.ArtifactsPath)
	}
	if cfg.DatabasePath != "data/app.db" {
		t.Errorf("Expected default database path, got '%s'", cfg.DatabasePath)
	}
}

func TestNewFromEnvMissingKeys(t *testing.T) {
	t.Run("MissingGeminiKey", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GROQ_API_KEY", "test-groq-key")
		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error when GEMINI_API_KEY is not set")
		}
	})

	t.Run("MissingGroqKey", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-gemini-key")
		t.Setenv("GROQ_API_KEY", "")
		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error when GROQ_API_KEY is not set")
		}
	})
}

func TestNewFromEnvInvalidIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

	if _, err := NewFromEnv(); err == nil {
		t.Error("Expected an error for a non-numeric user ID")
	}
}
