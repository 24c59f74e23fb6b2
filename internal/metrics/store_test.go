package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"ai-menu-planner/internal/database"
	"ai-menu-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndGetDailyUsage(t *testing.T) {
	store := newTestStore(t)

	metrics := []ExecutionMetric{
		{AgentName: "MenuChef", Model: "gemini-1.5-pro", PromptTokens: 100, CompletionTokens: 400, LatencyMS: 1200},
		{AgentName: "RecipeWriter", Model: "llama-3.3-70b-versatile", PromptTokens: 50, CompletionTokens: 150, LatencyMS: 800},
	}
	for _, m := range metrics {
		if err := store.Record(m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].TotalPrompt != 150 {
		t.Errorf("Expected 150 prompt tokens, got %d", usage[0].TotalPrompt)
	}
	if usage[0].TotalCompletion != 550 {
		t.Errorf("Expected 550 completion tokens, got %d", usage[0].TotalCompletion)
	}
	if usage[0].TotalExecution != 2 {
		t.Errorf("Expected 2 executions, got %d", usage[0].TotalExecution)
	}
}

func TestRecordMetaSkipsEmptyUsage(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordMeta(shared.AgentMeta{AgentName: "MenuChef"}); err != nil {
		t.Fatalf("RecordMeta failed: %v", err)
	}
	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("Expected no recorded usage, got %v", usage)
	}

	meta := shared.AgentMeta{
		AgentName: "MenuChef",
		Usage:     shared.TokenUsage{PromptTokens: 10, CompletionTokens: 20, Model: "gemini-1.5-pro"},
		Latency:   2 * time.Second,
	}
	if err := store.RecordMeta(meta); err != nil {
		t.Fatalf("RecordMeta failed: %v", err)
	}
	usage, err = store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalExecution != 1 {
		t.Errorf("Expected 1 recorded execution, got %v", usage)
	}
}

func TestCleanup(t *testing.T) {
	store := newTestStore(t)

	old := ExecutionMetric{
		AgentName:    "MenuChef",
		Model:        "gemini-1.5-pro",
		PromptTokens: 10,
		Timestamp:    time.Now().UTC().AddDate(0, 0, -60),
	}
	recent := ExecutionMetric{
		AgentName:    "MenuChef",
		Model:        "gemini-1.5-pro",
		PromptTokens: 20,
	}
	if err := store.Record(old); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(recent); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	affected, err := store.Cleanup(30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 removed record, got %d", affected)
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalPrompt != 20 {
		t.Errorf("Expected only the recent record to remain, got %v", usage)
	}
}

func TestMapUsage(t *testing.T) {
	m := MapUsage("RecipeWriter", shared.TokenUsage{PromptTokens: 5, CompletionTokens: 7, Model: "test"}, 1500*time.Millisecond)
	if m.AgentName != "RecipeWriter" || m.Model != "test" {
		t.Errorf("Unexpected mapping: %+v", m)
	}
	if m.LatencyMS != 1500 {
		t.Errorf("Expected 1500ms latency, got %d", m.LatencyMS)
	}
}
