package safety

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGuard_Classify(t *testing.T) {
	guard := New()

	tests := []struct {
		name         string
		query        string
		wantCategory Category
		wantUnsafe   bool
	}{
		{
			name:         "plain question is safe",
			query:        "What is Yoga?",
			wantCategory: CategorySafe,
			wantUnsafe:   false,
		},
		{
			name:         "critical harm keyword is blocked",
			query:        "how to kill myself",
			wantCategory: CategoryBlocked,
			wantUnsafe:   true,
		},
		{
			name:         "death-related keyword is blocked",
			query:        "poses about death",
			wantCategory: CategoryBlocked,
			wantUnsafe:   true,
		},
		{
			name:         "pregnancy keyword is unsafe",
			query:        "I am pregnant, can I do headstands?",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
		{
			name:         "prenatal keyword is unsafe",
			query:        "best prenatal stretches",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
		{
			name:         "medical keyword is unsafe",
			query:        "can yoga cure my hernia",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
		{
			name:         "case insensitive matching",
			query:        "Is yoga safe with GLAUCOMA?",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
		{
			name:         "sensitive keyword proceeds with caution",
			query:        "poses for stress relief",
			wantCategory: CategorySensitive,
			wantUnsafe:   false,
		},
		{
			name:         "critical outranks pregnancy",
			query:        "pregnant and thinking about death",
			wantCategory: CategoryBlocked,
			wantUnsafe:   true,
		},
		{
			name:         "pregnancy outranks medical",
			query:        "pregnancy after surgery",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
		{
			name:         "medical outranks sensitive",
			query:        "stress from my chronic pain",
			wantCategory: CategoryUnsafe,
			wantUnsafe:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Classify(tt.query)
			if got.Category != tt.wantCategory {
				t.Errorf("Classify(%q) category = %v, want %v", tt.query, got.Category, tt.wantCategory)
			}
			if got.IsUnsafe() != tt.wantUnsafe {
				t.Errorf("Classify(%q) IsUnsafe() = %v, want %v", tt.query, got.IsUnsafe(), tt.wantUnsafe)
			}
			if tt.wantCategory == CategorySafe && got.Message != "" {
				t.Errorf("Classify(%q) safe classification carries message %q", tt.query, got.Message)
			}
			if tt.wantCategory != CategorySafe && got.Message == "" {
				t.Errorf("Classify(%q) non-safe classification has no message", tt.query)
			}
		})
	}
}

func TestGuard_Classify_AdvisoryStructure(t *testing.T) {
	guard := New()

	// BLOCKED/UNSAFE advisory answers must carry three sentences in fixed
	// order: risk acknowledgment, alternative practice, consult a professional.
	for _, query := range []string{"I am pregnant", "yoga with sciatica"} {
		got := guard.Classify(query)
		if got.Category != CategoryUnsafe {
			t.Fatalf("Classify(%q) category = %v, want UNSAFE", query, got.Category)
		}

		msg := got.Message
		riskIdx := strings.Index(msg, "risky without personalized guidance")
		altIdx := strings.Index(msg, "Instead of")
		consultIdx := strings.Index(msg, "consult a doctor or certified yoga therapist")

		if riskIdx < 0 || altIdx < 0 || consultIdx < 0 {
			t.Fatalf("Classify(%q) advisory missing a mandatory sentence: %q", query, msg)
		}
		if !(riskIdx < altIdx && altIdx < consultIdx) {
			t.Errorf("Classify(%q) advisory sentences out of order: %q", query, msg)
		}
	}
}

func TestGuard_Classify_AdvisoryBodyDiffers(t *testing.T) {
	guard := New()

	pregnancy := guard.Classify("third trimester poses").Message
	medical := guard.Classify("poses after surgery").Message

	if pregnancy == medical {
		t.Error("pregnancy and medical advisories should have distinct body sentences")
	}
	if !strings.Contains(pregnancy, "prenatal") {
		t.Errorf("pregnancy advisory missing context-specific body: %q", pregnancy)
	}
	if !strings.Contains(medical, "restorative") {
		t.Errorf("medical advisory missing context-specific body: %q", medical)
	}
}

func TestNewWithKeywords_PartialOverride(t *testing.T) {
	guard := NewWithKeywords(Keywords{
		Critical: []string{"forbidden"},
	})

	if got := guard.Classify("a forbidden topic"); got.Category != CategoryBlocked {
		t.Errorf("custom critical keyword not matched, got %v", got.Category)
	}
	// Unset tiers fall back to defaults.
	if got := guard.Classify("I am pregnant"); got.Category != CategoryUnsafe {
		t.Errorf("default pregnancy keywords lost after override, got %v", got.Category)
	}
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := []byte("critical:\n  - doom\nsensitive:\n  - burnout\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write keywords file: %v", err)
	}

	kw, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords() error = %v", err)
	}
	if len(kw.Critical) != 1 || kw.Critical[0] != "doom" {
		t.Errorf("Critical = %v, want [doom]", kw.Critical)
	}
	if len(kw.Sensitive) != 1 || kw.Sensitive[0] != "burnout" {
		t.Errorf("Sensitive = %v, want [burnout]", kw.Sensitive)
	}
	if len(kw.Pregnancy) != 0 {
		t.Errorf("Pregnancy should be empty in partial file, got %v", kw.Pregnancy)
	}
}

func TestLoadKeywords_Errors(t *testing.T) {
	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadKeywords() with missing file expected error, got nil")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("critical: {not: [valid"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Error("LoadKeywords() with malformed YAML expected error, got nil")
	}
}
