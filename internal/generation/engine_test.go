package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yoga-rag/internal/safety"
)

// stubBackend records calls so tests can assert the engine's short-circuits.
type stubBackend struct {
	calls    int
	lastReq  Request
	response string
	err      error
}

func (s *stubBackend) Complete(ctx context.Context, req Request) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestEngine_Generate_NoPassagesSkipsBackend(t *testing.T) {
	backend := &stubBackend{response: "should never be returned"}
	engine := NewEngine(backend)

	got := engine.Generate(context.Background(), "What is Yoga?", nil, safety.CategorySafe)

	if got != NoContextMessage {
		t.Errorf("Generate() = %q, want the fixed no-context message", got)
	}
	if backend.calls != 0 {
		t.Errorf("Generate() invoked the backend %d times for empty passages, want 0", backend.calls)
	}
}

func TestEngine_Generate_ReturnsBackendAnswer(t *testing.T) {
	backend := &stubBackend{response: "  Yoga is an ancient practice.  "}
	engine := NewEngine(backend)

	got := engine.Generate(context.Background(), "What is Yoga?", []string{"Yoga is an ancient practice."}, safety.CategorySafe)

	if got != "Yoga is an ancient practice." {
		t.Errorf("Generate() = %q, want trimmed backend answer", got)
	}
	if backend.calls != 1 {
		t.Errorf("Generate() invoked the backend %d times, want 1", backend.calls)
	}
	if backend.lastReq.Query != "What is Yoga?" {
		t.Errorf("backend received query %q", backend.lastReq.Query)
	}
}

func TestEngine_Generate_BackendFailureBecomesAnswerString(t *testing.T) {
	backend := &stubBackend{err: errors.New("model exploded")}
	engine := NewEngine(backend)

	got := engine.Generate(context.Background(), "What is Yoga?", []string{"context"}, safety.CategorySafe)

	if !strings.HasPrefix(got, "Error generating response:") {
		t.Errorf("Generate() = %q, want an error-string answer", got)
	}
	if !strings.Contains(got, "model exploded") {
		t.Errorf("Generate() = %q, want the backend error included", got)
	}
}

func TestEngine_Generate_SystemPromptGrounding(t *testing.T) {
	backend := &stubBackend{response: "answer"}
	engine := NewEngine(backend)

	_ = engine.Generate(context.Background(), "q", []string{"context"}, safety.CategorySafe)

	system := backend.lastReq.System
	if !strings.Contains(system, "strictly based on the provided Context") {
		t.Errorf("system prompt missing grounding restriction: %q", system)
	}
	if !strings.Contains(system, "I don't have enough information to answer that") {
		t.Errorf("system prompt missing not-in-context instruction: %q", system)
	}
	if strings.Contains(system, "sensitive question") {
		t.Errorf("safe query should not carry the caution clause: %q", system)
	}
}

func TestEngine_Generate_SensitiveAddsCautionClause(t *testing.T) {
	backend := &stubBackend{response: "answer"}
	engine := NewEngine(backend)

	_ = engine.Generate(context.Background(), "q", []string{"context"}, safety.CategorySensitive)

	if !strings.Contains(backend.lastReq.System, "sensitive question") {
		t.Errorf("sensitive query missing caution clause: %q", backend.lastReq.System)
	}
}

func TestEngine_Generate_Degraded(t *testing.T) {
	engine := NewDegradedEngine()

	if !engine.Degraded() {
		t.Error("NewDegradedEngine().Degraded() = false, want true")
	}

	// The diagnostic string is returned for every call, even with passages.
	for i := 0; i < 3; i++ {
		got := engine.Generate(context.Background(), "q", []string{"context"}, safety.CategorySafe)
		if got != DegradedMessage {
			t.Fatalf("Generate() = %q, want the fixed degraded message", got)
		}
	}
}
