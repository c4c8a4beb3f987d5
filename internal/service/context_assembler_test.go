package service

import (
	"strconv"
	"strings"
	"testing"

	"mechassist/internal/domain"
)

type mockConversation struct {
	exchanges []domain.Exchange
	appended  []domain.Exchange
}

func (m *mockConversation) Append(sessionID string, ex domain.Exchange) string {
	m.appended = append(m.appended, ex)
	return ex.ID
}

func (m *mockConversation) Recent(sessionID string, maxTurns int) []domain.Exchange {
	if len(m.exchanges) <= maxTurns {
		return m.exchanges
	}
	return m.exchanges[len(m.exchanges)-maxTurns:]
}

func historyChars(payload domain.PromptPayload) int {
	total := 0
	for _, t := range payload.WindowedHistory {
		total += len(t.Question) + len(t.Response)
	}
	return total
}

func TestContextAssembler_Build(t *testing.T) {
	t.Run("respeta presupuesto de turnos", func(t *testing.T) {
		conv := &mockConversation{}
		for i := 1; i <= 8; i++ {
			conv.exchanges = append(conv.exchanges, domain.Exchange{
				Question: "q" + strconv.Itoa(i),
				Response: "r" + strconv.Itoa(i),
			})
		}
		a := NewContextAssembler(conv)

		payload := a.Build("s1", "new question", "", domain.DomainGeneral, 3, 10000)
		if len(payload.WindowedHistory) != 3 {
			t.Fatalf("expected 3 turns, got %d", len(payload.WindowedHistory))
		}
		if payload.WindowedHistory[0].Question != "q6" || payload.WindowedHistory[2].Question != "q8" {
			t.Fatalf("expected window q6..q8, got %s..%s",
				payload.WindowedHistory[0].Question, payload.WindowedHistory[2].Question)
		}
	})

	t.Run("recorta del mas antiguo hasta entrar en presupuesto", func(t *testing.T) {
		conv := &mockConversation{}
		for i := 1; i <= 5; i++ {
			conv.exchanges = append(conv.exchanges, domain.Exchange{
				Question: strings.Repeat("q", 50),
				Response: strings.Repeat("r", 50),
			})
		}
		a := NewContextAssembler(conv)

		// Cada turno pesa 100 caracteres; con presupuesto 250 entran 2 enteros.
		payload := a.Build("s1", "new question", "", domain.DomainGeneral, 5, 250)
		if len(payload.WindowedHistory) != 2 {
			t.Fatalf("expected 2 surviving turns, got %d", len(payload.WindowedHistory))
		}
		if got := historyChars(payload); got > 250 {
			t.Fatalf("history exceeds budget: %d > 250", got)
		}
	})

	t.Run("pregunta y adjunto sobreviven presupuesto cero", func(t *testing.T) {
		conv := &mockConversation{exchanges: []domain.Exchange{{Question: "q1", Response: "r1"}}}
		a := NewContextAssembler(conv)

		payload := a.Build("s1", "the question", "attached text", domain.DomainMaterials, 5, 0)
		if len(payload.WindowedHistory) != 0 {
			t.Fatalf("expected empty history, got %d turns", len(payload.WindowedHistory))
		}
		if payload.Question != "the question" {
			t.Fatalf("question was dropped: %q", payload.Question)
		}
		if payload.AttachmentText != "attached text" {
			t.Fatalf("attachment text was dropped: %q", payload.AttachmentText)
		}
		if payload.Domain != domain.DomainMaterials {
			t.Fatalf("expected materials domain, got %s", payload.Domain)
		}
	})

	t.Run("invariante de presupuesto para cualquier largo", func(t *testing.T) {
		conv := &mockConversation{}
		for i := 0; i < 40; i++ {
			conv.exchanges = append(conv.exchanges, domain.Exchange{
				Question: strings.Repeat("x", 7*(i%5+1)),
				Response: strings.Repeat("y", 11*(i%3+1)),
			})
		}
		a := NewContextAssembler(conv)

		for _, budget := range []int{0, 10, 55, 100, 1000, 100000} {
			payload := a.Build("s1", "q", "", domain.DomainGeneral, 40, budget)
			if got := historyChars(payload); got > budget {
				t.Fatalf("budget %d violated: history has %d chars", budget, got)
			}
			if payload.Question != "q" {
				t.Fatalf("question dropped under budget %d", budget)
			}
		}
	})

	t.Run("sesion vacia", func(t *testing.T) {
		a := NewContextAssembler(&mockConversation{})
		payload := a.Build("s1", "q", "", domain.DomainGeneral, 10, 1000)
		if len(payload.WindowedHistory) != 0 {
			t.Fatalf("expected no history, got %d", len(payload.WindowedHistory))
		}
	})
}

func TestContextAssembler_BuildFromTurns(t *testing.T) {
	a := NewContextAssembler(nil)

	turns := []domain.Turn{
		{Question: "first", Response: "one"},
		{Question: "second", Response: "two"},
		{Question: "third", Response: "three"},
	}
	payload := a.BuildFromTurns(turns, "q", "", domain.DomainGeneral, 2, 10000)
	if len(payload.WindowedHistory) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(payload.WindowedHistory))
	}
	if payload.WindowedHistory[0].Question != "second" {
		t.Fatalf("expected window to start at second, got %q", payload.WindowedHistory[0].Question)
	}
}
