package service

import (
	"strings"
	"testing"

	"mechassist/internal/domain"
)

func TestPromptBuilder_Render(t *testing.T) {
	var b PromptBuilder

	payload := domain.PromptPayload{
		Domain: domain.DomainManufacturing,
		WindowedHistory: []domain.Turn{
			{Question: "what is cnc", Response: "computer numerical control"},
			{Question: "and edm", Response: "electrical discharge machining"},
		},
		AttachmentText: "spec sheet contents",
		Question:       "which one for hardened steel?",
	}

	t.Run("byte-identico entre invocaciones", func(t *testing.T) {
		first := b.Render(payload)
		for i := 0; i < 10; i++ {
			if got := b.Render(payload); got != first {
				t.Fatalf("render is not deterministic")
			}
		}
	})

	t.Run("orden fijo de secciones", func(t *testing.T) {
		out := b.Render(payload)
		framingIdx := strings.Index(out, "manufacturing processes expert")
		historyIdx := strings.Index(out, "Previous conversation:")
		attachIdx := strings.Index(out, "Attached document:")
		questionIdx := strings.LastIndex(out, "User: which one for hardened steel?")

		if framingIdx == -1 || historyIdx == -1 || attachIdx == -1 || questionIdx == -1 {
			t.Fatalf("missing section in prompt:\n%s", out)
		}
		if !(framingIdx < historyIdx && historyIdx < attachIdx && attachIdx < questionIdx) {
			t.Fatalf("sections out of order: framing=%d history=%d attach=%d question=%d",
				framingIdx, historyIdx, attachIdx, questionIdx)
		}
		if !strings.HasSuffix(out, "\nAssistant:") {
			t.Fatalf("prompt must end with the assistant cue, got tail %q", out[len(out)-20:])
		}
	})

	t.Run("historial en orden cronologico", func(t *testing.T) {
		out := b.Render(payload)
		if strings.Index(out, "what is cnc") > strings.Index(out, "and edm") {
			t.Fatalf("history rendered out of order")
		}
	})

	t.Run("sin historial ni adjunto", func(t *testing.T) {
		out := b.Render(domain.PromptPayload{
			Domain:   domain.DomainGeneral,
			Question: "hello",
		})
		if strings.Contains(out, "Previous conversation:") {
			t.Fatalf("unexpected history section")
		}
		if strings.Contains(out, "Attached document:") {
			t.Fatalf("unexpected attachment section")
		}
		if !strings.Contains(out, "User: hello") {
			t.Fatalf("question missing from prompt")
		}
	})

	t.Run("dominio desconocido usa encuadre general", func(t *testing.T) {
		out := b.Render(domain.PromptPayload{Domain: domain.Domain("nope"), Question: "q"})
		if !strings.Contains(out, domainFraming[domain.DomainGeneral]) {
			t.Fatalf("expected general framing fallback")
		}
	})
}
