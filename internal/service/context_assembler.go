package service

import (
	"mechassist/internal/domain"
	"mechassist/internal/store"
)

// ContextAssembler arma el PromptPayload acotando el historial a los presupuestos
// de turnos y caracteres. La pregunta nueva y el texto del adjunto nunca se recortan.
type ContextAssembler struct {
	conversations store.Conversation
}

func NewContextAssembler(conversations store.Conversation) *ContextAssembler {
	return &ContextAssembler{conversations: conversations}
}

// Build toma los ultimos turnBudget intercambios de la sesion y los recorta al
// presupuesto de caracteres.
func (a *ContextAssembler) Build(sessionID, question, attachmentText string, d domain.Domain, turnBudget, charBudget int) domain.PromptPayload {
	var turns []domain.Turn
	if a.conversations != nil && sessionID != "" {
		for _, ex := range a.conversations.Recent(sessionID, turnBudget) {
			turns = append(turns, domain.Turn{Question: ex.Question, Response: ex.Response})
		}
	}
	return a.BuildFromTurns(turns, question, attachmentText, d, turnBudget, charBudget)
}

// BuildFromTurns aplica los mismos presupuestos sobre un historial ya provisto
// (el campo context de /api/chat). Se descartan turnos enteros desde el mas
// antiguo; nunca se trunca un turno por la mitad.
func (a *ContextAssembler) BuildFromTurns(turns []domain.Turn, question, attachmentText string, d domain.Domain, turnBudget, charBudget int) domain.PromptPayload {
	if turnBudget < 0 {
		turnBudget = 0
	}
	if len(turns) > turnBudget {
		turns = turns[len(turns)-turnBudget:]
	}

	total := 0
	for _, t := range turns {
		total += len(t.Question) + len(t.Response)
	}
	for len(turns) > 0 && total > charBudget {
		total -= len(turns[0].Question) + len(turns[0].Response)
		turns = turns[1:]
	}
	if len(turns) == 0 {
		turns = nil
	}

	return domain.PromptPayload{
		Domain:          d,
		WindowedHistory: turns,
		AttachmentText:  attachmentText,
		Question:        question,
	}
}
