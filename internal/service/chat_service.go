package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mechassist/internal/domain"
	"mechassist/internal/extractor"
	"mechassist/internal/llm"
	"mechassist/internal/repository"
	"mechassist/internal/store"
)

// ErrEmptyMessage indica que la pregunta llego vacia o en blanco.
var ErrEmptyMessage = errors.New("message is required")

// ChatRequest agrupa la entrada de una vuelta de conversacion.
type ChatRequest struct {
	SessionID  string
	Message    string
	DomainHint string
	Context    []domain.Turn
	Upload     *extractor.Upload
}

// ChatResult es la salida de la vuelta: el intercambio ya persistido y la
// respuesta formateada para mostrar.
type ChatResult struct {
	Exchange  domain.Exchange
	Formatted FormattedResponse
}

// ChatService orquesta el pipeline completo: clasificacion y extraccion sobre
// el mensaje entrante, armado de contexto, render del prompt, inferencia con
// timeout, formato y persistencia.
type ChatService struct {
	logger        *zap.Logger
	classifier    DomainClassifier
	extractor     *extractor.Extractor
	assembler     *ContextAssembler
	builder       PromptBuilder
	formatter     ResponseFormatter
	llmClient     llm.CompletionClient
	conversations store.Conversation
	archive       repository.ExchangeArchive
	turnBudget    int
	charBudget    int
}

func NewChatService(
	logger *zap.Logger,
	ext *extractor.Extractor,
	assembler *ContextAssembler,
	llmClient llm.CompletionClient,
	conversations store.Conversation,
	archive repository.ExchangeArchive,
	turnBudget, charBudget int,
) *ChatService {
	return &ChatService{
		logger:        logger,
		extractor:     ext,
		assembler:     assembler,
		llmClient:     llmClient,
		conversations: conversations,
		archive:       archive,
		turnBudget:    turnBudget,
		charBudget:    charBudget,
	}
}

// ResolveDomain decide el dominio de la vuelta: una sugerencia valida del
// cliente se respeta; cualquier otra cosa se reclasifica en el servidor.
func (s *ChatService) ResolveDomain(hint, message string) domain.Domain {
	if hint != "" {
		d := domain.Domain(hint)
		if d.IsValid() {
			return d
		}
	}
	return s.classifier.Classify(message)
}

// Ask ejecuta una vuelta completa. El intercambio solo se persiste cuando la
// inferencia devolvio respuesta: un timeout o una falla no dejan rastro en el
// historial.
func (s *ChatService) Ask(ctx context.Context, req ChatRequest) (ChatResult, error) {
	question := strings.TrimSpace(req.Message)
	if question == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	var attachments []domain.Attachment
	attachmentText := ""
	if req.Upload != nil {
		att, err := s.extractor.Ingest(ctx, *req.Upload)
		if err != nil {
			return ChatResult{}, fmt.Errorf("ingest attachment: %w", err)
		}
		attachments = append(attachments, att)
		attachmentText = att.ExtractedText
	}

	d := s.ResolveDomain(req.DomainHint, question)

	var payload domain.PromptPayload
	if len(req.Context) > 0 {
		payload = s.assembler.BuildFromTurns(req.Context, question, attachmentText, d, s.turnBudget, s.charBudget)
	} else {
		payload = s.assembler.Build(req.SessionID, question, attachmentText, d, s.turnBudget, s.charBudget)
	}

	prompt := s.builder.Render(payload)

	raw, err := s.llmClient.Complete(ctx, prompt)
	if err != nil {
		return ChatResult{}, fmt.Errorf("complete: %w", err)
	}

	formatted := s.formatter.Format(raw)

	ex := domain.Exchange{
		ID:          uuid.NewString(),
		SessionID:   req.SessionID,
		Question:    question,
		Domain:      d,
		Attachments: attachments,
		Response:    formatted.Raw,
		Timestamp:   time.Now().UTC(),
	}
	s.conversations.Append(req.SessionID, ex)

	if s.archive != nil {
		// El archivo durable no esta en el camino critico de la respuesta.
		go func(ex domain.Exchange) {
			archCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.archive.Save(archCtx, ex); err != nil {
				s.logger.Warn("archive exchange failed", zap.Error(err), zap.String("exchange_id", ex.ID))
			}
		}(ex)
	}

	return ChatResult{Exchange: ex, Formatted: formatted}, nil
}
