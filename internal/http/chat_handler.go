package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mechassist/internal/domain"
	"mechassist/internal/extractor"
	"mechassist/internal/llm"
	"mechassist/internal/repository"
	"mechassist/internal/service"
	"mechassist/internal/store"
)

// sessionHeader identifica la conversacion del lado del servidor. Se emite en
// cada respuesta para que el cliente pueda continuar sin reenviar contexto.
const sessionHeader = "X-Session-Id"

const historyLimit = 100

// ChatHandler mantiene dependencias para los endpoints del asistente.
type ChatHandler struct {
	logger         *zap.Logger
	chatSvc        *service.ChatService
	conversations  store.Conversation
	archive        repository.ExchangeArchive
	historyTurns   int
	maxUploadBytes int64
	modelName      string
	version        string
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
// archive puede ser nil cuando no hay base configurada.
func NewChatHandler(
	logger *zap.Logger,
	chatSvc *service.ChatService,
	conversations store.Conversation,
	archive repository.ExchangeArchive,
	historyTurns int,
	maxUploadBytes int64,
	modelName, version string,
) *ChatHandler {
	return &ChatHandler{
		logger:         logger,
		chatSvc:        chatSvc,
		conversations:  conversations,
		archive:        archive,
		historyTurns:   historyTurns,
		maxUploadBytes: maxUploadBytes,
		modelName:      modelName,
		version:        version,
	}
}

type contextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string           `json:"message"`
	Domain  string           `json:"domain"`
	Context []contextMessage `json:"context"`
}

// Chat maneja POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	sessionID := h.ensureSession(c)

	result, err := h.chatSvc.Ask(c.Request.Context(), service.ChatRequest{
		SessionID:  sessionID,
		Message:    req.Message,
		DomainHint: req.Domain,
		Context:    turnsFromContext(req.Context),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": result.Formatted.Raw,
		"html":     result.Formatted.HTML,
		"domain":   string(result.Exchange.Domain),
	})
}

// Ask maneja POST /ask (formulario multipart con adjunto opcional).
func (h *ChatHandler) Ask(c *gin.Context) {
	question := c.PostForm("question")
	domainHint := c.PostForm("domain")
	sessionID := h.ensureSession(c)

	var upload *extractor.Upload
	fileHeader, err := c.FormFile("attachment")
	if err == nil && fileHeader != nil {
		if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
			// Se corta antes de leer el cuerpo para no cargar archivos enormes.
			c.JSON(http.StatusBadRequest, gin.H{"error": extractor.ErrFileTooLarge.Error()})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Warn("open attachment failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read attachment"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			h.logger.Warn("read attachment failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read attachment"})
			return
		}
		upload = &extractor.Upload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	result, err := h.chatSvc.Ask(c.Request.Context(), service.ChatRequest{
		SessionID:  sessionID,
		Message:    question,
		DomainHint: domainHint,
		Upload:     upload,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exchange": result.Exchange,
		"html":     result.Formatted.HTML,
		"history":  h.conversations.Recent(sessionID, h.historyTurns),
	})
}

// Domains maneja GET /api/domains.
func (h *ChatHandler) Domains(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Catalog)
}

// History maneja GET /api/history sobre el archivo durable.
func (h *ChatHandler) History(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history archive not configured"})
		return
	}

	exchanges, err := h.archive.ListRecent(c.Request.Context(), historyLimit)
	if err != nil {
		h.logger.Error("list history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	out := make([]gin.H, 0, len(exchanges))
	for _, ex := range exchanges {
		out = append(out, gin.H{
			"id":        ex.ID,
			"question":  ex.Question,
			"response":  ex.Response,
			"domain":    string(ex.Domain),
			"timestamp": ex.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Health maneja GET /api/health.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "active",
		"model":   h.modelName,
		"version": h.version,
	})
}

// ensureSession lee la sesion del request o emite una nueva, y la refleja en
// la respuesta.
func (h *ChatHandler) ensureSession(c *gin.Context) string {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(sessionHeader, sessionID)
	return sessionID
}

// writeError mapea la taxonomia de errores del pipeline a codigos HTTP.
// Las fallas de validacion llevan su motivo especifico, nunca un generico.
func (h *ChatHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
	case errors.Is(err, extractor.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": extractor.ErrFileTooLarge.Error()})
	case errors.Is(err, extractor.ErrUnsupportedFileType):
		c.JSON(http.StatusBadRequest, gin.H{"error": extractor.ErrUnsupportedFileType.Error()})
	case errors.Is(err, extractor.ErrCorruptFile):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": extractor.ErrCorruptFile.Error()})
	case errors.Is(err, llm.ErrTimeout):
		h.logger.Error("inference timeout", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inference timed out"})
	default:
		h.logger.Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate response"})
	}
}

// turnsFromContext convierte la lista role/content del request en pares
// pregunta/respuesta. Un user abre el turno; el assistant siguiente lo cierra.
func turnsFromContext(messages []contextMessage) []domain.Turn {
	var turns []domain.Turn
	open := false
	for _, m := range messages {
		switch m.Role {
		case "user":
			turns = append(turns, domain.Turn{Question: m.Content})
			open = true
		case "assistant":
			if open {
				turns[len(turns)-1].Response = m.Content
				open = false
			} else {
				turns = append(turns, domain.Turn{Response: m.Content})
			}
		}
	}
	return turns
}
