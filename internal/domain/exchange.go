package domain

import "time"

// MediaType clasifica el contenido de un adjunto aceptado.
type MediaType string

const (
	MediaPDF   MediaType = "pdf"
	MediaImage MediaType = "image"
	MediaText  MediaType = "text"
)

// Attachment es un archivo aceptado y ya convertido a texto plano.
// Solo se construye cuando la validacion paso; un adjunto rechazado nunca existe.
type Attachment struct {
	Filename      string    `json:"filename"`
	MediaType     MediaType `json:"media_type"`
	RawBytes      []byte    `json:"-"`
	ExtractedText string    `json:"extracted_text,omitempty"`
}

// Exchange es la unidad atomica de historial: una pregunta con su respuesta.
// Inmutable una vez guardado; response se fija exactamente una vez antes de persistir.
type Exchange struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"session_id"`
	Question    string       `json:"question"`
	Domain      Domain       `json:"domain"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Response    string       `json:"response"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Turn es un par pregunta/respuesta dentro de la ventana de contexto.
type Turn struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// PromptPayload es el valor transitorio que serializa el prompt builder.
// Se construye por request y nunca se persiste.
type PromptPayload struct {
	Domain          Domain
	WindowedHistory []Turn
	AttachmentText  string
	Question        string
}
