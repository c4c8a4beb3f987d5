// Package extractor valida archivos subidos y los convierte a texto plano.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"mechassist/internal/domain"
)

// Errores de validacion: el tipo o el tamaño del archivo no son aceptables.
var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ErrCorruptFile es un error de extraccion: el tipo era correcto pero el
// contenido no se pudo interpretar. Se distingue de los errores de validacion
// para que el cliente sepa si mando el archivo equivocado o un archivo roto.
var ErrCorruptFile = errors.New("corrupt file")

// Upload es el archivo crudo tal como llega del formulario multipart.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// allowedExtensions es el conjunto aceptado; cualquier otra extension se rechaza.
var allowedExtensions = map[string]domain.MediaType{
	".pdf":  domain.MediaPDF,
	".png":  domain.MediaImage,
	".jpg":  domain.MediaImage,
	".jpeg": domain.MediaImage,
}

// Extractor valida y extrae texto de adjuntos. No escribe en ningun almacen:
// produce el registro o un error, nada mas.
type Extractor struct {
	maxBytes   int64
	maxChars   int
	recognizer TextRecognizer
}

// NewExtractor construye el extractor. recognizer hace el OCR de imagenes;
// maxChars acota el texto extraido antes de entregarlo al pipeline.
func NewExtractor(maxBytes int64, maxChars int, recognizer TextRecognizer) *Extractor {
	return &Extractor{maxBytes: maxBytes, maxChars: maxChars, recognizer: recognizer}
}

// Ingest valida en orden tamaño, tipo y estructura, y devuelve el adjunto con
// su texto extraido. Un adjunto rechazado nunca se construye. Texto OCR vacio
// es exito, no error.
func (e *Extractor) Ingest(ctx context.Context, up Upload) (domain.Attachment, error) {
	if e.maxBytes > 0 && int64(len(up.Data)) > e.maxBytes {
		return domain.Attachment{}, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(up.Data), e.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	media, ok := allowedExtensions[ext]
	if !ok {
		return domain.Attachment{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	if len(up.Data) == 0 {
		return domain.Attachment{}, fmt.Errorf("%w: empty file", ErrCorruptFile)
	}

	// El tipo declarado debe coincidir con lo que los bytes realmente son.
	detected := mimetype.Detect(up.Data)
	if !matchesMedia(detected, media) {
		return domain.Attachment{}, fmt.Errorf("%w: content is %s, expected %s", ErrCorruptFile, detected.String(), media)
	}

	var (
		text string
		err  error
	)
	switch media {
	case domain.MediaPDF:
		text, err = extractPDFText(up.Data)
	case domain.MediaImage:
		text, err = e.recognizer.Recognize(ctx, up.Data)
	}
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	return domain.Attachment{
		Filename:      up.Filename,
		MediaType:     media,
		RawBytes:      up.Data,
		ExtractedText: truncate(text, e.maxChars),
	}, nil
}

func matchesMedia(detected *mimetype.MIME, media domain.MediaType) bool {
	switch media {
	case domain.MediaPDF:
		return detected.Is("application/pdf")
	case domain.MediaImage:
		return detected.Is("image/png") || detected.Is("image/jpeg")
	}
	return false
}

// truncate corta por runas para no partir un caracter multibyte.
func truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
