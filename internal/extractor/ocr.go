package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TextRecognizer define la capacidad de reconocer texto en una imagen.
// Es una caja negra reemplazable, igual que el cliente de inferencia.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractRecognizer implementa TextRecognizer con tesseract via gosseract.
type TesseractRecognizer struct {
	languages []string
}

func NewTesseractRecognizer(languages ...string) *TesseractRecognizer {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractRecognizer{languages: languages}
}

// Recognize corre OCR sobre la imagen. Una imagen valida sin texto devuelve
// cadena vacia y nil.
func (r *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("run ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}
