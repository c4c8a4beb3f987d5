package service

import (
	"html"
	"strings"
)

// EmptyResponsePlaceholder se devuelve cuando el LLM no produjo texto.
const EmptyResponsePlaceholder = "No response was generated. Please try again."

// FormattedResponse lleva el marcado listo para mostrar y el texto crudo en paralelo.
type FormattedResponse struct {
	HTML string `json:"html"`
	Raw  string `json:"raw"`
}

// ResponseFormatter convierte la respuesta cruda del LLM en marcado seguro.
// Es una maquina de estados por linea con tres estados (fuera de bloque,
// parrafo, lista); las reglas se aplican en una sola pasada y son idempotentes
// cuando ya no quedan lineas con guion sin envolver.
type ResponseFormatter struct{}

type formatterState int

const (
	stateOutside formatterState = iota
	stateParagraph
	stateList
)

// Format aplica, en orden fijo: lineas en blanco cierran parrafos, saltos
// simples se vuelven <br> dentro del parrafo, corridas contiguas de lineas con
// guion se envuelven en una lista. Entrada vacia produce el placeholder, nunca
// un error.
func (ResponseFormatter) Format(raw string) FormattedResponse {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return FormattedResponse{
			HTML: "<p>" + EmptyResponsePlaceholder + "</p>",
			Raw:  EmptyResponsePlaceholder,
		}
	}

	escaped := html.EscapeString(trimmed)
	lines := strings.Split(escaped, "\n")

	var out strings.Builder
	var para []string
	state := stateOutside

	closeBlock := func() {
		switch state {
		case stateParagraph:
			out.WriteString("<p>")
			out.WriteString(strings.Join(para, "<br>"))
			out.WriteString("</p>")
			para = para[:0]
		case stateList:
			out.WriteString("</ul>")
		}
		state = stateOutside
	}

	for _, line := range lines {
		text := strings.TrimSpace(line)
		switch {
		case text == "":
			closeBlock()
		case strings.HasPrefix(text, "- "), text == "-":
			if state != stateList {
				closeBlock()
				out.WriteString("<ul>")
				state = stateList
			}
			out.WriteString("<li>")
			out.WriteString(strings.TrimSpace(strings.TrimPrefix(text, "-")))
			out.WriteString("</li>")
		default:
			if state == stateList {
				closeBlock()
			}
			para = append(para, text)
			state = stateParagraph
		}
	}
	closeBlock()

	return FormattedResponse{HTML: out.String(), Raw: trimmed}
}
