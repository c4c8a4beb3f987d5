package service

import (
	"strings"

	"mechassist/internal/domain"
)

// domainFraming es la instruccion corta que enmarca cada sub-dominio.
var domainFraming = map[domain.Domain]string{
	domain.DomainGeneral:        "Answer as an expert mechanical engineering assistant. Be technically accurate, use precise terminology and include numerical values when appropriate.",
	domain.DomainThermodynamics: "Answer as a thermodynamics specialist. Focus on heat transfer mechanisms, thermal systems, energy conversion and thermodynamic principles.",
	domain.DomainFluidMechanics: "Answer as a fluid mechanics expert. Focus on fluid behavior, flow analysis, pressure dynamics and hydraulic systems.",
	domain.DomainMaterials:      "Answer as a materials science expert. Focus on material composition, structure-property relationships, processing effects and selection criteria.",
	domain.DomainMachineDesign:  "Answer as a machine design specialist. Focus on design principles, component selection, stress analysis and manufacturability.",
	domain.DomainManufacturing:  "Answer as a manufacturing processes expert. Focus on process selection, optimization, tolerancing, tooling and production efficiency.",
	domain.DomainDynamics:       "Answer as a dynamics and vibration expert. Focus on motion analysis, mechanical vibrations, modal analysis and system dynamics.",
	domain.DomainControls:       "Answer as a control systems specialist. Focus on control theory, feedback mechanisms, system stability and controller design.",
}

// PromptBuilder serializa un PromptPayload al string exacto que recibe el LLM.
type PromptBuilder struct{}

// Render es determinista: payloads identicos producen bytes identicos.
// Orden fijo: encuadre de dominio, historial cronologico, adjunto, pregunta.
func (PromptBuilder) Render(payload domain.PromptPayload) string {
	framing, ok := domainFraming[payload.Domain]
	if !ok {
		framing = domainFraming[domain.DomainGeneral]
	}

	var sb strings.Builder
	sb.WriteString(framing)
	sb.WriteString("\n\n")

	if len(payload.WindowedHistory) > 0 {
		sb.WriteString("Previous conversation:\n")
		for _, turn := range payload.WindowedHistory {
			sb.WriteString("User: ")
			sb.WriteString(turn.Question)
			sb.WriteString("\nAssistant: ")
			sb.WriteString(turn.Response)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if payload.AttachmentText != "" {
		sb.WriteString("Attached document:\n")
		sb.WriteString(payload.AttachmentText)
		sb.WriteString("\n\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(payload.Question)
	sb.WriteString("\nAssistant:")
	return sb.String()
}
