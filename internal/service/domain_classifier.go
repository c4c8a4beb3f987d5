package service

import (
	"strings"

	"mechassist/internal/domain"
)

// keywordEntry asocia una palabra clave (en minusculas) con su dominio.
type keywordEntry struct {
	keyword string
	domain  domain.Domain
}

// keywordTable es la tabla ordenada de clasificacion. El orden ES el contrato:
// gana la primera coincidencia, asi que reordenar entradas cambia resultados.
// Cualquier cambio aqui debe tratarse como un cambio de comportamiento versionado.
var keywordTable = []keywordEntry{
	// Manufactura primero: sus terminos suelen coexistir con nombres de materiales
	// ("forming processes for metals") y el proceso manda sobre el material.
	{"cnc", domain.DomainManufacturing},
	{"machining", domain.DomainManufacturing},
	{"milling", domain.DomainManufacturing},
	{"drilling", domain.DomainManufacturing},
	{"injection molding", domain.DomainManufacturing},
	{"3d print", domain.DomainManufacturing},
	{"additive manufacturing", domain.DomainManufacturing},
	{"casting", domain.DomainManufacturing},
	{"forging", domain.DomainManufacturing},
	{"welding", domain.DomainManufacturing},
	{"forming", domain.DomainManufacturing},
	{"stamping", domain.DomainManufacturing},
	{"extrusion", domain.DomainManufacturing},
	{"sheet metal", domain.DomainManufacturing},
	{"lathe", domain.DomainManufacturing},
	{"tooling", domain.DomainManufacturing},
	{"fabrication", domain.DomainManufacturing},
	{"manufactur", domain.DomainManufacturing},

	{"stainless", domain.DomainMaterials},
	{"carbon steel", domain.DomainMaterials},
	{"steel", domain.DomainMaterials},
	{"aluminum", domain.DomainMaterials},
	{"aluminium", domain.DomainMaterials},
	{"titanium", domain.DomainMaterials},
	{"copper", domain.DomainMaterials},
	{"brass", domain.DomainMaterials},
	{"alloy", domain.DomainMaterials},
	{"composite", domain.DomainMaterials},
	{"polymer", domain.DomainMaterials},
	{"metal", domain.DomainMaterials},
	{"heat treatment", domain.DomainMaterials},
	{"hardness", domain.DomainMaterials},
	{"fatigue", domain.DomainMaterials},
	{"corrosion", domain.DomainMaterials},
	{"material", domain.DomainMaterials},

	{"thermodynamic", domain.DomainThermodynamics},
	{"heat transfer", domain.DomainThermodynamics},
	{"heat exchanger", domain.DomainThermodynamics},
	{"entropy", domain.DomainThermodynamics},
	{"enthalpy", domain.DomainThermodynamics},
	{"carnot", domain.DomainThermodynamics},
	{"refrigeration", domain.DomainThermodynamics},
	{"thermal", domain.DomainThermodynamics},

	{"fluid", domain.DomainFluidMechanics},
	{"hydraulic", domain.DomainFluidMechanics},
	{"aerodynamic", domain.DomainFluidMechanics},
	{"reynolds", domain.DomainFluidMechanics},
	{"bernoulli", domain.DomainFluidMechanics},
	{"viscosity", domain.DomainFluidMechanics},
	{"turbulen", domain.DomainFluidMechanics},
	{"flow rate", domain.DomainFluidMechanics},
	{"pump", domain.DomainFluidMechanics},

	{"machine design", domain.DomainMachineDesign},
	{"shaft", domain.DomainMachineDesign},
	{"bearing", domain.DomainMachineDesign},
	{"coupling", domain.DomainMachineDesign},
	{"fastener", domain.DomainMachineDesign},
	{"tolerance", domain.DomainMachineDesign},
	{"cad model", domain.DomainMachineDesign},
	{"assembly", domain.DomainMachineDesign},
	{"design", domain.DomainMachineDesign},

	{"vibration", domain.DomainDynamics},
	{"kinematic", domain.DomainDynamics},
	{"resonance", domain.DomainDynamics},
	{"damping", domain.DomainDynamics},
	{"modal analysis", domain.DomainDynamics},
	{"dynamics", domain.DomainDynamics},

	{"control system", domain.DomainControls},
	{"pid control", domain.DomainControls},
	{"pid tuning", domain.DomainControls},
	{"feedback", domain.DomainControls},
	{"automation", domain.DomainControls},
	{"actuator", domain.DomainControls},
	{"instrumentation", domain.DomainControls},
	{"controller", domain.DomainControls},
}

// DomainClassifier asigna un dominio a partir del texto de la pregunta.
// Es una funcion pura de la tabla estatica: sin estado, sin azar.
type DomainClassifier struct{}

// Classify recorre la tabla en orden y devuelve el dominio de la primera
// palabra clave contenida en el texto; sin coincidencias devuelve general.
func (DomainClassifier) Classify(text string) domain.Domain {
	lowered := strings.ToLower(text)
	for _, entry := range keywordTable {
		if strings.Contains(lowered, entry.keyword) {
			return entry.domain
		}
	}
	return domain.DomainGeneral
}
