package domain

// Domain etiqueta el sub-dominio de ingenieria que enmarca cada pregunta.
type Domain string

const (
	DomainGeneral        Domain = "general"
	DomainThermodynamics Domain = "thermodynamics"
	DomainFluidMechanics Domain = "fluid_mechanics"
	DomainMaterials      Domain = "materials"
	DomainMachineDesign  Domain = "machine_design"
	DomainManufacturing  Domain = "manufacturing"
	DomainDynamics       Domain = "dynamics"
	DomainControls       Domain = "controls"
)

// DomainInfo expone el par id/nombre que consume el endpoint de dominios.
type DomainInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog es el conjunto cerrado de dominios, en el orden publicado por la API.
// El orden es parte del contrato: /api/domains lo devuelve tal cual.
var Catalog = []DomainInfo{
	{ID: string(DomainGeneral), Name: "General Mechanical Engineering"},
	{ID: string(DomainThermodynamics), Name: "Thermodynamics"},
	{ID: string(DomainFluidMechanics), Name: "Fluid Mechanics"},
	{ID: string(DomainMaterials), Name: "Materials Science"},
	{ID: string(DomainMachineDesign), Name: "Machine Design"},
	{ID: string(DomainManufacturing), Name: "Manufacturing Processes"},
	{ID: string(DomainDynamics), Name: "Dynamics and Vibrations"},
	{ID: string(DomainControls), Name: "Control Systems"},
}

// IsValid indica si d pertenece al conjunto cerrado de dominios.
func (d Domain) IsValid() bool {
	for _, info := range Catalog {
		if info.ID == string(d) {
			return true
		}
	}
	return false
}
