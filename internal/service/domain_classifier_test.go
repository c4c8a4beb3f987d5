package service

import (
	"testing"

	"mechassist/internal/domain"
)

func TestDomainClassifier_Classify(t *testing.T) {
	var clf DomainClassifier

	t.Run("sin keyword cae en general", func(t *testing.T) {
		got := clf.Classify("What are the types of gear systems?")
		if got != domain.DomainGeneral {
			t.Fatalf("expected general, got %s", got)
		}
	})

	t.Run("primera coincidencia gana", func(t *testing.T) {
		// "forming" (manufactura) aparece antes que "metal" (materiales) en la
		// tabla, asi que el proceso manda sobre el material.
		got := clf.Classify("Explain forming processes for metals")
		if got != domain.DomainManufacturing {
			t.Fatalf("expected manufacturing, got %s", got)
		}
	})

	t.Run("insensible a mayusculas", func(t *testing.T) {
		if got := clf.Classify("CNC Machining basics"); got != domain.DomainManufacturing {
			t.Fatalf("expected manufacturing, got %s", got)
		}
		if got := clf.Classify("STAINLESS grades"); got != domain.DomainMaterials {
			t.Fatalf("expected materials, got %s", got)
		}
	})

	t.Run("determinista", func(t *testing.T) {
		inputs := []string{
			"How does a heat exchanger work?",
			"Pressure drop in a hydraulic circuit",
			"Shaft and bearing selection for a pump drive",
			"Tell me a joke",
		}
		for _, in := range inputs {
			first := clf.Classify(in)
			for i := 0; i < 20; i++ {
				if got := clf.Classify(in); got != first {
					t.Fatalf("classification of %q changed: %s then %s", in, first, got)
				}
			}
		}
	})

	t.Run("cobertura de dominios", func(t *testing.T) {
		cases := map[string]domain.Domain{
			"entropy of an ideal gas":               domain.DomainThermodynamics,
			"reynolds number for pipe flow":         domain.DomainFluidMechanics,
			"fatigue life of a rotating beam":       domain.DomainMaterials,
			"resonance in a cantilever beam":        domain.DomainDynamics,
			"pid tuning for a temperature loop":     domain.DomainControls,
			"tolerance stack-up in an assembly":     domain.DomainMachineDesign,
			"choosing an aluminium alloy for frame": domain.DomainMaterials,
		}
		for in, want := range cases {
			if got := clf.Classify(in); got != want {
				t.Fatalf("Classify(%q) = %s, want %s", in, got, want)
			}
		}
	})

	t.Run("siempre es miembro del conjunto", func(t *testing.T) {
		for _, in := range []string{"", "   ", "hola", "design of a gearbox housing"} {
			if got := clf.Classify(in); !got.IsValid() {
				t.Fatalf("Classify(%q) returned invalid domain %q", in, got)
			}
		}
	})
}
