package agents

import "testing"

func TestCouncilPersonasOrderAndIdentity(t *testing.T) {
	personas := CouncilPersonas()
	if len(personas) != 3 {
		t.Fatalf("CouncilPersonas() returned %d personas, want 3", len(personas))
	}

	tests := []struct {
		idx           int
		name          string
		fullName      string
		sectionHeader string
		temperature   float64
	}{
		{idx: 0, name: "Gary Vee", fullName: "Gary Vaynerchuk", sectionHeader: "=== GARY VAYNERCHUK (Gary Vee) ===", temperature: 0.7},
		{idx: 1, name: "Alex Hormozi", fullName: "Alex Hormozi", sectionHeader: "=== ALEX HORMOZI ===", temperature: 0.6},
		{idx: 2, name: "Iman Gadzhi", fullName: "Iman Gadzhi", sectionHeader: "=== IMAN GADZHI ===", temperature: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := personas[tt.idx]
			if p.Name != tt.name {
				t.Errorf("Name = %q, want %q", p.Name, tt.name)
			}
			if p.FullName != tt.fullName {
				t.Errorf("FullName = %q, want %q", p.FullName, tt.fullName)
			}
			if p.SectionHeader != tt.sectionHeader {
				t.Errorf("SectionHeader = %q, want %q", p.SectionHeader, tt.sectionHeader)
			}
			if p.Temperature != tt.temperature {
				t.Errorf("Temperature = %v, want %v", p.Temperature, tt.temperature)
			}
			if p.Identity == "" || p.Voice == "" {
				t.Error("persona missing identity or voice text")
			}
			if len(p.DomainKeywords) == 0 && len(p.SourceKeywords) == 0 {
				t.Error("persona has no evidence filter keywords")
			}
		})
	}
}
