package core

import (
	"strings"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "Grand Lara Resort|Antalya",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "turkish characters",
			content:  "Çeşme Alaçatı Butik Otel|İzmir",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("hotel1")
	id2 := IDFromContent("hotel2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestHotel_Document(t *testing.T) {
	h := Hotel{
		Name:        "Lara Palace",
		City:        "Antalya",
		District:    "Muratpaşa",
		Concept:     "Her Şey Dahil",
		Description: "Denize sıfır aile oteli",
		Amenities:   []string{"Havuz", "Aquapark"},
	}

	doc := h.Document()
	for _, part := range []string{"Lara Palace", "Antalya", "Muratpaşa", "Her Şey Dahil", "Denize sıfır", "Havuz", "Aquapark"} {
		if !strings.Contains(doc, part) {
			t.Errorf("Document() = %q, missing %q", doc, part)
		}
	}
}
