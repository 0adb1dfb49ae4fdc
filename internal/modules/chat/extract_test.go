package chat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractLocations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single marker",
			text: "You will love it. LOCATION: Paris, France\nEnjoy!",
			want: []string{"Paris, France"},
		},
		{
			name: "trailing prose stays in the country",
			text: "You might enjoy ... LOCATION: Paris, France ... and more",
			want: []string{"Paris, France ... and more"},
		},
		{
			name: "case insensitive",
			text: "location:   Kyoto ,   Japan  ",
			want: []string{"Kyoto, Japan"},
		},
		{
			name: "multiple markers keep order and duplicates",
			text: "LOCATION: Tokyo, Japan\nLOCATION: Seoul, South Korea\nLOCATION: Tokyo, Japan",
			want: []string{"Tokyo, Japan", "Seoul, South Korea", "Tokyo, Japan"},
		},
		{
			name: "bracketed format from the prompt",
			text: "LOCATION: [Lisbon, Portugal]",
			want: []string{"Lisbon, Portugal"},
		},
		{
			name: "markdown emphasis",
			text: "**LOCATION:** Rome, Italy",
			want: []string{"Rome, Italy"},
		},
		{
			name: "korean names",
			text: "추천 여행지입니다. LOCATION: 부산, 대한민국",
			want: []string{"부산, 대한민국"},
		},
		{
			name: "country runs to end of line",
			text: "LOCATION: Cusco, Peru (gateway to Machu Picchu)",
			want: []string{"Cusco, Peru (gateway to Machu Picchu)"},
		},
		{name: "no marker", text: "Paris, France is lovely in spring.", want: nil},
		{name: "marker without comma", text: "LOCATION: Atlantis", want: nil},
		{name: "empty", text: "", want: nil},
		{name: "empty segments", text: "LOCATION: [, ]", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLocations(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractLocations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractLocations_DuplicatesCollapseOnMerge(t *testing.T) {
	conv := NewConversation("en")
	conv.MergeLocations(ExtractLocations("LOCATION: Tokyo, Japan ... LOCATION: Tokyo, Japan"))

	if diff := cmp.Diff([]string{"Tokyo, Japan"}, conv.Locations); diff != "" {
		t.Errorf("locations mismatch (-want +got):\n%s", diff)
	}
}
