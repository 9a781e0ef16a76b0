package cmd

import (
	"testing"

	"github.com/freeprice/goldspot"
)

func TestSelected(t *testing.T) {
	enabled := goldspot.SourceConfig{Name: "worldbank", Enabled: true}
	disabled := goldspot.SourceConfig{Name: "fred", Enabled: false}

	tests := []struct {
		name string
		src  goldspot.SourceConfig
		only string
		want bool
	}{
		{"enabled source, no selection", enabled, "", true},
		{"disabled source, no selection", disabled, "", false},
		{"enabled source, selected", enabled, "worldbank", true},
		{"enabled source, other selected", enabled, "fred", false},
		{"disabled source, selected explicitly", disabled, "fred", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := selected(tc.src, tc.only); got != tc.want {
				t.Errorf("selected(%q, only=%q) = %v, want %v", tc.src.Name, tc.only, got, tc.want)
			}
		})
	}
}
