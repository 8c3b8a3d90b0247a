package cli

import (
	"testing"

	"rematierra/internal/config"
)

func TestFilterFlagsBuildUsesConfiguredMatchFields(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	cfg = config.Default()
	cfg.MatchFields = []string{"deudor_nombre", "no_existe"}

	ff := filterFlags{keywords: []string{"spa"}}
	f, err := ff.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(f.MatchFields) != 1 || f.MatchFields[0] != "deudor_nombre" {
		t.Errorf("MatchFields = %v, want the configured [deudor_nombre]", f.MatchFields)
	}
}

func TestFilterFlagsBuildFlagOverridesConfiguredMatchFields(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	cfg = config.Default()
	cfg.MatchFields = []string{"deudor_nombre"}

	ff := filterFlags{keywords: []string{"spa"}, matchFields: []string{"tribunal"}}
	f, err := ff.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(f.MatchFields) != 1 || f.MatchFields[0] != "tribunal" {
		t.Errorf("MatchFields = %v, want the flag's [tribunal]", f.MatchFields)
	}
}
