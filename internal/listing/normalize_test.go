package listing

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "diacritics stripped",
			text: "Región de Valparaíso",
			want: "region de valparaiso",
		},
		{
			name: "whitespace collapsed",
			text: "  Casa   en\nQuilpué ",
			want: "casa en quilpue",
		},
		{
			name: "enie folds to n",
			text: "Viña del Mar",
			want: "vina del mar",
		},
		{
			name: "already plain",
			text: "remate concursal",
			want: "remate concursal",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.text); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
