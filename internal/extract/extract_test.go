package extract

import (
	"testing"
)

func TestFromTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   Fields
	}{
		{
			name:   "first model token wins",
			tokens: []string{"Model X", "Model Y"},
			want:   Fields{ModelName: "Model X"},
		},
		{
			name:   "first qualifying price wins",
			tokens: []string{"Acme", "$19.99", "42"},
			want:   Fields{Brand: "Acme", Price: "$19.99"},
		},
		{
			name:   "numeric tokens never become a brand",
			tokens: []string{"42", "Acme", "Beta"},
			want:   Fields{Brand: "Acme", Price: "42"},
		},
		{
			name:   "short alphabetic tokens are skipped for brand",
			tokens: []string{"the", "big", "Contoso"},
			want:   Fields{Brand: "Contoso"},
		},
		{
			name:   "model prefix is matched case-insensitively",
			tokens: []string{"MODEL-B70", "Zenith"},
			want:   Fields{ModelName: "MODEL-B70", Brand: "Zenith"},
		},
		{
			name:   "model rule outranks price rule for the same token",
			tokens: []string{"Model$900"},
			want:   Fields{ModelName: "Model$900"},
		},
		{
			name:   "comma separated digits count as a price",
			tokens: []string{"1,299.00", "Luxor"},
			want:   Fields{Price: "1,299.00", Brand: "Luxor"},
		},
		{
			name:   "punctuation-only token is not a price",
			tokens: []string{"...", ",,,"},
			want:   Fields{},
		},
		{
			name:   "mixed alphanumeric token matches nothing",
			tokens: []string{"X200b"},
			want:   Fields{},
		},
		{
			name:   "second model token no longer falls through to other rules",
			tokens: []string{"Model-A", "Model-B", "Stella"},
			want:   Fields{ModelName: "Model-A", Brand: "Stella"},
		},
		{
			name:   "empty input",
			tokens: nil,
			want:   Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTokens(tt.tokens)
			if got != tt.want {
				t.Errorf("FromTokens(%v) = %+v, want %+v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestFromTextSplitsOnWhitespace(t *testing.T) {
	got := FromText("  Contoso\tModel-Z  \n $5.00 ")
	want := Fields{Brand: "Contoso", ModelName: "Model-Z", Price: "$5.00"}
	if got != want {
		t.Errorf("FromText = %+v, want %+v", got, want)
	}
}

func TestFromTokensIsDeterministic(t *testing.T) {
	tokens := []string{"Acme", "Model-Q", "$10", "99", "Widget"}
	first := FromTokens(tokens)
	for i := 0; i < 100; i++ {
		if got := FromTokens(tokens); got != first {
			t.Fatalf("Run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}
