package pricing

import "testing"

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", Monthly, false},
		{"monthly", Monthly, false},
		{" Yearly ", Yearly, false},
		{"weekly", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToggleAndIndicator(t *testing.T) {
	if Toggle(Monthly) != Yearly || Toggle(Yearly) != Monthly {
		t.Fatal("toggle should switch between periods")
	}
	if Indicator(Monthly) != "2px" || Indicator(Yearly) != "163px" {
		t.Fatalf("unexpected indicator offsets: %s %s", Indicator(Monthly), Indicator(Yearly))
	}
}

func TestForReturnsOnlyTheActiveList(t *testing.T) {
	m := For(Monthly)
	y := For(Yearly)
	if m.Period != Monthly || y.Period != Yearly {
		t.Fatal("unexpected periods")
	}
	if len(m.Plans) != len(y.Plans) || len(m.Plans) == 0 {
		t.Fatalf("expected matching non-empty plan lists, got %d and %d", len(m.Plans), len(y.Plans))
	}
	if m.Plans[1].Price == y.Plans[1].Price {
		t.Fatal("expected yearly prices to differ from monthly prices")
	}

	m.Plans[0].Name = "changed"
	if For(Monthly).Plans[0].Name != "Basic" {
		t.Fatal("returned table must not alias the price list")
	}
}
