package region

import "testing"

func TestDefaultCatalog_Complete(t *testing.T) {
	if err := DefaultCatalog.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := DefaultCatalog.Size(); got != 16 {
		t.Errorf("Size() = %d, want 16", got)
	}
	if got := len(Combinations()); got != 8 {
		t.Errorf("len(Combinations()) = %d, want 8", got)
	}
}

func TestCatalog_Preview(t *testing.T) {
	for _, combo := range Combinations() {
		preview, err := DefaultCatalog.Preview(combo.Region, combo.Period)
		if err != nil {
			t.Fatalf("Preview(%s) error = %v", combo.Key(), err)
		}
		if preview != DefaultCatalog[combo.Region][combo.Period][0] {
			t.Errorf("Preview(%s) = %+v, want first image of the pair", combo.Key(), preview)
		}
	}
}

func TestCatalog_LookupUnknown(t *testing.T) {
	if _, err := DefaultCatalog.Lookup(Region("central"), Day); err == nil {
		t.Error("Lookup(central, day) expected error")
	}
	if _, err := DefaultCatalog.Lookup(Western, TimePeriod("dusk")); err == nil {
		t.Error("Lookup(western, dusk) expected error")
	}
}

func TestCatalog_ValidateRejectsGaps(t *testing.T) {
	broken := Catalog{Western: {Day: {{Path: "a.png"}, {Path: "b.png"}}}}
	if err := broken.Validate(); err == nil {
		t.Error("Validate() on a partial catalog expected error")
	}
}

func TestParseCombination(t *testing.T) {
	tests := []struct {
		key     string
		want    Combination
		wantErr bool
	}{
		{key: "eastern-night", want: Combination{Region: Eastern, Period: Night}},
		{key: "Northern-DAY", want: Combination{Region: Northern, Period: Day}},
		{key: "central-day", wantErr: true},
		{key: "western-dusk", wantErr: true},
		{key: "western", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseCombination(tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCombination(%q) expected error, got %+v", tt.key, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCombination(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("ParseCombination(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}
