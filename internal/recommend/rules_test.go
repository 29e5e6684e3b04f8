package recommend

import "testing"

func TestForDescription(t *testing.T) {
	cases := []struct {
		name       string
		desc       string
		firstTitle string
		count      int
	}{
		{"blonde keywords", "thinking about going blonde for summer", "Dimensional blonding", 2},
		{"case insensitive", "BALAYAGE please", "Lived-in balayage", 2},
		{"copper", "warm copper tones", "Copper refresh", 1},
		{"protective multi-word", "want a silk press", "Protective styling consult", 2},
		{"grey spelling variants", "embracing the gray", "Grey blending", 1},
		{"first matching rule wins", "blonde or brunette, not sure", "Dimensional blonding", 2},
		{"no match", "just a regular haircut", "", 0},
		{"empty", "", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ForDescription(tc.desc)
			if got == nil {
				t.Fatal("must return empty slice, not nil")
			}
			if len(got) != tc.count {
				t.Fatalf("expected %d services, got %d", tc.count, len(got))
			}
			if tc.count > 0 && got[0].Title != tc.firstTitle {
				t.Errorf("expected %q first, got %q", tc.firstTitle, got[0].Title)
			}
		})
	}
}
