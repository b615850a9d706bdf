package patient

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	ref := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC), 36},
		{"birthday later this year", time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), 36},
		{"birthday tomorrow", time.Date(1990, time.June, 16, 0, 0, 0, 0, time.UTC), 35},
		{"born this year", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
		{"future dob clamps to zero", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeAt(tt.dob, ref); got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenderIsValid(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderOther, GenderUnknown} {
		if !g.IsValid() {
			t.Errorf("%q should be valid", g)
		}
	}
	if Gender("robot").IsValid() {
		t.Error("unexpected gender should be invalid")
	}
}
