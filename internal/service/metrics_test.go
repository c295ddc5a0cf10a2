package service

import (
	"aifit/fitness-app/internal/domain"
	"errors"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func baseProfile() domain.Profile {
	return domain.Profile{
		Age:           intPtr(30),
		Weight:        floatPtr(70),
		Height:        intPtr(175),
		Gender:        domain.GenderMale,
		Goal:          domain.GoalWeightLoss,
		ActivityLevel: domain.ActivityModerate,
	}
}

func TestCalculateCalorieTarget(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.Profile)
		want    int
		wantErr error
	}{
		{
			name:   "male moderate weight loss",
			mutate: func(p *domain.Profile) {},
			want:   2056, // BMR 1648.75 -> TDEE 2555.5625 -> -500
		},
		{
			name:   "male moderate muscle gain",
			mutate: func(p *domain.Profile) { p.Goal = domain.GoalMuscleGain },
			want:   2856, // TDEE + 300
		},
		{
			name: "maintenance keeps tdee",
			mutate: func(p *domain.Profile) {
				p.Goal = domain.GoalMaintenance
			},
			want: 2556,
		},
		{
			name: "female uses female coefficients",
			mutate: func(p *domain.Profile) {
				p.Gender = domain.GenderFemale
				p.Goal = domain.GoalMaintenance
			},
			want: 2298, // BMR 1482.75 * 1.55
		},
		{
			name: "other gender shares female branch",
			mutate: func(p *domain.Profile) {
				p.Gender = domain.GenderOther
				p.Goal = domain.GoalMaintenance
			},
			want: 2298,
		},
		{
			name: "unknown activity level falls back to moderate",
			mutate: func(p *domain.Profile) {
				p.ActivityLevel = domain.ActivityLevel("extreme")
			},
			want: 2056,
		},
		{
			name:    "missing weight",
			mutate:  func(p *domain.Profile) { p.Weight = nil },
			wantErr: ErrIncompleteProfile,
		},
		{
			name:    "missing height",
			mutate:  func(p *domain.Profile) { p.Height = nil },
			wantErr: ErrIncompleteProfile,
		},
		{
			name:    "missing age",
			mutate:  func(p *domain.Profile) { p.Age = nil },
			wantErr: ErrIncompleteProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := baseProfile()
			tt.mutate(&profile)

			got, err := CalculateCalorieTarget(profile)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d kcal, got %d", tt.want, got)
			}
		})
	}
}
