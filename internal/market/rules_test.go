package market

import (
	"errors"
	"testing"
)

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Rules)
		wantErr bool
	}{
		{"defaults", func(r *Rules) {}, false},
		{"squad range inverted", func(r *Rules) { r.MinSquadSize = 31 }, true},
		{"position minimums too large", func(r *Rules) { r.MinOutfielders = 29 }, true},
		{"no message ticks", func(r *Rules) { r.MessageTicks = 0 }, true},
		{"cooldown range inverted", func(r *Rules) { r.SellerRejectionCooldownMin = 9 }, true},
		{"zero significant figures", func(r *Rules) { r.SignificantFigures = 0 }, true},
		{"most significant figures", func(r *Rules) { r.SignificantFigures = 18 }, false},
		{"too many significant figures", func(r *Rules) { r.SignificantFigures = 19 }, true},
		{"counter ratio below one", func(r *Rules) { r.CounterRatio = 0.9 }, true},
		{"seller band inverted", func(r *Rules) { r.Seller.MaxMultiplier = r.Seller.MinMultiplier / 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.modify(&rules)
			err := rules.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("Validate() = %v, want ErrInvalidRules", err)
			}
		})
	}
}
