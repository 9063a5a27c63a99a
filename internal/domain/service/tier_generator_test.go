package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func countBest(t *testing.T, limit, left string) int {
	t.Helper()
	best := 0
	for _, tier := range GenerateTiers(dec(limit), dec(left)) {
		if tier.IsBest {
			best++
		}
	}
	return best
}

func TestGenerateTiers_FreshMonth(t *testing.T) {
	tiers := GenerateTiers(dec("1000"), dec("1000"))

	if len(tiers) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(tiers))
	}

	wantValues := []string{"250", "200", "150", "100", "50"}
	wantRemaining := []string{"250", "400", "550", "700", "850"}
	for i, tier := range tiers {
		assertDecimal(t, tier.Label+" value", wantValues[i], tier.Value)
		assertDecimal(t, tier.Label+" remaining", wantRemaining[i], tier.Remaining)
		if !tier.OnTrack {
			t.Errorf("%s: expected on track", tier.Label)
		}
		if tier.OverBudget {
			t.Errorf("%s: expected not over budget", tier.Label)
		}
	}

	if !tiers[0].IsBest {
		t.Error("expected the most generous tier to be best")
	}
	if tiers[0].Label != "Main Character Money" || tiers[4].Label != "Card Declined Era" {
		t.Errorf("unexpected tier order: %s .. %s", tiers[0].Label, tiers[4].Label)
	}
}

func TestGenerateTiers_ValuesStrictlyDecrease(t *testing.T) {
	limits := []string{"0.01", "0.37", "1", "7.77", "100", "1000", "2400", "99999.99", "123456789.12"}

	for _, limit := range limits {
		t.Run(limit, func(t *testing.T) {
			for _, left := range []string{limit, "0", "-250"} {
				tiers := GenerateTiers(dec(limit), dec(left))
				if len(tiers) != 5 {
					t.Fatalf("expected 5 tiers, got %d", len(tiers))
				}
				if !tiers[0].Value.IsPositive() {
					t.Errorf("left %s: expected a positive top tier, got %s", left, tiers[0].Value)
				}
				for i := 1; i < len(tiers); i++ {
					if !tiers[i].Value.LessThan(tiers[i-1].Value) {
						t.Errorf("left %s: tier %d value %s is not below tier %d value %s",
							left, i, tiers[i].Value, i-1, tiers[i-1].Value)
					}
				}
			}
		})
	}
}

func TestGenerateTiers_MidMonthOverspend(t *testing.T) {
	tiers := GenerateTiers(dec("1000"), dec("400"))

	wantRemaining := []string{"0", "0", "0", "100", "250"}
	wantOnTrack := []bool{false, false, false, true, true}
	for i, tier := range tiers {
		assertDecimal(t, tier.Label+" remaining", wantRemaining[i], tier.Remaining)
		if tier.OnTrack != wantOnTrack[i] {
			t.Errorf("%s: expected onTrack=%v", tier.Label, wantOnTrack[i])
		}
		if tier.OverBudget != tier.Remaining.IsZero() {
			t.Errorf("%s: overBudget must mirror a zero remainder", tier.Label)
		}
	}

	if !tiers[3].IsBest {
		t.Error("expected the 0.4 tier to be best")
	}
}

func TestGenerateTiers_EnvelopeExhausted(t *testing.T) {
	tiers := GenerateTiers(dec("0"), dec("0"))

	for i, tier := range tiers {
		assertDecimal(t, tier.Label+" value", "0", tier.Value)
		assertDecimal(t, tier.Label+" remaining", "0", tier.Remaining)
		if !tier.OverBudget {
			t.Errorf("%s: expected over budget", tier.Label)
		}
		if tier.IsBest != (i == len(tiers)-1) {
			t.Errorf("%s: unexpected isBest=%v", tier.Label, tier.IsBest)
		}
	}
}

func TestGenerateTiers_NothingAffordableFallsBackToFirst(t *testing.T) {
	// left is positive but below three weeks of even the smallest tier
	tiers := GenerateTiers(dec("1000"), dec("100"))

	for _, tier := range tiers {
		if tier.OnTrack {
			t.Errorf("%s: expected off track", tier.Label)
		}
	}
	if !tiers[0].IsBest {
		t.Error("expected the first tier to be best when none is on track")
	}
}

func TestGenerateTiers_ExactlyOneBest(t *testing.T) {
	cases := [][2]string{
		{"1000", "1000"},
		{"1000", "400"},
		{"1000", "100"},
		{"0", "0"},
		{"800", "0"},
		{"1234.56", "987.65"},
		{"50", "37.5"},
	}

	for _, c := range cases {
		if got := countBest(t, c[0], c[1]); got != 1 {
			t.Errorf("limit=%s left=%s: expected exactly one best tier, got %d", c[0], c[1], got)
		}
	}
}

func TestGenerateTiers_Bounds(t *testing.T) {
	tiers := GenerateTiers(dec("1234.56"), dec("321.09"))

	for _, tier := range tiers {
		if tier.Remaining.IsNegative() || tier.DailyRemaining.IsNegative() {
			t.Errorf("%s: negative remainder", tier.Label)
		}
		if tier.DailyRemaining.GreaterThan(tier.Remaining) {
			t.Errorf("%s: daily %s exceeds weekly %s", tier.Label, tier.DailyRemaining, tier.Remaining)
		}
		tight := tier.Remaining.LessThan(tier.Value.Mul(decimal.RequireFromString("0.5")))
		if tier.GettingTight != tight {
			t.Errorf("%s: gettingTight=%v, want %v", tier.Label, tier.GettingTight, tight)
		}
	}
}

func TestMarkSelected(t *testing.T) {
	t.Run("marks the matching tier", func(t *testing.T) {
		selected := dec("150")
		tiers := MarkSelected(GenerateTiers(dec("1000"), dec("1000")), &selected)

		for _, tier := range tiers {
			want := tier.Value.Round(2).Equal(selected)
			if tier.Selected != want {
				t.Errorf("%s: selected=%v, want %v", tier.Label, tier.Selected, want)
			}
		}
	})

	t.Run("nil clears selection", func(t *testing.T) {
		selected := dec("250")
		tiers := MarkSelected(GenerateTiers(dec("1000"), dec("1000")), &selected)
		tiers = MarkSelected(tiers, nil)

		for _, tier := range tiers {
			if tier.Selected {
				t.Errorf("%s: expected no selection", tier.Label)
			}
		}
	})

	t.Run("selection does not move the best tier", func(t *testing.T) {
		selected := dec("50")
		tiers := MarkSelected(GenerateTiers(dec("1000"), dec("1000")), &selected)

		best, ok := BestTier(tiers)
		if !ok || best.Label != "Main Character Money" {
			t.Errorf("expected best tier unchanged, got %s", best.Label)
		}
	})
}

func TestFindTier(t *testing.T) {
	tiers := GenerateTiers(dec("1000"), dec("1000"))

	if tier, ok := FindTier(tiers, dec("200")); !ok || tier.Label != "Soft Flex Zone" {
		t.Errorf("expected Soft Flex Zone, got %q (found=%v)", tier.Label, ok)
	}
	if _, ok := FindTier(tiers, dec("199.99")); ok {
		t.Error("expected no tier for an unlisted value")
	}

	// 1234.56 / 4 * 0.8 = 246.912, displayed as 246.91
	fractional := GenerateTiers(dec("1234.56"), dec("1234.56"))
	if tier, ok := FindTier(fractional, dec("246.91")); !ok || tier.Label != "Soft Flex Zone" {
		t.Errorf("expected a cent-rounded value to match, got %q (found=%v)", tier.Label, ok)
	}
	selected := dec("246.91")
	for _, tier := range MarkSelected(fractional, &selected) {
		if tier.Selected != (tier.Label == "Soft Flex Zone") {
			t.Errorf("%s: selected=%v", tier.Label, tier.Selected)
		}
	}
}
