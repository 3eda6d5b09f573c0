package tipping

import (
	"math/rand"
	"testing"

	"github.com/leafsw/tipbot-go/internal/directory"
)

func poolOf(mentions ...string) []directory.User {
	users := make([]directory.User, 0, len(mentions))
	for i, m := range mentions {
		users = append(users, directory.User{
			UserID:  i + 1,
			Name:    m,
			Mention: m,
			Email:   m + "@x.com",
			Status:  directory.StatusAvailable,
		})
	}
	return users
}

func TestRain_ExcludesTipper(t *testing.T) {
	pool := poolOf("Tipper", "Ann")

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		plan := Rain{}.Plan(pool, "Tipper", rng)

		if len(plan) != 1 {
			t.Fatalf("seed %d: len(plan) = %d, want 1", seed, len(plan))
		}
		if plan[0].To.Mention != "Ann" {
			t.Errorf("seed %d: recipient = %q, want Ann", seed, plan[0].To.Mention)
		}
		if plan[0].Amount != 1 {
			t.Errorf("seed %d: amount = %d, want 1", seed, plan[0].Amount)
		}
	}
}

func TestRain_CoversEveryoneOnce(t *testing.T) {
	pool := poolOf("Tipper", "Ann", "Bea", "Carl", "Dee")
	rng := rand.New(rand.NewSource(42))

	plan := Rain{}.Plan(pool, "Tipper", rng)

	if len(plan) != 4 {
		t.Fatalf("len(plan) = %d, want 4", len(plan))
	}
	seen := make(map[string]int)
	for _, inst := range plan {
		seen[inst.To.Mention]++
		if inst.Amount != 1 {
			t.Errorf("amount = %d, want 1", inst.Amount)
		}
	}
	for _, m := range []string{"Ann", "Bea", "Carl", "Dee"} {
		if seen[m] != 1 {
			t.Errorf("recipient %q appeared %d times, want 1", m, seen[m])
		}
	}
	if seen["Tipper"] != 0 {
		t.Error("tipper received a tip from rain")
	}
}

func TestWayne_Bounds(t *testing.T) {
	pool := poolOf("Tipper", "Ann", "Bea", "Carl")

	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		plan := Wayne{}.Plan(pool, "Tipper", rng)

		if len(plan) < 1 || len(plan) > len(pool) {
			t.Fatalf("seed %d: len(plan) = %d, want within [1,%d]", seed, len(plan), len(pool))
		}
		for _, inst := range plan {
			if inst.Amount < 1 || inst.Amount > 50 {
				t.Errorf("seed %d: amount = %d, want within [1,50]", seed, inst.Amount)
			}
		}
	}
}

func TestWayne_TipperStaysInPool(t *testing.T) {
	pool := poolOf("Tipper", "Ann")

	hitTipper := false
	for seed := int64(0); seed < 200 && !hitTipper; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, inst := range (Wayne{}).Plan(pool, "Tipper", rng) {
			if inst.To.Mention == "Tipper" {
				hitTipper = true
			}
		}
	}
	if !hitTipper {
		t.Error("wayne never drew the tipper across 200 seeds; tipper should not be filtered")
	}
}

func TestWayne_DuplicatesPermitted(t *testing.T) {
	pool := poolOf("Ann", "Bea")

	sawDuplicate := false
	for seed := int64(0); seed < 200 && !sawDuplicate; seed++ {
		rng := rand.New(rand.NewSource(seed))
		plan := Wayne{}.Plan(pool, "Tipper", rng)
		seen := make(map[string]int)
		for _, inst := range plan {
			seen[inst.To.Mention]++
			if seen[inst.To.Mention] > 1 {
				sawDuplicate = true
			}
		}
	}
	if !sawDuplicate {
		t.Error("wayne never drew the same recipient twice across 200 seeds; draws should be with replacement")
	}
}

func TestSingleRandomStrategies(t *testing.T) {
	tests := []struct {
		strategy  Strategy
		maxAmount int
	}{
		{Blaine{}, 200},
		{Crane{}, 32},
		{Reign{}, 32},
	}

	pool := poolOf("Tipper", "Ann", "Bea")

	for _, tt := range tests {
		t.Run(tt.strategy.Name(), func(t *testing.T) {
			for seed := int64(0); seed < 100; seed++ {
				rng := rand.New(rand.NewSource(seed))
				plan := tt.strategy.Plan(pool, "Tipper", rng)

				if len(plan) != 1 {
					t.Fatalf("seed %d: len(plan) = %d, want exactly 1", seed, len(plan))
				}
				if plan[0].Amount < 1 || plan[0].Amount > tt.maxAmount {
					t.Errorf("seed %d: amount = %d, want within [1,%d]", seed, plan[0].Amount, tt.maxAmount)
				}
			}
		})
	}
}

func TestSingleRandomStrategies_TipperEligible(t *testing.T) {
	pool := poolOf("Tipper", "Ann")

	for _, strategy := range []Strategy{Blaine{}, Crane{}, Reign{}} {
		hitTipper := false
		for seed := int64(0); seed < 200 && !hitTipper; seed++ {
			rng := rand.New(rand.NewSource(seed))
			plan := strategy.Plan(pool, "Tipper", rng)
			if plan[0].To.Mention == "Tipper" {
				hitTipper = true
			}
		}
		if !hitTipper {
			t.Errorf("%s never selected the tipper across 200 seeds; tipper should be eligible", strategy.Name())
		}
	}
}

func TestEmptyPoolYieldsEmptyPlan(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, strategy := range []Strategy{Rain{}, Wayne{}, Blaine{}, Crane{}, Reign{}} {
		if plan := strategy.Plan(nil, "Tipper", rng); len(plan) != 0 {
			t.Errorf("%s: plan for empty pool = %v, want empty", strategy.Name(), plan)
		}
	}
}

func TestRain_DoesNotMutateInput(t *testing.T) {
	pool := poolOf("Tipper", "Ann", "Bea", "Carl")
	original := make([]directory.User, len(pool))
	copy(original, pool)

	rng := rand.New(rand.NewSource(7))
	_ = Rain{}.Plan(pool, "Tipper", rng)

	for i := range pool {
		if pool[i].Mention != original[i].Mention {
			t.Fatalf("input slice mutated at %d: %q != %q", i, pool[i].Mention, original[i].Mention)
		}
	}
}
