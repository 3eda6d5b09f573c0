// Package tipping implements the bulk-tip distribution strategies: policies
// that map a participant pool to an ordered sequence of tip instructions.
package tipping

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/leafsw/tipbot-go/internal/directory"
)

// Amount bounds per strategy. These ranges are part of the bot's observable
// behavior and must not drift.
const (
	rainAmount = 1
	wayneMax   = 50
	blaineMax  = 200
	craneMax   = 32
	reignMax   = 32
)

// Instruction is one tip to issue: recipient and amount.
type Instruction struct {
	To     directory.User
	Amount int
}

// Strategy turns a participant pool into a sequence of tip instructions.
// Randomness comes from the injected rng so tests can seed it. An empty
// pool always yields an empty plan.
type Strategy interface {
	// Name is the strategy keyword used in commands, logs and metrics.
	Name() string

	// Plan yields the tips to issue. tipperMention identifies the initiating
	// user; whether it is excluded from the draw is strategy-specific.
	Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction
}

// Rain tips every participant except the tipper exactly one coin, in
// shuffled order.
type Rain struct{}

// Name implements Strategy.
func (Rain) Name() string { return "rain" }

// Plan implements Strategy. The tipper never appears in the result.
func (Rain) Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction {
	pool := lo.Filter(participants, func(u directory.User, _ int) bool {
		return u.Mention != tipperMention
	})
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	plan := make([]Instruction, 0, len(pool))
	for _, user := range pool {
		plan = append(plan, Instruction{To: user, Amount: rainAmount})
	}
	return plan
}

// Wayne draws k recipients with replacement, k uniform in [1, N], each
// receiving a random 1-50 coins. Generosity runs out before everyone gets
// one, the same person can be drawn twice, and the tipper stays in the
// pool; all of that is intended.
type Wayne struct{}

// Name implements Strategy.
func (Wayne) Name() string { return "wayne" }

// Plan implements Strategy.
func (Wayne) Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction {
	if len(participants) == 0 {
		return nil
	}

	draws := rng.Intn(len(participants)) + 1
	plan := make([]Instruction, 0, draws)
	for i := 0; i < draws; i++ {
		plan = append(plan, Instruction{
			To:     participants[rng.Intn(len(participants))],
			Amount: rng.Intn(wayneMax) + 1,
		})
	}
	return plan
}

// Blaine tips one uniformly chosen participant a random 1-200 coins.
type Blaine struct{}

// Name implements Strategy.
func (Blaine) Name() string { return "blaine" }

// Plan implements Strategy.
func (Blaine) Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction {
	return pickOne(participants, rng, blaineMax)
}

// Crane tips one uniformly chosen participant a random 1-32 coins.
type Crane struct{}

// Name implements Strategy.
func (Crane) Name() string { return "crane" }

// Plan implements Strategy.
func (Crane) Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction {
	return pickOne(participants, rng, craneMax)
}

// Reign tips one uniformly chosen participant a random 1-32 coins.
type Reign struct{}

// Name implements Strategy.
func (Reign) Name() string { return "reign" }

// Plan implements Strategy.
func (Reign) Plan(participants []directory.User, tipperMention string, rng *rand.Rand) []Instruction {
	return pickOne(participants, rng, reignMax)
}

// pickOne selects a single recipient uniformly from the full pool (the
// tipper included) with an amount in [1, maxAmount].
func pickOne(participants []directory.User, rng *rand.Rand, maxAmount int) []Instruction {
	if len(participants) == 0 {
		return nil
	}
	return []Instruction{{
		To:     participants[rng.Intn(len(participants))],
		Amount: rng.Intn(maxAmount) + 1,
	}}
}
