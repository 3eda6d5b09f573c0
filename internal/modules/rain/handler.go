// Package rain implements the bulk tipping commands ("make it rain" and its
// novelty variants): announce, resolve the room's active participants, plan
// a distribution, then issue one ledger tip per instruction with the
// matching reply emitted before each call.
package rain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/leafsw/tipbot-go/internal/bot"
	"github.com/leafsw/tipbot-go/internal/directory"
	domerrors "github.com/leafsw/tipbot-go/internal/errors"
	"github.com/leafsw/tipbot-go/internal/identity"
	"github.com/leafsw/tipbot-go/internal/ledger"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
	"github.com/leafsw/tipbot-go/internal/roster"
	"github.com/leafsw/tipbot-go/internal/tipping"
)

// ModuleName identifies this handler in logs, metrics and the registry.
const ModuleName = "rain"

// variant binds a command kind to its strategy and reply texts.
type variant struct {
	strategy tipping.Strategy
	announce func(senderName string) string
	perTip   func(inst tipping.Instruction) string
	images   []string
}

// Handler handles the five bulk tipping commands.
type Handler struct {
	selector  *roster.Selector
	directory directory.Gateway
	ledger    ledger.Gateway
	rng       *rand.Rand
	logger    *logger.Logger
	metrics   *metrics.Metrics

	variants map[bot.Kind]variant
}

// NewHandler creates a new bulk tipping handler. The rng is the single
// randomness source for strategy plans and image picks; seed it in tests
// for determinism. The metrics recorder is optional.
func NewHandler(
	selector *roster.Selector,
	dir directory.Gateway,
	led ledger.Gateway,
	rng *rand.Rand,
	log *logger.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		selector:  selector,
		directory: dir,
		ledger:    led,
		rng:       rng,
		logger:    log.WithModule(ModuleName),
		metrics:   m,
		variants: map[bot.Kind]variant{
			bot.KindMakeItRain: {
				strategy: tipping.Rain{},
				announce: func(name string) string { return fmt.Sprintf("%s is makin' it rain!", name) },
				perTip: func(inst tipping.Instruction) string {
					return fmt.Sprintf("A coin for %s!", inst.To.Name)
				},
				images: rainImages,
			},
			bot.KindMakeItWayne: {
				strategy: tipping.Wayne{},
				announce: func(name string) string { return fmt.Sprintf("Watch out! %s is makin' it Wayne!", name) },
				perTip: func(inst tipping.Instruction) string {
					return fmt.Sprintf("%d for %s!", inst.Amount, inst.To.Name)
				},
				images: wayneImages,
			},
			bot.KindMakeItBlaine: {
				strategy: tipping.Blaine{},
				announce: func(name string) string {
					return fmt.Sprintf("What's that behind your ear? %s is makin' it Blaine!", name)
				},
				perTip: func(inst tipping.Instruction) string {
					return fmt.Sprintf("Someone just received %d!", inst.Amount)
				},
				images: blaineImages,
			},
			bot.KindMakeItCrane: {
				strategy: tipping.Crane{},
				announce: func(name string) string { return fmt.Sprintf("%s is makin' it Frasier Crane!", name) },
				perTip: func(inst tipping.Instruction) string {
					return fmt.Sprintf("%s just received %d!", inst.To.Name, inst.Amount)
				},
				images: craneImages,
			},
			bot.KindMakeItReign: {
				strategy: tipping.Reign{},
				announce: func(name string) string { return fmt.Sprintf("%s is makin' it Reign!", name) },
				perTip: func(inst tipping.Instruction) string {
					return fmt.Sprintf("%s just received %d!", inst.To.Name, inst.Amount)
				},
				images: reignImages,
			},
		},
	}
}

// Name returns the module name.
func (h *Handler) Name() string {
	return ModuleName
}

// CanHandle reports whether the kind is a bulk tipping command.
func (h *Handler) CanHandle(kind bot.Kind) bool {
	_, ok := h.variants[kind]
	return ok
}

// Handle executes one bulk tipping command. Replies are accumulated in the
// exact order they would be posted: the announcement first, then each
// per-tip line immediately before its ledger call. A failed ledger call
// stops the fan-out; tips already issued stay issued.
func (h *Handler) Handle(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	v, ok := h.variants[inv.Command.Kind]
	if !ok {
		return nil, fmt.Errorf("rain: unsupported command %s", inv.Command.Kind)
	}

	log := h.logger.WithCommand(inv.Command.Kind.String())

	replies := []bot.Reply{{
		Text:     v.announce(inv.Sender.Name),
		ImageURL: v.images[h.rng.Intn(len(v.images))],
	}}

	srcID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return replies, err
	}

	participants, err := h.selector.ActiveMembers(ctx, inv.RoomJID)
	if err != nil {
		return replies, err
	}

	plan := v.strategy.Plan(participants, inv.Sender.Mention, h.rng)
	log.WithField("participants", len(participants)).
		WithField("tips", len(plan)).
		Info("distributing tips")

	for _, inst := range plan {
		replies = append(replies, bot.Reply{Text: v.perTip(inst)})

		destID := identity.Resolve(inst.To.Email)
		log.WithField("to", destID).WithField("amount", inst.Amount).Debug("tipping")

		if _, err := h.ledger.Tip(ctx, srcID, destID, inst.Amount); err != nil {
			return replies, err
		}
		if h.metrics != nil {
			h.metrics.RecordTip(v.strategy.Name(), inst.Amount)
		}
	}

	return replies, nil
}

// senderAccount resolves the invoking user's account identifier, falling
// back to a directory lookup when the platform withheld the email.
func (h *Handler) senderAccount(ctx context.Context, sender bot.Sender) (string, error) {
	if sender.Email != "" {
		return identity.Resolve(sender.Email), nil
	}

	users, err := h.directory.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, user := range users {
		if user.Mention == sender.Mention {
			return identity.Resolve(user.Email), nil
		}
	}
	return "", domerrors.Wrap(ModuleName, "resolve_sender",
		domerrors.ErrUserNotFound,
		fmt.Sprintf("I don't know anyone called @%s.", sender.Mention))
}

var _ bot.Handler = (*Handler)(nil)
