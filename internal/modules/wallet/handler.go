// Package wallet implements the account commands: register, address,
// balance, history, tip and withdraw. Each command is a thin orchestration
// over the ledger gateway, with identities resolved from directory emails.
package wallet

import (
	"context"
	"fmt"
	"strconv"

	"github.com/leafsw/tipbot-go/internal/bot"
	"github.com/leafsw/tipbot-go/internal/directory"
	domerrors "github.com/leafsw/tipbot-go/internal/errors"
	"github.com/leafsw/tipbot-go/internal/identity"
	"github.com/leafsw/tipbot-go/internal/ledger"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
)

// ModuleName identifies this handler in logs, metrics and the registry.
const ModuleName = "wallet"

// Fixed confirmation texts. The register reply is sent regardless of the
// ledger response body; the service performs no error checking on that call.
const (
	registeredReply = "You have been registered."
	tipSentReply    = "Tip sent! Such kind shibe."
)

const helpText = `tipbot register - register to use tipbot (only needed if you have never been tipped)
tipbot address - show the address you can send coins to for tipping
tipbot balance - show your current balance
tipbot history - show transaction history
tipbot tip @mentionName amount - tip someone coins e.g. tipbot tip @ExampleUser 10
tipbot withdraw personalAddress - withdraw your tips into your personal wallet
tipbot make it rain - tip every active participant in the room`

// Handler handles account-level wallet commands.
type Handler struct {
	directory directory.Gateway
	ledger    ledger.Gateway
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewHandler creates a new wallet handler. The metrics recorder is optional.
func NewHandler(dir directory.Gateway, led ledger.Gateway, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		directory: dir,
		ledger:    led,
		logger:    log.WithModule(ModuleName),
		metrics:   m,
	}
}

// Name returns the module name.
func (h *Handler) Name() string {
	return ModuleName
}

// CanHandle reports whether the kind is an account command.
func (h *Handler) CanHandle(kind bot.Kind) bool {
	switch kind {
	case bot.KindRegister, bot.KindAddress, bot.KindBalance, bot.KindHistory,
		bot.KindTip, bot.KindWithdraw, bot.KindHelp:
		return true
	default:
		return false
	}
}

// Handle executes one account command.
func (h *Handler) Handle(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	switch inv.Command.Kind {
	case bot.KindRegister:
		return h.register(ctx, inv)
	case bot.KindAddress:
		return h.address(ctx, inv)
	case bot.KindBalance:
		return h.balance(ctx, inv)
	case bot.KindHistory:
		return h.history(ctx, inv)
	case bot.KindTip:
		return h.tip(ctx, inv)
	case bot.KindWithdraw:
		return h.withdraw(ctx, inv)
	case bot.KindHelp:
		return []bot.Reply{{Text: helpText}}, nil
	default:
		return nil, fmt.Errorf("wallet: unsupported command %s", inv.Command.Kind)
	}
}

func (h *Handler) register(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	accountID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}

	h.logger.WithField("account", accountID).Info("registering account")
	body, err := h.ledger.Register(ctx, accountID)
	if err != nil {
		return nil, err
	}
	// The response body is not inspected; registration is assumed to have
	// succeeded once the ledger answers.
	h.logger.WithField("response", string(body)).Debug("register response")

	return []bot.Reply{{Text: registeredReply}}, nil
}

func (h *Handler) address(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	accountID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}

	addr, err := h.ledger.Address(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return []bot.Reply{{Text: addr}}, nil
}

func (h *Handler) balance(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	accountID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}

	balance, err := h.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return []bot.Reply{{Text: strconv.FormatFloat(balance, 'f', -1, 64)}}, nil
}

func (h *Handler) history(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	accountID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}

	history, err := h.ledger.History(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return []bot.Reply{{Text: history}}, nil
}

func (h *Handler) tip(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	amount, err := parseAmount(inv.Command.Amount)
	if err != nil {
		return nil, err
	}

	fromID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}
	toID, err := h.accountByMention(ctx, inv.Command.Mention)
	if err != nil {
		return nil, err
	}

	h.logger.WithField("from", fromID).
		WithField("to", toID).
		WithField("amount", amount).
		Info("sending tip")

	if _, err := h.ledger.Tip(ctx, fromID, toID, amount); err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordTip("direct", amount)
	}

	return []bot.Reply{{Text: tipSentReply}}, nil
}

func (h *Handler) withdraw(ctx context.Context, inv bot.Invocation) ([]bot.Reply, error) {
	accountID, err := h.senderAccount(ctx, inv.Sender)
	if err != nil {
		return nil, err
	}

	message, err := h.ledger.Withdraw(ctx, accountID, inv.Command.Address)
	if err != nil {
		return nil, err
	}
	return []bot.Reply{{Text: message}}, nil
}

// senderAccount resolves the invoking user's account identifier. The chat
// platform usually supplies the email in the invocation context; when it is
// missing the mention handle is resolved through the directory instead.
func (h *Handler) senderAccount(ctx context.Context, sender bot.Sender) (string, error) {
	if sender.Email != "" {
		return identity.Resolve(sender.Email), nil
	}
	return h.accountByMention(ctx, sender.Mention)
}

// accountByMention resolves a mention handle to an account identifier via
// the user directory. Matches are exact on the mention handle.
func (h *Handler) accountByMention(ctx context.Context, mention string) (string, error) {
	users, err := h.directory.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, user := range users {
		if user.Mention == mention {
			return identity.Resolve(user.Email), nil
		}
	}
	return "", domerrors.Wrap(ModuleName, "resolve_mention",
		domerrors.ErrUserNotFound,
		fmt.Sprintf("I don't know anyone called @%s.", mention))
}

// parseAmount validates the amount text from the command as a positive
// integer before any gateway call is made.
func parseAmount(text string) (int, error) {
	amount, err := strconv.Atoi(text)
	if err != nil || amount <= 0 {
		return 0, domerrors.NewValidationError("amount",
			"Amount must be a positive whole number, e.g. tipbot tip @ExampleUser 10.")
	}
	return amount, nil
}

var _ bot.Handler = (*Handler)(nil)
