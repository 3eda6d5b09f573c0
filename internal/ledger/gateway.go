// Package ledger provides the wallet service gateway: account registration,
// balances, history, tips and withdrawals over the wallet REST API.
package ledger

import "context"

// Gateway is the narrow wallet interface the core depends on. Accounts are
// addressed by identity.Resolve output. The wallet service owns delivery
// guarantees; this layer only reports transport and status failures.
type Gateway interface {
	// Register creates a wallet for the account. The response body is opaque
	// to callers.
	Register(ctx context.Context, accountID string) ([]byte, error)

	// Address returns the deposit address for the account.
	Address(ctx context.Context, accountID string) (string, error)

	// Balance returns the current coin balance for the account.
	Balance(ctx context.Context, accountID string) (float64, error)

	// History returns the account's transaction history as raw JSON text.
	History(ctx context.Context, accountID string) (string, error)

	// Tip transfers amount coins between two accounts.
	Tip(ctx context.Context, fromID, toID string, amount int) ([]byte, error)

	// Withdraw sends the account's coins to an external address and returns
	// the wallet service's status message.
	Withdraw(ctx context.Context, accountID, destAddress string) (string, error)
}
