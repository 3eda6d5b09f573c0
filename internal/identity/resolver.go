// Package identity derives stable wallet account identifiers from chat
// platform email addresses.
package identity

import (
	"crypto/md5" //nolint:gosec // Not used for security; wire-compatible with existing ledger records.
	"encoding/hex"
)

// Resolve returns the account identifier for an email address: the
// lower-case hex MD5 digest of the raw string. The ledger keys every
// wallet by this value, so the derivation must stay byte-identical for
// the same input.
func Resolve(email string) string {
	sum := md5.Sum([]byte(email)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
