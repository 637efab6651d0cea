package domain

import (
	"encoding/hex"
	"fmt"
)

const AccountIdSize = 32

// AccountId is an opaque participant identity. The all-zero value is the
// sentinel used for "no role holder".
type AccountId [AccountIdSize]byte

// AssetId identifies the single asset of a ledger instance.
type AssetId = AccountId

var SentinelAccountId = AccountId{}

func (a *AccountId) FromString(s string) error {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid account id %q: %s", s, err)
	}
	if len(buf) != AccountIdSize {
		return fmt.Errorf(
			"invalid account id %q: expected %d bytes, got %d", s, AccountIdSize, len(buf),
		)
	}
	copy(a[:], buf)
	return nil
}

func (a AccountId) String() string {
	return hex.EncodeToString(a[:])
}

func (a AccountId) IsSentinel() bool {
	return a == SentinelAccountId
}

func (a AccountId) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountId) UnmarshalText(text []byte) error {
	return a.FromString(string(text))
}

// Account is the per-holder state of the ledger. Records come into existence
// lazily on first write and are never deleted, a missing record reads as the
// zero account.
type Account struct {
	Id      AccountId
	Balance uint64
	OptedIn bool
	Frozen  bool
}

func NewAccount(id AccountId) Account {
	return Account{Id: id}
}
