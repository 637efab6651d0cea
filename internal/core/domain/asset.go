package domain

import (
	"encoding/hex"
	"fmt"
)

const MetadataHashSize = 4

type MetadataHash [MetadataHashSize]byte

func (h *MetadataHash) FromString(s string) error {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid metadata hash %q: %s", s, err)
	}
	if len(buf) != MetadataHashSize {
		return fmt.Errorf(
			"invalid metadata hash %q: expected %d bytes, got %d", s, MetadataHashSize, len(buf),
		)
	}
	copy(h[:], buf)
	return nil
}

func (h MetadataHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h MetadataHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *MetadataHash) UnmarshalText(text []byte) error {
	return h.FromString(string(text))
}

// AssetParams are the caller supplied parameters of a new asset.
type AssetParams struct {
	Name          string
	UnitName      string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	Url           string
	MetadataHash  MetadataHash
}

// Asset is immutable once created.
// Total is recorded but no operation ever credits it to an account.
type Asset struct {
	Id            AssetId
	Creator       AccountId
	Name          string
	UnitName      string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	Url           string
	MetadataHash  MetadataHash
}

type Roles struct {
	Manager  AccountId
	Reserve  AccountId
	Freeze   AccountId
	Clawback AccountId
}

// RoleUpdate carries optional role holders. A nil field is written as the
// sentinel id, it does NOT mean "leave unchanged".
type RoleUpdate struct {
	Manager  *AccountId
	Reserve  *AccountId
	Freeze   *AccountId
	Clawback *AccountId
}

func (u RoleUpdate) Roles() Roles {
	return Roles{
		Manager:  orSentinel(u.Manager),
		Reserve:  orSentinel(u.Reserve),
		Freeze:   orSentinel(u.Freeze),
		Clawback: orSentinel(u.Clawback),
	}
}

func orSentinel(id *AccountId) AccountId {
	if id == nil {
		return SentinelAccountId
	}
	return *id
}
