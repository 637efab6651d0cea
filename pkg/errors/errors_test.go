package errors

import (
	stderrors "errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	grpccodes "google.golang.org/grpc/codes"
)

const (
	account1 = "0101010101010101010101010101010101010101010101010101010101010101"
	account2 = "0202020202020202020202020202020202020202020202020202020202020202"
)

// generateErrorFixtures creates test fixtures with sample metadata for each error type
func generateErrorFixtures() []Error {
	return []Error{
		// INTERNAL_ERROR
		INTERNAL_ERROR.New("failed to persist accounts").
			WithMetadata(map[string]any{
				"component": "database",
				"operation": "save",
			}),

		// NOT_MANAGER_ID
		NOT_MANAGER_ID.New("caller is not the manager").
			WithMetadata(RoleMetadata{Caller: account1, Expected: account2}),

		// NOT_RESERVE_ID
		NOT_RESERVE_ID.New("caller is not the reserve").
			WithMetadata(RoleMetadata{Caller: account1, Expected: account2}),

		// NOT_FREEZE_ID
		NOT_FREEZE_ID.New("caller is not the freeze authority").
			WithMetadata(RoleMetadata{Caller: account1, Expected: account2}),

		// NOT_CLAWBACK_ID
		NOT_CLAWBACK_ID.New("caller is not the clawback authority").
			WithMetadata(RoleMetadata{Caller: account1, Expected: account2}),

		// NOT_OPTED_IN
		NOT_OPTED_IN.New("account has not opted in").
			WithMetadata(AccountMetadata{Account: account1}),

		// ALREADY_OPTED_IN
		ALREADY_OPTED_IN.New("account already opted in").
			WithMetadata(AccountMetadata{Account: account1}),

		// NOT_FROZEN
		NOT_FROZEN.New("account is not frozen").
			WithMetadata(AccountMetadata{Account: account1}),

		// NOT_FREEZABLE
		NOT_FREEZABLE.New("asset is not freezable").
			WithMetadata(AssetMetadata{AssetId: account2}),

		// ALREADY_FROZEN
		ALREADY_FROZEN.New("account already frozen").
			WithMetadata(AccountMetadata{Account: account1}),

		// FROZEN_ACCOUNT
		FROZEN_ACCOUNT.New("account is frozen").
			WithMetadata(AccountMetadata{Account: account1}),

		// NOT_ENOUGH_BALANCE
		NOT_ENOUGH_BALANCE.New("not enough balance").
			WithMetadata(NotEnoughBalanceMetadata{Account: account1, Balance: 10, Amount: 11}),

		// ZERO_AMOUNT
		ZERO_AMOUNT.New("amount must be greater than zero"),

		// ASSET_NOT_FOUND
		ASSET_NOT_FOUND.New("asset not found").
			WithMetadata(AssetMetadata{AssetId: account2}),

		// ASSET_ALREADY_EXISTS
		ASSET_ALREADY_EXISTS.New("asset already exists").
			WithMetadata(AssetMetadata{AssetId: account2}),

		// INVALID_ACCOUNT_ID
		INVALID_ACCOUNT_ID.New("invalid account id").
			WithMetadata(InvalidAccountIdMetadata{Field: "receiver", Value: "zz"}),

		// BALANCE_OVERFLOW
		BALANCE_OVERFLOW.New("balance overflow").
			WithMetadata(BalanceOverflowMetadata{Account: account1, Balance: 1, Amount: 2}),

		// MISSING_CALLER
		MISSING_CALLER.New("missing caller id"),

		// INVALID_ASSET_PARAMS
		INVALID_ASSET_PARAMS.New("invalid metadata hash").
			WithMetadata(InvalidAssetParamsMetadata{Field: "metadata_hash", Value: "00"}),
	}
}

func TestErrorCodes(t *testing.T) {
	fixtures := generateErrorFixtures()

	t.Run("unique codes and names", func(t *testing.T) {
		codes := make(map[uint16]string)
		names := make(map[string]struct{})
		for _, err := range fixtures {
			name, ok := codes[err.Code()]
			require.False(t, ok, "code %d used by both %s and %s", err.Code(), name, err.CodeName())
			codes[err.Code()] = err.CodeName()

			_, ok = names[err.CodeName()]
			require.False(t, ok, "duplicated name %s", err.CodeName())
			names[err.CodeName()] = struct{}{}
		}
		require.Len(t, codes, len(fixtures))
	})

	t.Run("error message", func(t *testing.T) {
		for _, err := range fixtures {
			require.NotEmpty(t, err.Error())
			require.Contains(t, err.Error(), err.CodeName())
			require.Contains(t, err.Error(), fmt.Sprintf("(%d)", err.Code()))
		}
	})

	t.Run("log entry", func(t *testing.T) {
		for _, err := range fixtures {
			entry := err.Log()
			require.NotNil(t, entry)
			require.Equal(t, err.CodeName(), entry.Data["name"])
			require.Equal(t, err.Code(), entry.Data["code"])
		}
	})
}

func TestErrorGrpcCodes(t *testing.T) {
	tests := []struct {
		err      Error
		expected grpccodes.Code
	}{
		{INTERNAL_ERROR.New("boom"), grpccodes.Internal},
		{NOT_MANAGER_ID.New("nope"), grpccodes.PermissionDenied},
		{NOT_FREEZE_ID.New("nope"), grpccodes.PermissionDenied},
		{NOT_OPTED_IN.New("nope"), grpccodes.FailedPrecondition},
		{NOT_ENOUGH_BALANCE.New("nope"), grpccodes.FailedPrecondition},
		{ASSET_NOT_FOUND.New("nope"), grpccodes.NotFound},
		{ASSET_ALREADY_EXISTS.New("nope"), grpccodes.AlreadyExists},
		{INVALID_ACCOUNT_ID.New("nope"), grpccodes.InvalidArgument},
		{BALANCE_OVERFLOW.New("nope"), grpccodes.OutOfRange},
		{MISSING_CALLER.New("nope"), grpccodes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.err.CodeName(), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.err.GrpcCode())
		})
	}
}

func TestErrorMetadata(t *testing.T) {
	t.Run("struct metadata", func(t *testing.T) {
		err := NOT_ENOUGH_BALANCE.New("not enough balance").
			WithMetadata(NotEnoughBalanceMetadata{Account: account1, Balance: 10, Amount: 11})

		metadata := err.Metadata()
		require.Equal(t, map[string]string{
			"account": account1,
			"balance": "10",
			"amount":  "11",
		}, metadata)
	})

	t.Run("large amounts", func(t *testing.T) {
		err := BALANCE_OVERFLOW.New("overflow").WithMetadata(BalanceOverflowMetadata{
			Account: account1,
			Balance: 1234567,
			Amount:  math.MaxUint64,
		})

		metadata := err.Metadata()
		require.Equal(t, "1234567", metadata["balance"])
		require.Equal(t, "18446744073709551615", metadata["amount"])
	})

	t.Run("map metadata", func(t *testing.T) {
		err := INTERNAL_ERROR.New("boom").WithMetadata(map[string]any{
			"component": "database",
			"empty":     nil,
		})

		metadata := err.Metadata()
		require.Equal(t, "database", metadata["component"])
		require.Equal(t, "", metadata["empty"])
	})

	t.Run("no metadata", func(t *testing.T) {
		err := MISSING_CALLER.New("missing caller id")
		require.Empty(t, err.Metadata())
	})
}

func TestErrorMatching(t *testing.T) {
	cause := stderrors.New("disk full")
	err := INTERNAL_ERROR.Wrap(cause)

	require.True(t, INTERNAL_ERROR.Is(err))
	require.False(t, NOT_MANAGER_ID.Is(err))
	require.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("save failed: %w", NOT_OPTED_IN.New("account has not opted in"))
	require.True(t, NOT_OPTED_IN.Is(wrapped))
	require.False(t, ALREADY_OPTED_IN.Is(wrapped))

	require.False(t, NOT_OPTED_IN.Is(cause))
	require.False(t, NOT_OPTED_IN.Is(nil))
}
