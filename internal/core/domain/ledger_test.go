package domain_test

import (
	"math"
	"testing"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/arkade-os/ledgerd/pkg/errors"
	"github.com/stretchr/testify/require"
)

var (
	assetId  = accountId(0xaa)
	creator  = accountId(0x01)
	manager  = accountId(0x02)
	reserve  = accountId(0x03)
	freezer  = accountId(0x04)
	clawback = accountId(0x05)
	alice    = accountId(0x10)
	bob      = accountId(0x11)
	params   = domain.AssetParams{
		Name:         "Subsa",
		UnitName:     "SUB",
		Total:        1_000_000,
		Decimals:     6,
		Url:          "https://example.com/subsa",
		MetadataHash: domain.MetadataHash{0xde, 0xad, 0xbe, 0xef},
	}
)

func accountId(b byte) domain.AccountId {
	var id domain.AccountId
	for i := range id {
		id[i] = b
	}
	return id
}

func newLedger(t *testing.T, defaultFrozen bool) *domain.Ledger {
	p := params
	p.DefaultFrozen = defaultFrozen
	ledger, event := domain.NewLedger(assetId, creator, p, domain.RoleUpdate{
		Manager:  &manager,
		Reserve:  &reserve,
		Freeze:   &freezer,
		Clawback: &clawback,
	})
	require.NotNil(t, ledger)
	require.NotNil(t, event)
	return ledger
}

func TestNewLedger(t *testing.T) {
	t.Run("with roles", func(t *testing.T) {
		ledger, event := domain.NewLedger(assetId, creator, params, domain.RoleUpdate{
			Manager: &manager,
			Freeze:  &freezer,
		})

		require.Equal(t, assetId, ledger.Asset.Id)
		require.Equal(t, creator, ledger.Asset.Creator)
		require.Equal(t, params.Name, ledger.Asset.Name)
		require.Equal(t, params.UnitName, ledger.Asset.UnitName)
		require.Equal(t, params.Total, ledger.Asset.Total)
		require.Equal(t, params.Decimals, ledger.Asset.Decimals)
		require.Equal(t, params.Url, ledger.Asset.Url)
		require.Equal(t, params.MetadataHash, ledger.Asset.MetadataHash)
		require.False(t, ledger.Asset.DefaultFrozen)

		require.Equal(t, manager, ledger.Roles.Manager)
		require.Equal(t, freezer, ledger.Roles.Freeze)
		require.True(t, ledger.Roles.Reserve.IsSentinel())
		require.True(t, ledger.Roles.Clawback.IsSentinel())

		created, ok := event.(domain.AssetCreated)
		require.True(t, ok)
		require.Equal(t, domain.EventTypeAssetCreated, created.GetType())
		require.Equal(t, assetId.String(), created.GetAssetId())
		require.Equal(t, params.Name, created.AssetName)
		require.Equal(t, creator, created.Creator)
		require.Equal(t, params.Total, created.Total)
	})

	t.Run("without roles", func(t *testing.T) {
		ledger, _ := domain.NewLedger(assetId, creator, params, domain.RoleUpdate{})
		require.Equal(t, domain.Roles{}, ledger.Roles)
	})
}

func TestTransfer(t *testing.T) {
	ledger := newLedger(t, false)

	t.Run("valid", func(t *testing.T) {
		sender := domain.Account{Id: alice, Balance: 100, OptedIn: true}
		receiver := domain.Account{Id: bob, Balance: 5, OptedIn: true}

		accounts, event, err := ledger.Transfer(sender, receiver, 40)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		require.Equal(t, uint64(60), accounts[0].Balance)
		require.Equal(t, uint64(45), accounts[1].Balance)
		require.Equal(t, sender.Balance+receiver.Balance, accounts[0].Balance+accounts[1].Balance)

		transfer, ok := event.(domain.Transfer)
		require.True(t, ok)
		require.Equal(t, alice, transfer.Sender)
		require.Equal(t, bob, transfer.Receiver)
		require.Equal(t, uint64(40), transfer.Amount)
		require.Equal(t, assetId.String(), transfer.Id)
		require.ElementsMatch(t, []domain.AccountId{alice, bob}, transfer.Accounts())
	})

	t.Run("zero amount", func(t *testing.T) {
		sender := domain.Account{Id: alice, OptedIn: true}
		receiver := domain.Account{Id: bob, OptedIn: true}

		accounts, event, err := ledger.Transfer(sender, receiver, 0)
		require.NoError(t, err)
		require.NotNil(t, event)
		require.Zero(t, accounts[0].Balance)
		require.Zero(t, accounts[1].Balance)
	})

	t.Run("self transfer", func(t *testing.T) {
		account := domain.Account{Id: alice, Balance: 10, OptedIn: true}

		accounts, event, err := ledger.Transfer(account, account, 10)
		require.NoError(t, err)
		require.NotNil(t, event)
		require.Len(t, accounts, 1)
		require.Equal(t, uint64(10), accounts[0].Balance)
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name     string
			sender   domain.Account
			receiver domain.Account
			amount   uint64
			is       func(error) bool
		}{
			{
				name:     "not_enough_balance",
				sender:   domain.Account{Id: alice, Balance: 10, OptedIn: true},
				receiver: domain.Account{Id: bob, OptedIn: true},
				amount:   11,
				is:       errors.NOT_ENOUGH_BALANCE.Is,
			},
			{
				name:     "receiver_not_opted_in",
				sender:   domain.Account{Id: alice, Balance: 10, OptedIn: true},
				receiver: domain.Account{Id: bob},
				amount:   1,
				is:       errors.NOT_OPTED_IN.Is,
			},
			{
				name:     "balance_checked_before_opt_in",
				sender:   domain.Account{Id: alice, Balance: 0},
				receiver: domain.Account{Id: bob},
				amount:   1,
				is:       errors.NOT_ENOUGH_BALANCE.Is,
			},
			{
				name:     "sender_frozen",
				sender:   domain.Account{Id: alice, Balance: 10, OptedIn: true, Frozen: true},
				receiver: domain.Account{Id: bob, OptedIn: true},
				amount:   1,
				is:       errors.FROZEN_ACCOUNT.Is,
			},
			{
				name:     "receiver_frozen",
				sender:   domain.Account{Id: alice, Balance: 10, OptedIn: true},
				receiver: domain.Account{Id: bob, OptedIn: true, Frozen: true},
				amount:   1,
				is:       errors.FROZEN_ACCOUNT.Is,
			},
			{
				name:     "balance_overflow",
				sender:   domain.Account{Id: alice, Balance: 10, OptedIn: true},
				receiver: domain.Account{Id: bob, Balance: math.MaxUint64, OptedIn: true},
				amount:   1,
				is:       errors.BALANCE_OVERFLOW.Is,
			},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				sender, receiver := f.sender, f.receiver

				accounts, event, err := ledger.Transfer(sender, receiver, f.amount)
				require.Error(t, err)
				require.True(t, f.is(err), err.Error())
				require.Nil(t, accounts)
				require.Nil(t, event)
				require.Equal(t, f.sender, sender)
				require.Equal(t, f.receiver, receiver)
			})
		}
	})
}

func TestOptInOptOut(t *testing.T) {
	ledger := newLedger(t, false)

	account := domain.NewAccount(alice)

	optedIn, event, err := ledger.OptIn(account)
	require.NoError(t, err)
	require.True(t, optedIn.OptedIn)
	require.False(t, account.OptedIn)
	require.Equal(t, domain.EventTypeOptIn, event.GetType())
	require.Equal(t, alice, event.(domain.OptIn).Account)

	_, event, err = ledger.OptIn(*optedIn)
	require.Error(t, err)
	require.True(t, errors.ALREADY_OPTED_IN.Is(err))
	require.Nil(t, event)

	optedIn.Balance = 42
	optedOut, event, err := ledger.OptOut(*optedIn)
	require.NoError(t, err)
	require.False(t, optedOut.OptedIn)
	require.Equal(t, uint64(42), optedOut.Balance)
	require.Equal(t, domain.EventTypeOptOut, event.GetType())
	require.Equal(t, alice, event.(domain.OptOut).Account)

	_, event, err = ledger.OptOut(*optedOut)
	require.Error(t, err)
	require.True(t, errors.NOT_OPTED_IN.Is(err))
	require.Nil(t, event)
}

func TestFreeze(t *testing.T) {
	t.Run("not_freezable", func(t *testing.T) {
		ledger := newLedger(t, false)

		for _, caller := range []domain.AccountId{freezer, manager, alice} {
			_, event, err := ledger.Freeze(caller, domain.NewAccount(bob), true)
			require.Error(t, err)
			require.True(t, errors.NOT_FREEZABLE.Is(err))
			require.Nil(t, event)
		}
	})

	t.Run("not_freeze_id", func(t *testing.T) {
		ledger := newLedger(t, true)

		_, event, err := ledger.Freeze(alice, domain.NewAccount(bob), true)
		require.Error(t, err)
		require.True(t, errors.NOT_FREEZE_ID.Is(err))
		require.Nil(t, event)
	})

	t.Run("freeze_then_unfreeze", func(t *testing.T) {
		ledger := newLedger(t, true)

		frozen, event, err := ledger.Freeze(freezer, domain.NewAccount(bob), true)
		require.NoError(t, err)
		require.True(t, frozen.Frozen)

		freeze, ok := event.(domain.Freeze)
		require.True(t, ok)
		require.Equal(t, bob, freeze.Account)
		require.Equal(t, freezer, freeze.FreezeId)
		require.True(t, freeze.Freeze)

		_, event, err = ledger.Freeze(freezer, *frozen, false)
		require.Error(t, err)
		require.True(t, errors.ALREADY_FROZEN.Is(err))
		require.Nil(t, event)
	})

	t.Run("unfrozen_account_set_to_false", func(t *testing.T) {
		ledger := newLedger(t, true)

		account, event, err := ledger.Freeze(freezer, domain.NewAccount(bob), false)
		require.NoError(t, err)
		require.False(t, account.Frozen)
		require.False(t, event.(domain.Freeze).Freeze)
	})
}

func TestModifyAsset(t *testing.T) {
	t.Run("not_manager_id", func(t *testing.T) {
		ledger := newLedger(t, false)
		roles := ledger.Roles

		event, err := ledger.ModifyAsset(alice, domain.RoleUpdate{Manager: &alice})
		require.Error(t, err)
		require.True(t, errors.NOT_MANAGER_ID.Is(err))
		require.Nil(t, event)
		require.Equal(t, roles, ledger.Roles)
	})

	t.Run("replace_all", func(t *testing.T) {
		ledger := newLedger(t, false)

		event, err := ledger.ModifyAsset(manager, domain.RoleUpdate{
			Manager:  &alice,
			Reserve:  &bob,
			Freeze:   &alice,
			Clawback: &bob,
		})
		require.NoError(t, err)
		require.Equal(t, domain.Roles{
			Manager: alice, Reserve: bob, Freeze: alice, Clawback: bob,
		}, ledger.Roles)

		modify, ok := event.(domain.Modify)
		require.True(t, ok)
		require.Equal(t, alice, modify.ManagerId)
		require.Equal(t, bob, modify.ReserveId)
		require.Equal(t, alice, modify.FreezeId)
		require.Equal(t, bob, modify.ClawbackId)
	})

	t.Run("absent_roles_are_cleared", func(t *testing.T) {
		ledger := newLedger(t, false)

		event, err := ledger.ModifyAsset(manager, domain.RoleUpdate{Reserve: &bob})
		require.NoError(t, err)
		require.NotNil(t, event)
		require.True(t, ledger.Roles.Manager.IsSentinel())
		require.Equal(t, bob, ledger.Roles.Reserve)
		require.True(t, ledger.Roles.Freeze.IsSentinel())
		require.True(t, ledger.Roles.Clawback.IsSentinel())

		// previous manager lost the role
		_, err = ledger.ModifyAsset(manager, domain.RoleUpdate{Manager: &manager})
		require.True(t, errors.NOT_MANAGER_ID.Is(err))
	})

	t.Run("all_absent", func(t *testing.T) {
		ledger := newLedger(t, false)

		_, err := ledger.ModifyAsset(manager, domain.RoleUpdate{})
		require.NoError(t, err)
		require.Equal(t, domain.Roles{
			Manager:  domain.SentinelAccountId,
			Reserve:  domain.SentinelAccountId,
			Freeze:   domain.SentinelAccountId,
			Clawback: domain.SentinelAccountId,
		}, ledger.Roles)
	})
}

func TestAccountId(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		str := alice.String()
		require.Len(t, str, 64)

		var id domain.AccountId
		require.NoError(t, id.FromString(str))
		require.Equal(t, alice, id)

		text, err := id.MarshalText()
		require.NoError(t, err)
		require.Equal(t, str, string(text))
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []string{"", "zz", "0101", alice.String() + "00"}
		for _, f := range fixtures {
			var id domain.AccountId
			require.Error(t, id.FromString(f))
		}
	})

	t.Run("sentinel", func(t *testing.T) {
		require.True(t, domain.SentinelAccountId.IsSentinel())
		require.False(t, alice.IsSentinel())
	})
}

func TestEventType(t *testing.T) {
	for _, eventType := range []domain.EventType{
		domain.EventTypeAssetCreated,
		domain.EventTypeTransfer,
		domain.EventTypeOptIn,
		domain.EventTypeOptOut,
		domain.EventTypeFreeze,
		domain.EventTypeModify,
		domain.EventTypeRevoke,
		domain.EventTypeDestruction,
	} {
		require.Equal(t, eventType, domain.EventTypeFromString(eventType.String()))
	}
	require.Equal(t, domain.EventTypeTransfer, domain.EventTypeFromString("TRANSFER"))
	require.Equal(t, domain.EventTypeUndefined, domain.EventTypeFromString("mint"))
}
