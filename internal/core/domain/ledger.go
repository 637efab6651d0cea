package domain

import (
	"math"
	"time"

	"github.com/arkade-os/ledgerd/pkg/errors"
)

// Ledger is the single asset of an instance together with its administrative
// roles. Per-account state lives in Account records owned by the caller, every
// operation takes the records it needs and returns the updated ones alongside
// the event to emit. On failure nothing is returned and the inputs are left
// untouched.
type Ledger struct {
	Asset Asset
	Roles Roles
}

func NewLedger(
	assetId AssetId, creator AccountId, params AssetParams, roles RoleUpdate,
) (*Ledger, Event) {
	ledger := &Ledger{
		Asset: Asset{
			Id:            assetId,
			Creator:       creator,
			Name:          params.Name,
			UnitName:      params.UnitName,
			Total:         params.Total,
			Decimals:      params.Decimals,
			DefaultFrozen: params.DefaultFrozen,
			Url:           params.Url,
			MetadataHash:  params.MetadataHash,
		},
		Roles: roles.Roles(),
	}

	event := AssetCreated{
		LedgerEvent: ledger.newEvent(EventTypeAssetCreated),
		AssetName:   params.Name,
		Creator:     creator,
		Total:       params.Total,
	}
	return ledger, event
}

// Transfer moves amount from sender to receiver. Sender and receiver may be
// the same account, in which case a single record is returned.
func (l *Ledger) Transfer(sender, receiver Account, amount uint64) ([]Account, Event, error) {
	if sender.Balance < amount {
		return nil, nil, errors.NOT_ENOUGH_BALANCE.New(
			"account %s has balance %d, cannot send %d", sender.Id, sender.Balance, amount,
		).WithMetadata(errors.NotEnoughBalanceMetadata{
			Account: sender.Id.String(),
			Balance: sender.Balance,
			Amount:  amount,
		})
	}
	if !receiver.OptedIn {
		return nil, nil, errors.NOT_OPTED_IN.New(
			"receiver %s has not opted in", receiver.Id,
		).WithMetadata(errors.AccountMetadata{Account: receiver.Id.String()})
	}
	for _, account := range []Account{sender, receiver} {
		if account.Frozen {
			return nil, nil, errors.FROZEN_ACCOUNT.New(
				"account %s is frozen", account.Id,
			).WithMetadata(errors.AccountMetadata{Account: account.Id.String()})
		}
	}

	event := Transfer{
		LedgerEvent: l.newEvent(EventTypeTransfer),
		Sender:      sender.Id,
		Receiver:    receiver.Id,
		Amount:      amount,
	}

	if sender.Id == receiver.Id {
		return []Account{sender}, event, nil
	}

	if receiver.Balance > math.MaxUint64-amount {
		return nil, nil, errors.BALANCE_OVERFLOW.New(
			"crediting %d to account %s overflows its balance %d",
			amount, receiver.Id, receiver.Balance,
		).WithMetadata(errors.BalanceOverflowMetadata{
			Account: receiver.Id.String(),
			Balance: receiver.Balance,
			Amount:  amount,
		})
	}

	sender.Balance -= amount
	receiver.Balance += amount
	return []Account{sender, receiver}, event, nil
}

func (l *Ledger) OptIn(account Account) (*Account, Event, error) {
	if account.OptedIn {
		return nil, nil, errors.ALREADY_OPTED_IN.New(
			"account %s already opted in", account.Id,
		).WithMetadata(errors.AccountMetadata{Account: account.Id.String()})
	}

	account.OptedIn = true
	return &account, OptIn{
		LedgerEvent: l.newEvent(EventTypeOptIn),
		Account:     account.Id,
	}, nil
}

// OptOut clears the opted in flag and leaves the balance untouched.
func (l *Ledger) OptOut(account Account) (*Account, Event, error) {
	if !account.OptedIn {
		return nil, nil, errors.NOT_OPTED_IN.New(
			"account %s has not opted in", account.Id,
		).WithMetadata(errors.AccountMetadata{Account: account.Id.String()})
	}

	account.OptedIn = false
	return &account, OptOut{
		LedgerEvent: l.newEvent(EventTypeOptOut),
		Account:     account.Id,
	}, nil
}

// Freeze sets the frozen flag of target to the given value.
// A target that is already frozen is rejected whatever the requested value,
// so a frozen account can never be unfrozen.
func (l *Ledger) Freeze(caller AccountId, target Account, freeze bool) (*Account, Event, error) {
	if !l.Asset.DefaultFrozen {
		return nil, nil, errors.NOT_FREEZABLE.New(
			"asset %s is not freezable", l.Asset.Id,
		).WithMetadata(errors.AssetMetadata{AssetId: l.Asset.Id.String()})
	}
	if caller != l.Roles.Freeze {
		return nil, nil, errors.NOT_FREEZE_ID.New(
			"caller %s is not the freeze authority", caller,
		).WithMetadata(errors.RoleMetadata{
			Caller:   caller.String(),
			Expected: l.Roles.Freeze.String(),
		})
	}
	if target.Frozen {
		return nil, nil, errors.ALREADY_FROZEN.New(
			"account %s is already frozen", target.Id,
		).WithMetadata(errors.AccountMetadata{Account: target.Id.String()})
	}

	target.Frozen = freeze
	return &target, Freeze{
		LedgerEvent: l.newEvent(EventTypeFreeze),
		Account:     target.Id,
		FreezeId:    caller,
		Freeze:      freeze,
	}, nil
}

// ModifyAsset replaces all four roles at once, nil entries of the update
// clear the corresponding role.
func (l *Ledger) ModifyAsset(caller AccountId, update RoleUpdate) (Event, error) {
	if caller != l.Roles.Manager {
		return nil, errors.NOT_MANAGER_ID.New(
			"caller %s is not the manager", caller,
		).WithMetadata(errors.RoleMetadata{
			Caller:   caller.String(),
			Expected: l.Roles.Manager.String(),
		})
	}

	l.Roles = update.Roles()
	return Modify{
		LedgerEvent: l.newEvent(EventTypeModify),
		ManagerId:   l.Roles.Manager,
		ReserveId:   l.Roles.Reserve,
		FreezeId:    l.Roles.Freeze,
		ClawbackId:  l.Roles.Clawback,
	}, nil
}

func (l *Ledger) newEvent(eventType EventType) LedgerEvent {
	return LedgerEvent{
		Id:        l.Asset.Id.String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
	}
}
