package domain

import "strings"

const LedgerTopic = "ledger"

type EventType int

const (
	EventTypeUndefined EventType = iota
	EventTypeAssetCreated
	EventTypeTransfer
	EventTypeOptIn
	EventTypeOptOut
	EventTypeFreeze
	EventTypeModify
	EventTypeRevoke
	EventTypeDestruction
)

func (t EventType) String() string {
	switch t {
	case EventTypeAssetCreated:
		return "creation"
	case EventTypeTransfer:
		return "transfer"
	case EventTypeOptIn:
		return "optin"
	case EventTypeOptOut:
		return "optout"
	case EventTypeFreeze:
		return "freeze"
	case EventTypeModify:
		return "modify"
	case EventTypeRevoke:
		return "revoke"
	case EventTypeDestruction:
		return "destruction"
	default:
		return "undefined"
	}
}

// EventTypeFromString is case insensitive and returns EventTypeUndefined for
// unknown names.
func EventTypeFromString(s string) EventType {
	for t := EventTypeAssetCreated; t <= EventTypeDestruction; t++ {
		if strings.EqualFold(t.String(), s) {
			return t
		}
	}
	return EventTypeUndefined
}

type Event interface {
	GetTopic() string
	GetType() EventType
	GetAssetId() string
	// Accounts returns the ids of the accounts involved in the event.
	Accounts() []AccountId
}

// LedgerEvent is the common header of every ledger event.
// Id is the hex encoded asset id.
type LedgerEvent struct {
	Id        string
	Type      EventType
	Timestamp int64
}

func (e LedgerEvent) GetTopic() string   { return LedgerTopic }
func (e LedgerEvent) GetType() EventType { return e.Type }
func (e LedgerEvent) GetAssetId() string { return e.Id }

type AssetCreated struct {
	LedgerEvent
	AssetName string
	Creator   AccountId
	Total     uint64
}

func (e AssetCreated) Accounts() []AccountId { return []AccountId{e.Creator} }

type Transfer struct {
	LedgerEvent
	Sender   AccountId
	Receiver AccountId
	Amount   uint64
}

func (e Transfer) Accounts() []AccountId { return []AccountId{e.Sender, e.Receiver} }

type OptIn struct {
	LedgerEvent
	Account AccountId
}

func (e OptIn) Accounts() []AccountId { return []AccountId{e.Account} }

type OptOut struct {
	LedgerEvent
	Account AccountId
}

func (e OptOut) Accounts() []AccountId { return []AccountId{e.Account} }

type Freeze struct {
	LedgerEvent
	Account  AccountId
	FreezeId AccountId
	Freeze   bool
}

func (e Freeze) Accounts() []AccountId { return []AccountId{e.Account, e.FreezeId} }

type Modify struct {
	LedgerEvent
	ManagerId  AccountId
	ReserveId  AccountId
	FreezeId   AccountId
	ClawbackId AccountId
}

func (e Modify) Accounts() []AccountId {
	return []AccountId{e.ManagerId, e.ReserveId, e.FreezeId, e.ClawbackId}
}

// Revoke is declared for clawback, no operation emits it.
type Revoke struct {
	LedgerEvent
	From     AccountId
	Clawback AccountId
	Amount   uint64
}

func (e Revoke) Accounts() []AccountId { return []AccountId{e.From, e.Clawback} }

// Destruction is declared for asset destruction, no operation emits it.
type Destruction struct {
	LedgerEvent
	Destroyer AccountId
}

func (e Destruction) Accounts() []AccountId { return []AccountId{e.Destroyer} }
