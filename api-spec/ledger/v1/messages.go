// Package ledgerv1 defines the messages and the gRPC service of the ledger
// API. Messages travel with the json codec registered by this package.
//
// Account and asset ids are 64 char lowercase hex strings. An empty role id
// in a request means the role is cleared.
package ledgerv1

type Asset struct {
	Id            string `json:"id"`
	Creator       string `json:"creator"`
	Name          string `json:"name"`
	UnitName      string `json:"unitName"`
	Total         uint64 `json:"total"`
	Decimals      uint32 `json:"decimals"`
	DefaultFrozen bool   `json:"defaultFrozen"`
	Url           string `json:"url"`
	MetadataHash  string `json:"metadataHash"`
	Manager       string `json:"manager"`
	Reserve       string `json:"reserve"`
	Freeze        string `json:"freeze"`
	Clawback      string `json:"clawback"`
}

type Account struct {
	Id      string `json:"id"`
	Balance uint64 `json:"balance"`
	OptedIn bool   `json:"optedIn"`
	Frozen  bool   `json:"frozen"`
}

type Roles struct {
	Manager  string `json:"manager,omitempty"`
	Reserve  string `json:"reserve,omitempty"`
	Freeze   string `json:"freeze,omitempty"`
	Clawback string `json:"clawback,omitempty"`
}

type CreateAssetRequest struct {
	Name          string `json:"name"`
	UnitName      string `json:"unitName"`
	Total         uint64 `json:"total"`
	Decimals      uint32 `json:"decimals"`
	DefaultFrozen bool   `json:"defaultFrozen"`
	Url           string `json:"url"`
	MetadataHash  string `json:"metadataHash,omitempty"`
	Roles         *Roles `json:"roles,omitempty"`
}

type CreateAssetResponse struct {
	Asset *Asset `json:"asset"`
}

type TransferRequest struct {
	Receiver string `json:"receiver"`
	Amount   uint64 `json:"amount"`
}

type TransferResponse struct{}

type OptInRequest struct{}

type OptInResponse struct{}

type OptOutRequest struct{}

type OptOutResponse struct{}

type FreezeRequest struct {
	Account string `json:"account"`
	Freeze  bool   `json:"freeze"`
}

type FreezeResponse struct{}

type ModifyAssetRequest struct {
	Roles *Roles `json:"roles,omitempty"`
}

type ModifyAssetResponse struct{}

type GetAssetRequest struct{}

type GetAssetResponse struct {
	Asset *Asset `json:"asset"`
}

type GetAccountRequest struct {
	Account string `json:"account"`
}

type GetAccountResponse struct {
	Account *Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

// GetEventStreamRequest filters the stream by event type names (creation,
// transfer, optin, optout, freeze, modify) or by involved account ids.
// No topics means every event.
type GetEventStreamRequest struct {
	Topics []string `json:"topics,omitempty"`
}

// GetEventStreamResponse carries either an event or a heartbeat.
type GetEventStreamResponse struct {
	Event     *Event     `json:"event,omitempty"`
	Heartbeat *Heartbeat `json:"heartbeat,omitempty"`
}

type Heartbeat struct{}

// Event has exactly one of the typed payloads set, matching Type.
type Event struct {
	Type      string   `json:"type"`
	AssetId   string   `json:"assetId"`
	Timestamp int64    `json:"timestamp"`
	Accounts  []string `json:"accounts"`

	Creation    *CreationEvent    `json:"creation,omitempty"`
	Transfer    *TransferEvent    `json:"transfer,omitempty"`
	OptIn       *AccountEvent     `json:"optIn,omitempty"`
	OptOut      *AccountEvent     `json:"optOut,omitempty"`
	Freeze      *FreezeEvent      `json:"freeze,omitempty"`
	Modify      *ModifyEvent      `json:"modify,omitempty"`
	Revoke      *RevokeEvent      `json:"revoke,omitempty"`
	Destruction *DestructionEvent `json:"destruction,omitempty"`
}

type CreationEvent struct {
	AssetName string `json:"assetName"`
	Creator   string `json:"creator"`
	Total     uint64 `json:"total"`
}

type TransferEvent struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   uint64 `json:"amount"`
}

type AccountEvent struct {
	Account string `json:"account"`
}

type FreezeEvent struct {
	Account  string `json:"account"`
	FreezeId string `json:"freezeId"`
	Freeze   bool   `json:"freeze"`
}

type ModifyEvent struct {
	ManagerId  string `json:"managerId"`
	ReserveId  string `json:"reserveId"`
	FreezeId   string `json:"freezeId"`
	ClawbackId string `json:"clawbackId"`
}

type RevokeEvent struct {
	From     string `json:"from"`
	Clawback string `json:"clawback"`
	Amount   uint64 `json:"amount"`
}

type DestructionEvent struct {
	Destroyer string `json:"destroyer"`
}
