package dbutil_test

import (
	"encoding/json"
	"testing"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	dbutil "github.com/arkade-os/ledgerd/internal/infrastructure/db/dbuitl"
	"github.com/stretchr/testify/require"
)

func TestDeserializeEvent(t *testing.T) {
	account := domain.AccountId{1}
	freezer := domain.AccountId{2}
	header := func(eventType domain.EventType) domain.LedgerEvent {
		return domain.LedgerEvent{Id: domain.AccountId{9}.String(), Type: eventType, Timestamp: 1760400000}
	}

	t.Run("valid", func(t *testing.T) {
		events := []domain.Event{
			domain.AssetCreated{
				LedgerEvent: header(domain.EventTypeAssetCreated),
				AssetName:   "coin",
				Creator:     account,
				Total:       10,
			},
			domain.Transfer{
				LedgerEvent: header(domain.EventTypeTransfer),
				Sender:      account,
				Receiver:    freezer,
				Amount:      5,
			},
			domain.OptIn{LedgerEvent: header(domain.EventTypeOptIn), Account: account},
			domain.OptOut{LedgerEvent: header(domain.EventTypeOptOut), Account: account},
			domain.Freeze{
				LedgerEvent: header(domain.EventTypeFreeze),
				Account:     account,
				FreezeId:    freezer,
				Freeze:      true,
			},
			domain.Modify{LedgerEvent: header(domain.EventTypeModify), ManagerId: account},
			domain.Revoke{
				LedgerEvent: header(domain.EventTypeRevoke),
				From:        account,
				Clawback:    freezer,
				Amount:      1,
			},
			domain.Destruction{LedgerEvent: header(domain.EventTypeDestruction), Destroyer: account},
		}

		for _, event := range events {
			t.Run(event.GetType().String(), func(t *testing.T) {
				buf, err := json.Marshal(event)
				require.NoError(t, err)

				got, err := dbutil.DeserializeEvent(buf)
				require.NoError(t, err)
				require.Equal(t, event, got)
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name string
			buf  string
		}{
			{"not_json", "ledger"},
			{"undefined_type", `{"Type":0}`},
			{"unknown_type", `{"Type":42}`},
			{"invalid_account", `{"Type":3,"Account":"zz"}`},
		}
		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				got, err := dbutil.DeserializeEvent([]byte(f.buf))
				require.Error(t, err)
				require.Nil(t, got)
			})
		}
	})
}
