package handlers

import (
	"context"
	"strings"
	"testing"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/arkade-os/ledgerd/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

var (
	alice = domain.AccountId{0xaa}
	bob   = domain.AccountId{0xbb}
)

func TestParseCaller(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(
			context.Background(), metadata.Pairs(ledgerv1.CallerHeader, alice.String()),
		)
		caller, err := parseCaller(ctx)
		require.NoError(t, err)
		require.Equal(t, alice, caller)
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name string
			ctx  context.Context
		}{
			{
				name: "no_metadata",
				ctx:  context.Background(),
			},
			{
				name: "missing_header",
				ctx:  metadata.NewIncomingContext(context.Background(), metadata.Pairs("foo", "bar")),
			},
			{
				name: "empty_header",
				ctx: metadata.NewIncomingContext(
					context.Background(), metadata.Pairs(ledgerv1.CallerHeader, ""),
				),
			},
		}
		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				_, err := parseCaller(f.ctx)
				require.Error(t, err)
				require.True(t, errors.MISSING_CALLER.Is(err))
			})
		}

		ctx := metadata.NewIncomingContext(
			context.Background(), metadata.Pairs(ledgerv1.CallerHeader, "not-hex"),
		)
		_, err := parseCaller(ctx)
		require.Error(t, err)
		require.True(t, errors.INVALID_ACCOUNT_ID.Is(err))
	})
}

func TestParseAccountId(t *testing.T) {
	id, err := parseAccountId("receiver", bob.String())
	require.NoError(t, err)
	require.Equal(t, bob, id)

	fixtures := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not_hex", "zz"},
		{"too_short", "aabb"},
		{"too_long", strings.Repeat("ab", 33)},
	}
	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			_, err := parseAccountId("receiver", f.value)
			require.Error(t, err)
			require.True(t, errors.INVALID_ACCOUNT_ID.Is(err))

			var structuredErr errors.Error
			require.ErrorAs(t, err, &structuredErr)
			require.Equal(t, "receiver", structuredErr.Metadata()["field"])
		})
	}
}

func TestParseRoles(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		update, err := parseRoles(nil)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUpdate{}, update)
		require.Equal(t, domain.Roles{}, update.Roles())
	})

	t.Run("partial", func(t *testing.T) {
		update, err := parseRoles(&ledgerv1.Roles{
			Manager: alice.String(),
			Freeze:  bob.String(),
		})
		require.NoError(t, err)
		require.NotNil(t, update.Manager)
		require.Equal(t, alice, *update.Manager)
		require.Nil(t, update.Reserve)
		require.NotNil(t, update.Freeze)
		require.Equal(t, bob, *update.Freeze)
		require.Nil(t, update.Clawback)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseRoles(&ledgerv1.Roles{Clawback: "nope"})
		require.Error(t, err)
		require.True(t, errors.INVALID_ACCOUNT_ID.Is(err))
	})
}

func TestParseAssetParams(t *testing.T) {
	req := &ledgerv1.CreateAssetRequest{
		Name:          "Test Coin",
		UnitName:      "TC",
		Total:         1000,
		Decimals:      2,
		DefaultFrozen: true,
		Url:           "https://example.com",
		MetadataHash:  "deadbeef",
	}
	params, err := parseAssetParams(req)
	require.NoError(t, err)
	require.Equal(t, domain.AssetParams{
		Name:          "Test Coin",
		UnitName:      "TC",
		Total:         1000,
		Decimals:      2,
		DefaultFrozen: true,
		Url:           "https://example.com",
		MetadataHash:  domain.MetadataHash{0xde, 0xad, 0xbe, 0xef},
	}, params)

	req.MetadataHash = ""
	params, err = parseAssetParams(req)
	require.NoError(t, err)
	require.Equal(t, domain.MetadataHash{}, params.MetadataHash)

	req.MetadataHash = "deadbeefff"
	_, err = parseAssetParams(req)
	require.Error(t, err)
	require.True(t, errors.INVALID_ASSET_PARAMS.Is(err))
}

func TestToEvent(t *testing.T) {
	header := func(eventType domain.EventType) domain.LedgerEvent {
		return domain.LedgerEvent{Id: "asset", Type: eventType, Timestamp: 1760400000}
	}

	fixtures := []struct {
		event  domain.Event
		check  func(t *testing.T, e *ledgerv1.Event)
		topics []string
	}{
		{
			event: domain.AssetCreated{
				LedgerEvent: header(domain.EventTypeAssetCreated),
				AssetName:   "coin",
				Creator:     alice,
				Total:       10,
			},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.Creation)
				require.Equal(t, "coin", e.Creation.AssetName)
				require.Equal(t, alice.String(), e.Creation.Creator)
				require.Equal(t, uint64(10), e.Creation.Total)
			},
			topics: []string{"creation", alice.String()},
		},
		{
			event: domain.Transfer{
				LedgerEvent: header(domain.EventTypeTransfer),
				Sender:      alice,
				Receiver:    bob,
				Amount:      7,
			},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.Transfer)
				require.Equal(t, alice.String(), e.Transfer.Sender)
				require.Equal(t, bob.String(), e.Transfer.Receiver)
				require.Equal(t, uint64(7), e.Transfer.Amount)
			},
			topics: []string{"transfer", alice.String(), bob.String()},
		},
		{
			event: domain.OptIn{LedgerEvent: header(domain.EventTypeOptIn), Account: bob},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.OptIn)
				require.Equal(t, bob.String(), e.OptIn.Account)
			},
			topics: []string{"optin", bob.String()},
		},
		{
			event: domain.OptOut{LedgerEvent: header(domain.EventTypeOptOut), Account: bob},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.OptOut)
				require.Equal(t, bob.String(), e.OptOut.Account)
			},
			topics: []string{"optout", bob.String()},
		},
		{
			event: domain.Freeze{
				LedgerEvent: header(domain.EventTypeFreeze),
				Account:     bob,
				FreezeId:    alice,
				Freeze:      true,
			},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.Freeze)
				require.Equal(t, bob.String(), e.Freeze.Account)
				require.Equal(t, alice.String(), e.Freeze.FreezeId)
				require.True(t, e.Freeze.Freeze)
			},
			topics: []string{"freeze", bob.String(), alice.String()},
		},
		{
			event: domain.Modify{LedgerEvent: header(domain.EventTypeModify), ManagerId: bob},
			check: func(t *testing.T, e *ledgerv1.Event) {
				require.NotNil(t, e.Modify)
				require.Equal(t, bob.String(), e.Modify.ManagerId)
				require.Equal(t, domain.SentinelAccountId.String(), e.Modify.ReserveId)
			},
			topics: []string{
				"modify",
				bob.String(),
				domain.SentinelAccountId.String(),
				domain.SentinelAccountId.String(),
				domain.SentinelAccountId.String(),
			},
		},
	}

	for _, f := range fixtures {
		t.Run(f.event.GetType().String(), func(t *testing.T) {
			e := toEvent(f.event)
			require.NotNil(t, e)
			require.Equal(t, f.event.GetType().String(), e.Type)
			require.Equal(t, "asset", e.AssetId)
			require.Equal(t, int64(1760400000), e.Timestamp)
			f.check(t, e)
			require.Equal(t, f.topics, eventTopics(e))
		})
	}
}
