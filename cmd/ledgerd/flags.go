package main

import (
	"fmt"

	"github.com/arkade-os/ledgerd/internal/config"
	"github.com/urfave/cli/v2"
)

const (
	urlFlagName           = "url"
	callerFlagName        = "caller"
	tlsCertPathFlagName   = "tls-cert-path"
	nameFlagName          = "name"
	unitNameFlagName      = "unit-name"
	totalFlagName         = "total"
	decimalsFlagName      = "decimals"
	defaultFrozenFlagName = "default-frozen"
	assetUrlFlagName      = "asset-url"
	metadataHashFlagName  = "metadata-hash"
	managerFlagName       = "manager"
	reserveFlagName       = "reserve"
	freezeIdFlagName      = "freeze-id"
	clawbackFlagName      = "clawback"
	receiverFlagName      = "receiver"
	amountFlagName        = "amount"
	accountFlagName       = "account"
	freezeFlagName        = "freeze"
	topicsFlagName        = "topics"
)

var (
	urlFlag = &cli.StringFlag{
		Name:  urlFlagName,
		Usage: "the address where to reach the ledger server",
		Value: fmt.Sprintf("127.0.0.1:%d", config.DefaultPort),
	}
	callerFlag = &cli.StringFlag{
		Name:  callerFlagName,
		Usage: "hex id of the account issuing the request",
	}
	tlsCertPathFlag = &cli.StringFlag{
		Name:  tlsCertPathFlagName,
		Usage: "path of the server TLS certificate, TLS is disabled if not set",
	}
	clientFlags = []cli.Flag{urlFlag, callerFlag, tlsCertPathFlag}

	nameFlag = &cli.StringFlag{
		Name:     nameFlagName,
		Usage:    "name of the asset",
		Required: true,
	}
	unitNameFlag = &cli.StringFlag{
		Name:  unitNameFlagName,
		Usage: "unit label of the asset",
	}
	totalFlag = &cli.Uint64Flag{
		Name:  totalFlagName,
		Usage: "total supply of the asset",
	}
	decimalsFlag = &cli.UintFlag{
		Name:  decimalsFlagName,
		Usage: "number of decimals of the asset",
	}
	defaultFrozenFlag = &cli.BoolFlag{
		Name:  defaultFrozenFlagName,
		Usage: "whether the freeze authority may freeze accounts",
	}
	assetUrlFlag = &cli.StringFlag{
		Name:  assetUrlFlagName,
		Usage: "url with info about the asset",
	}
	metadataHashFlag = &cli.StringFlag{
		Name:  metadataHashFlagName,
		Usage: "4-byte hex metadata hash of the asset",
	}
	managerFlag = &cli.StringFlag{
		Name:  managerFlagName,
		Usage: "hex id of the manager account, cleared if not set",
	}
	reserveFlag = &cli.StringFlag{
		Name:  reserveFlagName,
		Usage: "hex id of the reserve account, cleared if not set",
	}
	freezeIdFlag = &cli.StringFlag{
		Name:  freezeIdFlagName,
		Usage: "hex id of the freeze authority, cleared if not set",
	}
	clawbackFlag = &cli.StringFlag{
		Name:  clawbackFlagName,
		Usage: "hex id of the clawback authority, cleared if not set",
	}
	rolesFlags = []cli.Flag{managerFlag, reserveFlag, freezeIdFlag, clawbackFlag}

	receiverFlag = &cli.StringFlag{
		Name:     receiverFlagName,
		Usage:    "hex id of the receiver account",
		Required: true,
	}
	amountFlag = &cli.Uint64Flag{
		Name:     amountFlagName,
		Usage:    "amount to transfer",
		Required: true,
	}
	accountFlag = &cli.StringFlag{
		Name:     accountFlagName,
		Usage:    "hex id of the target account",
		Required: true,
	}
	freezeFlag = &cli.BoolFlag{
		Name:  freezeFlagName,
		Usage: "the frozen flag to set",
		Value: true,
	}
	topicsFlag = &cli.StringSliceFlag{
		Name:  topicsFlagName,
		Usage: "event types or account ids to filter the stream, everything if not set",
	}
)
