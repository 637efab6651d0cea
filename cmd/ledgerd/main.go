package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/arkade-os/ledgerd/internal/config"
	grpcservice "github.com/arkade-os/ledgerd/internal/interface/grpc"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Version will be set during build time
var Version string

var (
	createAssetCmd = &cli.Command{
		Name:  "create-asset",
		Usage: "Create the asset of the ledger, the caller becomes its creator",
		Flags: append([]cli.Flag{
			nameFlag, unitNameFlag, totalFlag, decimalsFlag, defaultFrozenFlag,
			assetUrlFlag, metadataHashFlag,
		}, rolesFlags...),
		Action: createAssetAction,
	}
	transferCmd = &cli.Command{
		Name:   "transfer",
		Usage:  "Transfer units from the caller to the receiver",
		Flags:  []cli.Flag{receiverFlag, amountFlag},
		Action: transferAction,
	}
	optInCmd = &cli.Command{
		Name:   "opt-in",
		Usage:  "Opt the caller in to the asset",
		Action: optInAction,
	}
	optOutCmd = &cli.Command{
		Name:   "opt-out",
		Usage:  "Opt the caller out of the asset",
		Action: optOutAction,
	}
	freezeCmd = &cli.Command{
		Name:   "freeze",
		Usage:  "Set the frozen flag of an account, the caller must be the freeze authority",
		Flags:  []cli.Flag{accountFlag, freezeFlag},
		Action: freezeAction,
	}
	modifyAssetCmd = &cli.Command{
		Name:   "modify-asset",
		Usage:  "Replace the roles of the asset, the caller must be the manager",
		Flags:  rolesFlags,
		Action: modifyAssetAction,
	}
	assetCmd = &cli.Command{
		Name:   "asset",
		Usage:  "Get the asset parameters and roles",
		Action: assetAction,
	}
	accountCmd = &cli.Command{
		Name:   "account",
		Usage:  "Get the record of an account",
		Flags:  []cli.Flag{accountFlag},
		Action: accountAction,
	}
	accountsCmd = &cli.Command{
		Name:   "accounts",
		Usage:  "List all known accounts",
		Action: accountsAction,
	}
	eventsCmd = &cli.Command{
		Name:   "events",
		Usage:  "List the events of the asset",
		Action: eventsAction,
	}
	streamCmd = &cli.Command{
		Name:   "stream",
		Usage:  "Stream the events of the asset",
		Flags:  []cli.Flag{topicsFlag},
		Action: streamAction,
	}
)

func mainAction(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("invalid config: %s", err)
	}

	log.SetLevel(log.Level(cfg.LogLevel))

	svcConfig := grpcservice.Config{
		Datadir:           cfg.Datadir,
		Port:              cfg.Port,
		NoTLS:             cfg.NoTLS,
		TLSCert:           cfg.TLSCert,
		TLSKey:            cfg.TLSKey,
		HeartbeatInterval: cfg.HeartbeatInterval,
	}

	svc, err := grpcservice.NewService(Version, svcConfig, cfg)
	if err != nil {
		return err
	}

	log.Infof("ledgerd config: %s", cfg)

	log.RegisterExitHandler(svc.Stop)

	log.Info("starting service...")
	if err := svc.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	<-sigChan

	log.Info("shutting down service...")
	log.Exit(0)

	return nil
}

func createAssetAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.CreateAsset(reqCtx, &ledgerv1.CreateAssetRequest{
			Name:          ctx.String(nameFlagName),
			UnitName:      ctx.String(unitNameFlagName),
			Total:         ctx.Uint64(totalFlagName),
			Decimals:      uint32(ctx.Uint(decimalsFlagName)),
			DefaultFrozen: ctx.Bool(defaultFrozenFlagName),
			Url:           ctx.String(assetUrlFlagName),
			MetadataHash:  ctx.String(metadataHashFlagName),
			Roles:         getRoles(ctx),
		})
	})
}

func transferAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.Transfer(reqCtx, &ledgerv1.TransferRequest{
			Receiver: ctx.String(receiverFlagName),
			Amount:   ctx.Uint64(amountFlagName),
		})
	})
}

func optInAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.OptIn(reqCtx, &ledgerv1.OptInRequest{})
	})
}

func optOutAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.OptOut(reqCtx, &ledgerv1.OptOutRequest{})
	})
}

func freezeAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.Freeze(reqCtx, &ledgerv1.FreezeRequest{
			Account: ctx.String(accountFlagName),
			Freeze:  ctx.Bool(freezeFlagName),
		})
	})
}

func modifyAssetAction(ctx *cli.Context) error {
	return withCaller(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.ModifyAsset(reqCtx, &ledgerv1.ModifyAssetRequest{Roles: getRoles(ctx)})
	})
}

func assetAction(ctx *cli.Context) error {
	return withClient(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.GetAsset(reqCtx, &ledgerv1.GetAssetRequest{})
	})
}

func accountAction(ctx *cli.Context) error {
	return withClient(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.GetAccount(reqCtx, &ledgerv1.GetAccountRequest{
			Account: ctx.String(accountFlagName),
		})
	})
}

func accountsAction(ctx *cli.Context) error {
	return withClient(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.ListAccounts(reqCtx, &ledgerv1.ListAccountsRequest{})
	})
}

func eventsAction(ctx *cli.Context) error {
	return withClient(ctx, func(c *client, reqCtx context.Context) (any, error) {
		return c.ListEvents(reqCtx, &ledgerv1.ListEventsRequest{})
	})
}

func streamAction(ctx *cli.Context) error {
	c, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer c.close()

	streamCtx, cancel := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stream, err := c.GetEventStream(streamCtx, &ledgerv1.GetEventStreamRequest{
		Topics: ctx.StringSlice(topicsFlagName),
	})
	if err != nil {
		return err
	}

	for {
		resp, err := stream.Recv()
		if err != nil {
			if err == io.EOF || streamCtx.Err() != nil {
				return nil
			}
			return err
		}
		if resp.Event == nil {
			continue
		}
		if err := printJSON(resp.Event); err != nil {
			return err
		}
	}
}

type requestFunc func(c *client, reqCtx context.Context) (any, error)

func withClient(ctx *cli.Context, fn requestFunc) error {
	c, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer c.close()

	reqCtx, cancel := context.WithTimeout(ctx.Context, timeout)
	defer cancel()

	resp, err := fn(c, reqCtx)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func withCaller(ctx *cli.Context, fn requestFunc) error {
	return withClient(ctx, func(c *client, reqCtx context.Context) (any, error) {
		callerCtx, err := c.callerCtx(reqCtx)
		if err != nil {
			return nil, err
		}
		return fn(c, callerCtx)
	})
}

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "ledgerd"
	app.Usage = "run and operate a single asset ledger"
	app.UsageText = "Run the ledger daemon or use its subcommands to talk to a running one"
	app.Flags = config.Flags
	app.Action = mainAction
	app.Commands = append(app.Commands,
		createAssetCmd, transferCmd, optInCmd, optOutCmd, freezeCmd, modifyAssetCmd,
		assetCmd, accountCmd, accountsCmd, eventsCmd, streamCmd,
	)
	for _, cmd := range app.Commands {
		cmd.Flags = append(cmd.Flags, clientFlags...)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
