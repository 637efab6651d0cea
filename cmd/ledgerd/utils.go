package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const timeout = 15 * time.Second

type client struct {
	ledgerv1.LedgerServiceClient
	conn   *grpc.ClientConn
	caller string
}

func (c *client) close() {
	// nolint
	c.conn.Close()
}

// callerCtx attaches the caller id to the outgoing request, failing early if
// not set.
func (c *client) callerCtx(ctx context.Context) (context.Context, error) {
	if c.caller == "" {
		return nil, fmt.Errorf("missing caller, set --%s or LEDGERD_CALLER", callerFlagName)
	}
	return ledgerv1.WithCaller(ctx, c.caller), nil
}

func getClient(ctx *cli.Context) (*client, error) {
	creds := insecure.NewCredentials()
	if path := getStringValue(ctx, tlsCertPathFlagName); path != "" {
		tlsConfig, err := getTLSConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get tls config: %s", err)
		}
		creds = credentials.NewTLS(tlsConfig)
	}

	conn, err := grpc.NewClient(
		getStringValue(ctx, urlFlagName), grpc.WithTransportCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger server: %s", err)
	}

	return &client{
		LedgerServiceClient: ledgerv1.NewLedgerServiceClient(conn),
		conn:                conn,
		caller:              getStringValue(ctx, callerFlagName),
	}, nil
}

func getTLSConfig(path string) (*tls.Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(buf); !ok {
		return nil, fmt.Errorf("failed to parse tls cert")
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    caCertPool,
	}, nil
}

func getRoles(ctx *cli.Context) *ledgerv1.Roles {
	return &ledgerv1.Roles{
		Manager:  ctx.String(managerFlagName),
		Reserve:  ctx.String(reserveFlagName),
		Freeze:   ctx.String(freezeIdFlagName),
		Clawback: ctx.String(clawbackFlagName),
	}
}

func printJSON(resp any) error {
	buf, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}
