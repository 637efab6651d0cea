package main

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// EnvReplacer replaces `-` to `_`.
// This is used to map flag like `--my-param` to environment variables like `MY_PARAM`.
var envReplacer = strings.NewReplacer("-", "_")

func init() {
	viper.SetEnvPrefix("LEDGERD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(envReplacer)
}

// getStringValue gives precedence to the flag if explicitly set, then to the
// LEDGERD_* env var, and finally to the flag default.
func getStringValue(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if value := viper.GetString(name); value != "" {
		return value
	}
	return ctx.String(name)
}
