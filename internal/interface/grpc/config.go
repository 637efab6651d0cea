package grpcservice

import (
	"crypto/tls"
	"fmt"
	"os"
)

type Config struct {
	Datadir           string
	Port              uint32
	NoTLS             bool
	TLSCert           string
	TLSKey            string
	HeartbeatInterval int64
}

func (c Config) Validate() error {
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("invalid heartbeat interval, must be greater than 0")
	}

	if !c.insecure() {
		if len(c.TLSCert) <= 0 || len(c.TLSKey) <= 0 {
			return fmt.Errorf("missing tls cert or key path, both are required if TLS is enabled")
		}
		for _, path := range []string{c.TLSCert, c.TLSKey} {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("invalid tls file %s: %s", path, err)
			}
		}
	}
	return nil
}

func (c Config) insecure() bool {
	return c.NoTLS
}

func (c Config) address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) tlsConfig() (*tls.Config, error) {
	if c.insecure() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.TLSCert, c.TLSKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load tls key pair: %s", err)
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2"},
		Certificates: []tls.Certificate{cert},
	}, nil
}
