package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// ClientConfig holds the settings of the command-line API client.
type ClientConfig struct {
	// Adapter contains the API address and request timeout.
	Adapter Adapter
}

// GetClientConfig builds the client configuration from the environment
// (ADAPTER_*) and the leading flags of args. It returns the positional
// arguments left after flag parsing (the client command and its operands).
//
// Flags:
//
//	-server API address (e.g. "localhost:5001")
//	-timeout request timeout (e.g. "10s")
//	-token-file file that keeps the bearer token between runs
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	b := newConfigBuilder().withDotEnv().withEnv()

	var address, tokenFile string
	var timeout time.Duration
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&address, "server", "", "API address host:port")
	fs.DurationVar(&timeout, "timeout", 0, "Request timeout")
	fs.StringVar(&tokenFile, "token-file", "", "File that keeps the bearer token")
	if err := fs.Parse(args); err != nil {
		b.err = errors.Join(b.err, err)
	}
	b.configs = append(b.configs, &StructuredConfig{
		Adapter: Adapter{HTTPAddress: address, RequestTimeout: timeout, TokenFile: tokenFile},
	})

	cfg, err := b.merge()
	if err != nil {
		return nil, nil, fmt.Errorf("error get client config: %w", err)
	}
	cfg.applyDefaults()

	clientCfg := &ClientConfig{Adapter: cfg.Adapter}

	return clientCfg, fs.Args(), clientCfg.validate()
}
