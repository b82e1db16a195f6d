// Command neutronpay-mcp serves the NeutronPay tool catalog to an MCP
// client. By default it speaks the stdio transport; with --http it serves
// the streamable-HTTP transport plus health and metrics endpoints.
package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neutronpay/neutronpay-mcp-go"
	"github.com/neutronpay/neutronpay-mcp-go/internal/config"
	"github.com/neutronpay/neutronpay-mcp-go/internal/log"
	"github.com/neutronpay/neutronpay-mcp-go/internal/metrics"
	"github.com/neutronpay/neutronpay-mcp-go/lending"
	"github.com/neutronpay/neutronpay-mcp-go/mcpserver"
)

const (
	serverName    = "neutronpay-mcp"
	serverVersion = "1.0.0"
)

func main() {
	httpAddr := flag.String("http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		base := log.Base()
		if errors.Is(err, config.ErrMissingCredentials) {
			base.Fatal().Msg(err.Error())
		}
		base.Fatal().Err(err).Msg("configuration error")
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Service: serverName})
	logger := log.WithComponent("main")

	np := neutronpay.NewClient(
		neutronpay.Credentials{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			BaseURL:   cfg.APIBaseURL,
		},
		neutronpay.WithLogger(log.WithComponent("client")),
		neutronpay.WithRequestObserver(metrics.ObserveRequest),
	)
	lend := lending.NewClient(cfg.LendingURL,
		lending.WithLogger(log.WithComponent("lending")))

	srv := mcpserver.New(serverName, serverVersion, np, lend,
		mcpserver.WithLogger(log.WithComponent("mcp")))

	if *httpAddr == "" {
		logger.Info().Msg("serving MCP over stdio")
		if err := srv.ServeStdio(); err != nil {
			logger.Fatal().Err(err).Msg("stdio server error")
		}
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Mount("/mcp", srv.Handler())

	logger.Info().Str("addr", *httpAddr).Msg("serving MCP over HTTP")
	if err := http.ListenAndServe(*httpAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("http server error")
	}
}
