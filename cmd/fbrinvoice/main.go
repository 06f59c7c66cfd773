package main

import (
	"github.com/smallbiznis/fbrinvoice/internal/clock"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/backends"
	"github.com/smallbiznis/fbrinvoice/internal/invoice"
	"github.com/smallbiznis/fbrinvoice/internal/observability"
	"github.com/smallbiznis/fbrinvoice/internal/providers"
	"github.com/smallbiznis/fbrinvoice/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		backends.Module,

		// Functional Domains
		invoice.Module,
		providers.Module,

		server.Module,
	)
	app.Run()
}
