package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/fbrinvoice/internal/clock"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/smallbiznis/fbrinvoice/internal/observability"
	obsmiddleware "github.com/smallbiznis/fbrinvoice/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/fbrinvoice/internal/observability/metrics"
	obstracing "github.com/smallbiznis/fbrinvoice/internal/observability/tracing"
	"github.com/smallbiznis/fbrinvoice/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cors := corsMiddleware(cfg.CORSAllowedOrigins); cors != nil {
		r.Use(cors)
	}
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Verbose,
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	pdf        pdf.Provider
	reference  *config.ReferenceHolder
	ui         *uiRenderer
	clock      clock.Clock
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	PDF        pdf.Provider
	Reference  *config.ReferenceHolder `optional:"true"`
	Clock      clock.Clock             `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	reference := p.Reference
	if reference == nil {
		reference = config.NewStaticReferenceHolder(config.DefaultReferenceData())
	}

	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        log.Named("http.server"),
		invoiceSvc: p.InvoiceSvc,
		pdf:        p.PDF,
		reference:  reference,
		ui:         newUIRenderer(),
		clock:      clk,
	}

	svc.registerAPIRoutes()
	svc.registerUIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)

	// -------- Exports --------
	api.GET("/exports/invoices.xlsx", s.ExportInvoicesXLSX)

	// -------- Reference --------
	api.GET("/invoice-template", s.GetInvoiceTemplate)
	api.GET("/reference", s.GetReference)
}

func (s *Server) registerUIRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/invoice/view")
	})
	s.engine.GET("/invoice", s.ShowInvoiceForm)
	s.engine.POST("/invoice", s.SubmitInvoiceForm)
	s.engine.GET("/invoice/view", s.ShowInvoiceList)
	s.engine.POST("/invoice/view/:id/delete", s.DeleteInvoiceFromList)

	// Legacy front-end paths.
	s.engine.GET("/add-invoice", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/invoice")
	})
	s.engine.GET("/view-invoice", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/invoice/view")
	})
}
