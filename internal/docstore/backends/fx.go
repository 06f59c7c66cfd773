package backends

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"github.com/smallbiznis/fbrinvoice/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("docstore",
	fx.Provide(NewSnowflakeNode),
	fx.Provide(NewGateway),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Node      *snowflake.Node
	Metrics   *metrics.Metrics `optional:"true"`
}

func NewSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.DocStore.NodeID)
}

// NewGateway opens the configured backend, instruments it and closes it when
// the application stops.
func NewGateway(p Params) (docstore.Gateway, error) {
	raw, err := Open(context.Background(), p.Config, p.Log, p.Node)
	if err != nil {
		return nil, err
	}

	gw := docstore.Instrument(raw, p.Config.DocStore.Backend, recorder(p.Metrics), p.Log)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			p.Log.Info("closing document store", zap.String("backend", p.Config.DocStore.Backend))
			return gw.Close()
		},
	})
	return gw, nil
}

func recorder(m *metrics.Metrics) docstore.Recorder {
	if m == nil {
		return nil
	}
	return m
}
