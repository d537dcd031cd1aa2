package module

import (
	"time"

	"shopsense/internal/platform/config"
	"shopsense/internal/services/pipeline/service"
)

// Options holds bootstrap configuration for the pipeline module
type Options struct {
	QuietPeriod     time.Duration
	ConfidenceFloor float64
	QueueCap        int
	PromoteBacklog  int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PIPELINE_")
	return Options{
		QuietPeriod:     pf.MayDuration("QUIET_PERIOD", 10*time.Second),
		ConfidenceFloor: pf.MayFloat64("CONFIDENCE_FLOOR", 0.6),
		QueueCap:        pf.MayInt("QUEUE_CAP", 32),
		PromoteBacklog:  pf.MayInt("PROMOTE_BACKLOG", 4),
	}
}

func (o Options) serviceConfig() service.Config {
	return service.Config{
		QuietPeriod:     o.QuietPeriod,
		ConfidenceFloor: o.ConfidenceFloor,
		QueueCap:        o.QueueCap,
		PromoteBacklog:  o.PromoteBacklog,
	}
}
