package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

type treeCfg struct {
	logger         *zap.Logger
	statsName      string
	isDesc         bool
	isStatsEnabled bool
}

func (cfg *treeCfg) loggerOrNop() *zap.Logger {
	if cfg.logger == nil {
		return zap.NewNop()
	}
	return cfg.logger
}

func keyComparator[K infra.OrderedKey](cfg *treeCfg) infra.OrderedKeyComparator[K] {
	if cfg.isDesc {
		return infra.DescComparator[K]
	}
	return infra.AscComparator[K]
}

// TreeOption configures both tree variants.
type TreeOption func(*treeCfg)

// WithTreeDesc orders the keys from the largest to the smallest.
func WithTreeDesc() TreeOption {
	return func(cfg *treeCfg) {
		cfg.isDesc = true
	}
}

func WithTreeLogger(logger *zap.Logger) TreeOption {
	return func(cfg *treeCfg) {
		cfg.logger = logger
	}
}

// WithTreeStats records the insert metrics through the global otel
// meter provider, under the meter "xtree/<name>".
func WithTreeStats(name string) TreeOption {
	return func(cfg *treeCfg) {
		cfg.isStatsEnabled = true
		cfg.statsName = name
	}
}

func newTreeCfg(opts ...TreeOption) *treeCfg {
	cfg := &treeCfg{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	return cfg
}
