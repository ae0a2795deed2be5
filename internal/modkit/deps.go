package modkit

import (
	"phishguard/internal/modkit/repokit"
	"phishguard/internal/platform/config"
	"phishguard/internal/platform/logger"
)

// Deps holds what every module may use
// PG is nil when the process runs without a corpus database
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
