package module

import (
	"time"

	"phishguard/internal/platform/config"
	"phishguard/internal/services/corpus/domain"
)

// Options configures the corpus module
type Options struct {
	Source       domain.Source
	QueryTimeout time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	def := domain.DefaultSource()
	cf := cfg.Prefix("CORE_CORPUS_")
	return Options{
		Source: domain.Source{
			Schema:      cf.MayString("SCHEMA", ""),
			Table:       cf.MayString("TABLE", def.Table),
			TextColumn:  cf.MayString("TEXT_COLUMN", def.TextColumn),
			LabelColumn: cf.MayString("LABEL_COLUMN", def.LabelColumn),
		},
		QueryTimeout: cf.MayDuration("QUERY_TIMEOUT", 30*time.Second),
	}
}
