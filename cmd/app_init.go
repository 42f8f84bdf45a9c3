package main

import (
	"github.com/sells-group/people-aggregator/internal/aggregate"
	"github.com/sells-group/people-aggregator/internal/config"
	"github.com/sells-group/people-aggregator/internal/llm"
	"github.com/sells-group/people-aggregator/internal/source"
)

// initAggregator wires the adapter registry and the completion provider into
// an Aggregator from loaded configuration.
func initAggregator(cfg *config.Config) *aggregate.Aggregator {
	fetcher := source.NewFetcher(cfg.Source)
	registry := source.NewRegistry()
	source.RegisterDefaults(registry, fetcher)

	return aggregate.New(registry, llm.New(cfg.LLM))
}
