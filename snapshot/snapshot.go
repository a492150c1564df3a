// Package snapshot sits between the HTTP layer and the data source. It caches
// fetched snapshots per query type, normalizes raw records into canonical
// incidents, and decides per derived view whether to trust a source-side
// precomputed aggregate or recompute it locally over the raw snapshot. Both
// paths produce the same shapes.
package snapshot

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"go-eduwatch/aggregate"
	"go-eduwatch/cache"
	"go-eduwatch/processor"
	"go-eduwatch/types"
)

// Source supplies raw incident snapshots. A completed fetch is treated as an
// atomic snapshot; partial updates are not part of the contract.
type Source interface {
	FetchIncidents(ctx context.Context, f types.Filters) ([]types.SchoolIncident, error)
	Name() string
}

// AggregateSource is optionally implemented by sources that can serve
// precomputed aggregates. When absent (or failing), the provider recomputes
// the same view locally.
type AggregateSource interface {
	SeriesByMonth(ctx context.Context, f types.Filters) ([]types.TimePoint, error)
	AggByState(ctx context.Context, f types.Filters) ([]types.StateAgg, error)
	HeatGrid(ctx context.Context, f types.Filters) ([]types.GridCell, error)
}

// Cache TTLs per query type, matching the refresh intervals the dashboard
// uses per endpoint.
const (
	incidentsTTL  = 30 * time.Second
	aggregatesTTL = time.Minute
	lookupsTTL    = 5 * time.Minute
)

const lookupsKey = "lookups"

type Provider struct {
	src Source

	incidents *cache.Cache[[]types.SchoolIncident]
	series    *cache.Cache[[]types.TimePoint]
	states    *cache.Cache[[]types.StateAgg]
	heat      *cache.Cache[[]types.GridCell]
	lookups   *cache.Cache[types.LookupData]
}

func NewProvider(src Source) *Provider {
	return &Provider{
		src:       src,
		incidents: cache.New[[]types.SchoolIncident](incidentsTTL),
		series:    cache.New[[]types.TimePoint](aggregatesTTL),
		states:    cache.New[[]types.StateAgg](aggregatesTTL),
		heat:      cache.New[[]types.GridCell](aggregatesTTL),
		lookups:   cache.New[types.LookupData](lookupsTTL),
	}
}

// filterKey is the cache key for a filter spec: its JSON encoding, the same
// key shape the dashboard used for request deduplication.
func filterKey(f types.Filters) string {
	data, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return string(data)
}

// Incidents returns the raw snapshot for a filter spec, served from cache
// within the TTL.
func (p *Provider) Incidents(ctx context.Context, f types.Filters) ([]types.SchoolIncident, error) {
	key := filterKey(f)
	if cached, ok := p.incidents.Get(key); ok {
		return cached, nil
	}
	records, err := p.src.FetchIncidents(ctx, f)
	if err != nil {
		return nil, err
	}
	p.incidents.Set(key, records)
	return records, nil
}

// Canonical returns a fresh canonical set derived from the raw snapshot.
// Normalization runs per call; only raw snapshots are cached, so canonical
// records are never shared between callers.
func (p *Provider) Canonical(ctx context.Context, f types.Filters) ([]types.Incident, error) {
	records, err := p.Incidents(ctx, f)
	if err != nil {
		return nil, err
	}
	return processor.NormalizeAll(records), nil
}

// Series returns the monthly time series, preferring the source's precomputed
// aggregate and falling back to local recompute.
func (p *Provider) Series(ctx context.Context, f types.Filters) ([]types.TimePoint, error) {
	key := filterKey(f)
	if cached, ok := p.series.Get(key); ok {
		return cached, nil
	}
	if agg, ok := p.src.(AggregateSource); ok {
		series, err := agg.SeriesByMonth(ctx, f)
		if err == nil {
			p.series.Set(key, series)
			return series, nil
		}
		log.Printf("Precomputed series unavailable from %s, recomputing locally: %v", p.src.Name(), err)
	}
	incidents, err := p.Canonical(ctx, f)
	if err != nil {
		return nil, err
	}
	series := aggregate.SeriesByMonth(incidents)
	p.series.Set(key, series)
	return series, nil
}

// ByState returns the full jurisdiction aggregate sorted by incident count;
// callers truncate to their top-N.
func (p *Provider) ByState(ctx context.Context, f types.Filters) ([]types.StateAgg, error) {
	key := filterKey(f)
	if cached, ok := p.states.Get(key); ok {
		return cached, nil
	}
	if agg, ok := p.src.(AggregateSource); ok {
		states, err := agg.AggByState(ctx, f)
		if err == nil {
			p.states.Set(key, states)
			return states, nil
		}
		log.Printf("Precomputed state aggregate unavailable from %s, recomputing locally: %v", p.src.Name(), err)
	}
	incidents, err := p.Canonical(ctx, f)
	if err != nil {
		return nil, err
	}
	states := aggregate.ByState(incidents, 0)
	p.states.Set(key, states)
	return states, nil
}

// Heat returns the map density grid.
func (p *Provider) Heat(ctx context.Context, f types.Filters) ([]types.GridCell, error) {
	key := filterKey(f)
	if cached, ok := p.heat.Get(key); ok {
		return cached, nil
	}
	if agg, ok := p.src.(AggregateSource); ok {
		cells, err := agg.HeatGrid(ctx, f)
		if err == nil {
			p.heat.Set(key, cells)
			return cells, nil
		}
		log.Printf("Precomputed heat grid unavailable from %s, recomputing locally: %v", p.src.Name(), err)
	}
	incidents, err := p.Canonical(ctx, f)
	if err != nil {
		return nil, err
	}
	cells := aggregate.HeatGrid(incidents)
	p.heat.Set(key, cells)
	return cells, nil
}

// Lookups returns the filter sidebar's distinct values, derived from the
// unfiltered snapshot.
func (p *Provider) Lookups(ctx context.Context) (types.LookupData, error) {
	if cached, ok := p.lookups.Get(lookupsKey); ok {
		return cached, nil
	}
	records, err := p.Incidents(ctx, types.Filters{})
	if err != nil {
		return types.LookupData{}, err
	}
	lookups := aggregate.Lookups(records)
	p.lookups.Set(lookupsKey, lookups)
	return lookups, nil
}

// Refresh drops all cached snapshots and re-warms the unfiltered one. Run by
// the cron jobs so the first dashboard hit after a refresh stays fast.
func (p *Provider) Refresh(ctx context.Context) error {
	p.incidents.Flush()
	p.series.Flush()
	p.states.Flush()
	p.heat.Flush()
	p.lookups.Flush()

	records, err := p.Incidents(ctx, types.Filters{})
	if err != nil {
		return err
	}
	log.Printf("Snapshot refreshed from %s: %d records", p.src.Name(), len(records))
	return nil
}

// SourceName names the active data source, for health reporting.
func (p *Provider) SourceName() string {
	return p.src.Name()
}
