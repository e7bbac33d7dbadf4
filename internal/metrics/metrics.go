// Package metrics exposes run progress as Prometheus metrics. A batch run
// has no scrape endpoint, so the registry is dumped to a textfile at the end.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wta/internal/opt"
)

type Metrics struct {
	Registry *prometheus.Registry

	Generation         prometheus.Gauge
	BestFitness        prometheus.Gauge
	MeanFitness        prometheus.Gauge
	WorstFitness       prometheus.Gauge
	FitnessStdDev      prometheus.Gauge
	GenerationsTotal   prometheus.Counter
	GenerationDuration prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
}

// New registers all collectors on a fresh registry labelled with the run's
// instance and seed.
func New(instance string, seed int64) *Metrics {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"instance": instance, "seed": formatSeed(seed)}

	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels})
		reg.MustRegister(g)
		return g
	}
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help, ConstLabels: labels})
		reg.MustRegister(c)
		return c
	}

	m := &Metrics{
		Registry:         reg,
		Generation:       gauge("wta_generation", "Generation of the latest report"),
		BestFitness:      gauge("wta_best_fitness", "Highest fitness in the latest report"),
		MeanFitness:      gauge("wta_mean_fitness", "Mean fitness in the latest report"),
		WorstFitness:     gauge("wta_worst_fitness", "Lowest fitness in the latest report"),
		FitnessStdDev:    gauge("wta_fitness_stddev", "Sample standard deviation of fitness in the latest report"),
		GenerationsTotal: counter("wta_generations_total", "Generations evolved"),
		CacheHitsTotal:   counter("wta_fitness_cache_hits_total", "Fitness cache hits"),
		CacheMissesTotal: counter("wta_fitness_cache_misses_total", "Fitness cache misses"),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "wta_generation_duration_seconds",
			Help:        "Time spent on one select/crossover/mutate cycle",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	reg.MustRegister(m.GenerationDuration)
	return m
}

func (m *Metrics) ObserveReport(r opt.Report) {
	m.Generation.Set(float64(r.Generation))
	m.BestFitness.Set(r.Max)
	m.MeanFitness.Set(r.Mean)
	m.WorstFitness.Set(r.Min)
	m.FitnessStdDev.Set(r.Std)
}

func (m *Metrics) ObserveGeneration(d time.Duration) {
	m.GenerationsTotal.Inc()
	m.GenerationDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveCache(hits, misses uint64) {
	m.CacheHitsTotal.Add(float64(hits))
	m.CacheMissesTotal.Add(float64(misses))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func formatSeed(seed int64) string { return strconv.FormatInt(seed, 10) }
