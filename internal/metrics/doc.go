// Package metrics records what each frame cost.
//
// Counters and a duration histogram are exported through Prometheus on a
// registerer the caller supplies. The same durations also go into
// in-process HDR histograms, so percentiles are available without a
// scraper.
package metrics
