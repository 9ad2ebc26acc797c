package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// ResultSuccess for success result label
	ResultSuccess = "success"
	// ResultCached for the documents served from the cache
	ResultCached = "cached"
	// ResultErrored for errored result label
	ResultErrored = "errored"
)

// BarcodeGenerations is a counter of the barcode documents asked to the
// service, labelled by format and result.
var BarcodeGenerations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "barcodes",
		Subsystem: "generation",
		Name:      "count",

		Help: `Number of barcode documents asked, labelled by format (svg, png, sheet) and
result (success, cached, errored).`,
	},
	[]string{"format", "result"},
)

// BarcodeDurations is a histogram metric of the time spent, in seconds, to
// generate a barcode document, labelled by format and result.
var BarcodeDurations = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "barcodes",
		Subsystem: "generation",
		Name:      "durations",

		Help: `Time spent to generate a barcode document, in seconds, labelled by format and result.`,

		// An SVG is a few hundred microseconds, a PNG or a large sheet a few
		// milliseconds.
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	},
	[]string{"format", "result"},
)

func init() {
	prometheus.MustRegister(
		BarcodeGenerations,
		BarcodeDurations,
	)
}
