package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPTotalDurations is a summary metric of the durations of http requests,
// labelled by method and status code
var HTTPTotalDurations = prometheus.NewSummaryVec(
	prometheus.SummaryOpts{
		Namespace: "http",
		Subsystem: "all",
		Name:      "total_duration",

		Help: "Durations of http requests, labelled by method and status code",

		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	},
	[]string{"method", "code"},
)

// TimersMiddleware observes the duration of each request in
// HTTPTotalDurations.
func TimersMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			status := strconv.Itoa(c.Response().Status)
			HTTPTotalDurations.
				WithLabelValues(c.Request().Method, status).
				Observe(v)
		}))
		defer timer.ObserveDuration()
		return next(c)
	}
}

func init() {
	prometheus.MustRegister(HTTPTotalDurations)
}
