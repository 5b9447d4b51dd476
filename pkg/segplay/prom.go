package segplay

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "segplay"
)

var (
	sourcesLoaded    prometheus.Counter
	segmentsStarted  prometheus.Counter
	loopRestarts     prometheus.Counter
	manifestsDecoded prometheus.Counter
)

func init() {
	sourcesLoaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sources_loaded",
		Help:      "Decoded audio sources",
	})
	segmentsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "segments_started",
		Help:      "Segment playbacks started",
	})
	loopRestarts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loop_restarts",
		Help:      "Segment loop restarts",
	})
	manifestsDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "manifests_decoded",
		Help:      "Decoded resource manifests",
	})
	prometheus.MustRegister(sourcesLoaded, segmentsStarted, loopRestarts, manifestsDecoded)
}
