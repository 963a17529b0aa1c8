// Package telemetry counts store activity with Prometheus collectors.
// There is no exposition endpoint; counters are read back through the
// default gatherer (see the stats CLI command).
package telemetry

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	blobLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "socialdb_blob_loads_total",
		Help: "State blobs loaded from the key/value store, by key.",
	}, []string{"key"})
	blobWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "socialdb_blob_writes_total",
		Help: "State blobs written through to the key/value store, by key.",
	}, []string{"key"})
	storeMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "socialdb_store_mutations_total",
		Help: "Mutating operations applied, by store and operation.",
	}, []string{"store", "op"})
)

func init() {
	prometheus.MustRegister(blobLoads, blobWrites, storeMutations)
}

// BlobLoaded records a blob read for key.
func BlobLoaded(key string) { blobLoads.WithLabelValues(key).Inc() }

// BlobWritten records a blob write for key.
func BlobWritten(key string) { blobWrites.WithLabelValues(key).Inc() }

// Mutation records one mutating operation on a store.
func Mutation(store, op string) { storeMutations.WithLabelValues(store, op).Inc() }

// Render writes all gathered metrics to w in the Prometheus text format.
func Render(w io.Writer) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
