package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// operationMeasurement holds one point per executed store statement.
const operationMeasurement = "store_operations"

// Outcome tag values.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// pointWriter is the subset of Client used by OperationRecorder.
type pointWriter interface {
	WritePoint(p *write.Point)
}

// OperationRecorder writes store operation timings to InfluxDB.
// It implements store.Recorder.
type OperationRecorder struct {
	w pointWriter
}

// NewOperationRecorder creates a recorder writing through c.
func NewOperationRecorder(c *Client) *OperationRecorder {
	return &OperationRecorder{w: c}
}

// RecordOperation queues one store_operations point.
//
// Parameters:
//   - op: Operation name, stored as the "operation" tag
//   - table: Target table, stored as the "table" tag
//   - d: Time spent executing the statement
//   - err: Outcome; a non-nil error tags the point outcome=error
func (r *OperationRecorder) RecordOperation(op, table string, d time.Duration, err error) {
	r.w.WritePoint(operationPoint(op, table, d, err, time.Now()))
}

// operationPoint builds
//
//	store_operations,operation=<op>,outcome=<ok|error>,table=<table> duration_ms=<float>
func operationPoint(op, table string, d time.Duration, err error, ts time.Time) *write.Point {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	return write.NewPoint(
		operationMeasurement,
		map[string]string{
			"operation": op,
			"table":     table,
			"outcome":   outcome,
		},
		map[string]interface{}{
			"duration_ms": float64(d) / float64(time.Millisecond),
		},
		ts,
	)
}
