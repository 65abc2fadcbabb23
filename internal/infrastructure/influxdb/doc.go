// Package influxdb records store operation metrics in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Every executed
// statement becomes one point in the store_operations measurement,
// tagged with operation, table and outcome, with a duration_ms field.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	svc, err := store.New(store.Options{
//	    ...
//	    Recorder: influxdb.NewOperationRecorder(client),
//	})
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are non-blocking and
// batched according to batch_size and flush_interval; async write errors
// are delivered to the SetOnError callback.
package influxdb
