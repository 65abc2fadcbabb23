package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nerrad567/localstore/internal/store"
)

// commandArity is the number of positional arguments each command takes.
var commandArity = map[string]int{
	"query":        1,
	"get":          1,
	"get-where":    2,
	"insert":       2,
	"insert-batch": 2,
	"update":       2,
	"remove":       2,
	"health":       0,
}

// invocation is one parsed command line.
type invocation struct {
	name string
	args []string

	record  store.Record
	records []store.Record
}

// parseCommand validates the command and decodes JSON arguments before any
// infrastructure is started.
func parseCommand(args []string) (*invocation, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing command", errUsage)
	}

	inv := &invocation{name: args[0], args: args[1:]}
	want, ok := commandArity[inv.name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, inv.name)
	}
	if len(inv.args) != want {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, inv.name, want, len(inv.args))
	}

	switch inv.name {
	case "insert", "update":
		if err := json.Unmarshal([]byte(inv.args[1]), &inv.record); err != nil {
			return nil, fmt.Errorf("%w: %s record: %w", errUsage, inv.name, err)
		}
	case "insert-batch":
		if err := json.Unmarshal([]byte(inv.args[1]), &inv.records); err != nil {
			return nil, fmt.Errorf("%w: insert-batch records: %w", errUsage, err)
		}
	}

	return inv, nil
}

// run executes the invocation and returns the value to print.
func (inv *invocation) run(ctx context.Context, a *app) (any, error) {
	svc := a.svc

	switch inv.name {
	case "query":
		return svc.Query(inv.args[0]).Await(ctx)
	case "get":
		return svc.Get(inv.args[0]).Await(ctx)
	case "get-where":
		return svc.GetWhere(inv.args[0], inv.args[1]).Await(ctx)
	case "insert":
		id, err := svc.Insert(inv.args[0], inv.record).Await(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"insert_id": id}, nil
	case "insert-batch":
		return nil, svc.InsertBatch(inv.args[0], inv.records)
	case "update":
		return svc.Update(inv.args[0], inv.record).Await(ctx)
	case "remove":
		return svc.Remove(inv.args[0], inv.args[1]).Await(ctx)
	case "health":
		return a.health(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, inv.name)
	}
}

// healthStatus reports each component as ok, disabled or the error text.
type healthStatus struct {
	Database string `json:"database"`
	MQTT     string `json:"mqtt"`
	InfluxDB string `json:"influxdb"`
}

const (
	statusOK       = "ok"
	statusDisabled = "disabled"
)

// health checks the database and every enabled sink. It fails if any
// component is unhealthy but still returns the full status.
func (a *app) health(ctx context.Context) (*healthStatus, error) {
	st := &healthStatus{Database: statusOK, MQTT: statusDisabled, InfluxDB: statusDisabled}
	var failed error

	if err := a.svc.HealthCheck(ctx); err != nil {
		st.Database = err.Error()
		failed = err
	}
	if a.mqtt != nil {
		st.MQTT = statusOK
		if err := a.mqtt.HealthCheck(ctx); err != nil {
			st.MQTT = err.Error()
			failed = err
		}
	}
	if a.influx != nil {
		st.InfluxDB = statusOK
		if err := a.influx.HealthCheck(ctx); err != nil {
			st.InfluxDB = err.Error()
			failed = err
		}
	}

	if failed != nil {
		return st, fmt.Errorf("unhealthy: %w", failed)
	}
	return st, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
