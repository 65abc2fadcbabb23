package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/localstore/internal/store"
)

// writeTestConfig writes a config with MQTT and InfluxDB disabled and
// points LOCALSTORE_CONFIG at it.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "localstore.yaml")
	content := `
database:
  dir: "` + filepath.Join(dir, "data") + `"
  name: "ecc.db"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stderr
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("LOCALSTORE_CONFIG", configPath)
	return configPath
}

// runCmd runs the CLI and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := run(ctx, args, &out)
	return strings.TrimSpace(out.String()), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"get", []string{"get", "notes"}, false},
		{"get-where", []string{"get-where", "notes", "id=1"}, false},
		{"insert", []string{"insert", "notes", `{"title":"x"}`}, false},
		{"insert-batch", []string{"insert-batch", "notes", `[{"title":"x"}]`}, false},
		{"health", []string{"health"}, false},
		{"missing command", nil, true},
		{"unknown command", []string{"drop", "notes"}, true},
		{"wrong arity", []string{"get"}, true},
		{"bad record", []string{"insert", "notes", `[1]`}, true},
		{"bad batch", []string{"insert-batch", "notes", `{"a":1}`}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCommand(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errUsage) {
				t.Errorf("parseCommand() error = %v, want errUsage", err)
			}
		})
	}
}

func TestParseCommand_KeepsRecordOrder(t *testing.T) {
	inv, err := parseCommand([]string{"update", "notes", `{"id":3,"title":"x"}`})
	if err != nil {
		t.Fatalf("parseCommand() error = %v", err)
	}

	fields := inv.record.Fields()
	if len(fields) != 2 || fields[0].Column != "id" || fields[1].Column != "title" {
		t.Errorf("record fields = %+v, want id then title", fields)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("LOCALSTORE_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("LOCALSTORE_CONFIG", "/etc/localstore.yaml")
	if got := getConfigPath(); got != "/etc/localstore.yaml" {
		t.Errorf("getConfigPath() = %q, want env value", got)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("database: [not, a, map"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := runCmd(t, "-config", configPath, "health")
	if err == nil {
		t.Fatal("run() should fail with invalid config")
	}
}

func TestRun_UsageError(t *testing.T) {
	writeTestConfig(t)

	_, err := runCmd(t, "frobnicate")
	if !errors.Is(err, errUsage) {
		t.Errorf("run() error = %v, want errUsage", err)
	}
}

func TestRun_CRUD(t *testing.T) {
	writeTestConfig(t)

	if _, err := runCmd(t, "query", "CREATE TABLE notes (id INTEGER PRIMARY KEY, title TEXT)"); err != nil {
		t.Fatalf("query error = %v", err)
	}

	out, err := runCmd(t, "get", "notes")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if out != "false" {
		t.Errorf("get on empty table = %s, want false", out)
	}

	out, err = runCmd(t, "insert", "notes", `{"title":"first"}`)
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}
	if out != `{"insert_id":1}` {
		t.Errorf("insert = %s", out)
	}

	out, err = runCmd(t, "get", "notes")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	var row map[string]any
	if err := json.Unmarshal([]byte(out), &row); err != nil {
		t.Fatalf("get output %s: %v", out, err)
	}
	if row["title"] != "first" {
		t.Errorf("row = %v", row)
	}

	if _, err := runCmd(t, "insert", "notes", `{"title":"second"}`); err != nil {
		t.Fatalf("insert error = %v", err)
	}
	out, err = runCmd(t, "get", "notes")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil || len(rows) != 2 {
		t.Fatalf("get output %s, want two rows (err %v)", out, err)
	}

	if _, err := runCmd(t, "update", "notes", `{"id":2,"title":"renamed"}`); err != nil {
		t.Fatalf("update error = %v", err)
	}
	out, err = runCmd(t, "get-where", "notes", "title = 'renamed'")
	if err != nil {
		t.Fatalf("get-where error = %v", err)
	}
	if !strings.Contains(out, `"renamed"`) {
		t.Errorf("get-where = %s", out)
	}

	if _, err := runCmd(t, "remove", "notes", "id=1"); err != nil {
		t.Fatalf("remove error = %v", err)
	}

	_, err = runCmd(t, "update", "notes", `{"title":"no id"}`)
	if !errors.Is(err, store.ErrMissingID) {
		t.Errorf("update without id error = %v, want ErrMissingID", err)
	}

	_, err = runCmd(t, "insert-batch", "notes", `[{"title":"a"}]`)
	if !errors.Is(err, store.ErrNotImplemented) {
		t.Errorf("insert-batch error = %v, want ErrNotImplemented", err)
	}

	_, err = runCmd(t, "insert", "missing", `{"x":1}`)
	if !errors.Is(err, store.ErrInsertFailed) {
		t.Errorf("insert into missing table error = %v, want ErrInsertFailed", err)
	}
}

func TestRun_Health(t *testing.T) {
	writeTestConfig(t)

	out, err := runCmd(t, "health")
	if err != nil {
		t.Fatalf("health error = %v", err)
	}

	var st healthStatus
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("health output %s: %v", out, err)
	}
	if st.Database != statusOK || st.MQTT != statusDisabled || st.InfluxDB != statusDisabled {
		t.Errorf("health = %+v", st)
	}
}
