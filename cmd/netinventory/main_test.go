package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env is an isolated working directory with a config file pointing every
// path inside it.
type env struct {
	dir    string
	config string
}

func newEnv(t *testing.T, backend string) env {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`data:
  file: %[1]s/inventory.json
storage:
  backend: %[2]s
  sqlite_path: %[1]s/netinventory.db
export:
  file: %[1]s/inventory_export.csv
log:
  output: file
  file: %[1]s/logs/netinventory.log
metrics:
  textfile: %[1]s/netinventory.prom
`, filepath.ToSlash(dir), backend)
	path := filepath.Join(dir, "netinventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return env{dir: dir, config: path}
}

func (e env) run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(append([]string{"-config", e.config}, args...),
		streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return code, out.String(), errOut.String()
}

var addDeviceScript = strings.Join([]string{
	"3", "core-sw", "Switch", "10.0.0.2", "HQ", "netops", "Active", "uplink",
	"3", "lab-ap", "AP", "2001:db8::20", "Lab", "qa", "Spare", "",
	"8",
}, "\n") + "\n"

func TestRun_ShellSavesThenExportAndReport(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			e := newEnv(t, backend)

			code, out, errOut := e.run(t, addDeviceScript)
			require.Equal(t, 0, code, errOut)
			assert.Contains(t, out, "Added device DEV-0001.")
			assert.Contains(t, out, "Added device DEV-0002.")
			assert.Contains(t, out, "Saved. Goodbye!")

			code, out, errOut = e.run(t, "", "export")
			require.Equal(t, 0, code, errOut)
			assert.Contains(t, out, "Exported 2 device(s)")
			csv, err := os.ReadFile(filepath.Join(e.dir, "inventory_export.csv"))
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
			require.Len(t, lines, 3)
			assert.True(t, strings.HasPrefix(lines[1], "DEV-0001,core-sw,Switch,10.0.0.2,HQ,netops,Active,uplink,"))

			code, out, errOut = e.run(t, "", "report", "-format", "json")
			require.Equal(t, 0, code, errOut)
			var report struct {
				Total    int            `json:"total"`
				ByStatus map[string]int `json:"by_status"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Equal(t, 2, report.Total)
			assert.Equal(t, map[string]int{"Active": 1, "Spare": 1}, report.ByStatus)
		})
	}
}

func TestRun_ShellCorruptDataFileWarns(t *testing.T) {
	e := newEnv(t, "json")
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "inventory.json"), []byte("{nope"), 0o600))

	code, out, _ := e.run(t, "1\n9\n")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[ERROR] could not read")
	assert.Contains(t, out, "No devices found.")

	data, err := os.ReadFile(filepath.Join(e.dir, "inventory.json"))
	require.NoError(t, err)
	assert.Equal(t, "{nope", string(data), "exit without saving leaves the file alone")
}

func TestRun_MetricsTextfile(t *testing.T) {
	e := newEnv(t, "json")

	code, _, errOut := e.run(t, addDeviceScript)
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(filepath.Join(e.dir, "netinventory.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `netinventory_operations_total{op="add"} 2`)
	assert.Contains(t, string(data), "netinventory_devices 2")
}

func TestRun_Plan(t *testing.T) {
	e := newEnv(t, "json")

	code, out, errOut := e.run(t, "", "plan", "10.0.10.5/31")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "10.0.10.4")
	assert.Contains(t, out, "/31")

	code, out, errOut = e.run(t, "", "plan", "-format", "json", "2001:db8::/64")
	require.Equal(t, 0, code, errOut)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "18446744073709551616", doc["total_addresses"])
	assert.Nil(t, doc["broadcast_address"])

	code, out, errOut = e.run(t, "", "plan", "-format", "yaml", "192.168.1.0/30")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "broadcast_address: 192.168.1.3")
}

func TestRun_PlanLeavesNoLogFile(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)

	var out, errOut bytes.Buffer
	code := run([]string{"plan", "192.168.1.0/24"},
		streams{in: strings.NewReader(""), out: &out, err: &errOut})
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "192.168.1.255")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_PlanHonoursConfiguredLogFile(t *testing.T) {
	e := newEnv(t, "json")

	code, _, errOut := e.run(t, "", "plan", "10.0.0.0/8")
	require.Equal(t, 0, code, errOut)
	assert.FileExists(t, filepath.Join(e.dir, "logs", "netinventory.log"))
}

func TestRun_PlanErrors(t *testing.T) {
	e := newEnv(t, "json")

	code, _, errOut := e.run(t, "", "plan", "10.0.0.0/33")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error:")

	code, _, _ = e.run(t, "", "plan")
	assert.Equal(t, 2, code)

	code, _, _ = e.run(t, "", "plan", "-format", "xml", "10.0.0.0/8")
	assert.Equal(t, 2, code)
}

func TestRun_ExportEmpty(t *testing.T) {
	e := newEnv(t, "json")

	code, out, _ := e.run(t, "", "export", "-format", "yaml", "-output", filepath.Join(e.dir, "out.yaml"))
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Nothing to export")
	_, err := os.Stat(filepath.Join(e.dir, "out.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ExportUnknownFormat(t *testing.T) {
	e := newEnv(t, "json")
	code, _, _ := e.run(t, "", "export", "-format", "xlsx")
	assert.Equal(t, 2, code)
}

func TestRun_ReportEmpty(t *testing.T) {
	e := newEnv(t, "json")
	code, out, _ := e.run(t, "", "report")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Inventory is empty.")
}

func TestRun_BackupRestore(t *testing.T) {
	e := newEnv(t, "json")
	code, _, errOut := e.run(t, addDeviceScript)
	require.Equal(t, 0, code, errOut)

	archive := filepath.Join(t.TempDir(), "inv.tar.gz")
	code, out, errOut := e.run(t, "", "backup", "-output", archive)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Backup created")

	dst := t.TempDir()
	code, out, errOut = e.run(t, "", "restore", "-input", archive, "-data-dir", dst)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Restore complete")
	assert.FileExists(t, filepath.Join(dst, "inventory.json"))
	assert.FileExists(t, filepath.Join(dst, "netinventory.yaml"))

	code, _, _ = e.run(t, "", "restore")
	assert.Equal(t, 2, code)
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"version"}, streams{in: strings.NewReader(""), out: &out, err: &out})
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out.String(), "netinventory dev"))

	out.Reset()
	code = run([]string{"version", "-format", "json"}, streams{in: strings.NewReader(""), out: &out, err: &out})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"version": "dev"`)
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"frobnicate"}, streams{in: strings.NewReader(""), out: &out, err: &errOut})
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), `unknown command "frobnicate"`)
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: postgres\n"), 0o600))

	var out, errOut bytes.Buffer
	code := run([]string{"-config", path, "report"}, streams{in: strings.NewReader(""), out: &out, err: &errOut})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "storage.backend")
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
