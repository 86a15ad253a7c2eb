package root_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eip/cmd/classify"
	"eip/cmd/export"
	"eip/cmd/inventory"
	"eip/cmd/order"
	"eip/cmd/project"
	"eip/cmd/root"
	"eip/cmd/rules"
	"eip/cmd/search"
	inv "eip/internal/inventory"
	"eip/internal/ledger"
	"eip/internal/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderCSV = `Digi-Key Part #,Manufacturer Part Number,Description,Customer Reference,Unit Price,Quantity
P1,CF14JT10K0,10k Resistor 1/4W,,1.00,3
P1,CF14JT10K0,10k Resistor 1/4W,,1.50,5
C1,K104K15X7RF5TL2,CAP CER 0.1UF 50V X7R,,0.25,10
,,,,Subtotal,14.50
`

func TestMain(m *testing.M) {
	root.Init()
	root.Cmd.AddCommand(classify.Cmd, order.Cmd, inventory.Cmd, project.Cmd, search.Cmd, export.Cmd, rules.Cmd)
	os.Exit(m.Run())
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "eip", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "electronic parts inventory")
	assert.Contains(t, root.Cmd.Long, "component categories")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "data-dir"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, name)
		assert.NotEmpty(t, flag.Usage, name)
	}
}

func TestInit_Idempotent(t *testing.T) {
	assert.NotPanics(t, root.Init)
}

func TestRootCommand_SubCommands(t *testing.T) {
	var names []string
	for _, c := range root.Cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"classify", "order", "inventory", "project", "search", "export", "rules"} {
		assert.Contains(t, names, want)
	}
}

func TestGetContainer_NotInitialized(t *testing.T) {
	original := root.AppContainer
	root.AppContainer = nil
	defer func() { root.AppContainer = original }()

	_, err := root.GetContainer()
	assert.Error(t, err)
	assert.NotNil(t, root.GetLogrusAdapter())
}

// isolate points HOME at a temporary directory and clears EIP_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "EIP_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(io.Discard)
	root.Cmd.SetArgs(args)
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	home := isolate(t)
	data := filepath.Join(home, "Saved_Lists")
	orderFile := filepath.Join(home, "order-100.csv")
	require.NoError(t, os.WriteFile(orderFile, []byte(orderCSV), 0600))

	out, err := run(t, "classify", "--explain=false", "--data-dir", data, "10k", "Resistor", "1/4W")
	require.NoError(t, err)
	assert.Equal(t, "Resistors\n", out)

	out, err = run(t, "order", "show", "-i", orderFile, "--category", "all", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "== Resistors ==")
	assert.Contains(t, out, "== Capacitors ==")
	assert.Contains(t, out, "Total: 14.50")

	out, err = run(t, "order", "add", "-i", orderFile, "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Added order order-100: 2 items, subtotal 14.50")
	assert.FileExists(t, filepath.Join(data, "Inventory.xlsx"))
	assert.FileExists(t, filepath.Join(data, "Past Orders", "order-100.csv"))

	_, err = run(t, "order", "add", "-i", orderFile, "--data-dir", data)
	assert.ErrorIs(t, err, ledger.ErrOrderAlreadyAdded)
	assert.Nil(t, root.AppContainer, "a failed command still closes the ledger")

	out, err = run(t, "order", "list", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "order-100")

	out, err = run(t, "inventory", "show", "--category", "Resistors", "--sort", "price", "--desc=false", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "10k Resistor 1/4W")
	assert.NotContains(t, out, "CAP CER")

	out, err = run(t, "inventory", "qty", "--description", "10k Resistor 1/4W", "--delta", "-3", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "quantity is now 5")

	out, err = run(t, "inventory", "add-item", "--description", "LED RED 5MM", "--price", "0.05", "--quantity", "20", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, `Added "LED RED 5MM" to LEDs`)

	out, err = run(t, "inventory", "delete", "--description", "LED RED 5MM", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	out, err = run(t, "inventory", "summary", "--format", "json", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, `"Resistors"`)
	assert.NotContains(t, out, "LED RED")

	out, err = run(t, "project", "create", "amp", "--type", "csv", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "amp.csv")

	out, err = run(t, "project", "add", "amp", "-i", orderFile, "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Project amp now has 2 items")

	out, err = run(t, "project", "list", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "amp.csv")

	out, err = run(t, "project", "show", "amp", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "CAP CER 0.1UF 50V X7R")

	out, err = run(t, "project", "qty", "amp", "--description", "CAP CER 0.1UF 50V X7R", "--delta", "-4", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "quantity is now 6")

	out, err = run(t, "project", "edit", "amp", "--description", "CAP CER 0.1UF 50V X7R",
		"--new-description", "CAP CER 0.1UF 50V X7R 0805", "--price", "0.0125", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, `Updated "CAP CER 0.1UF 50V X7R 0805" in project amp`)

	out, err = run(t, "project", "delete", "amp", "--description", "10k Resistor 1/4W", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "10k Resistor 1/4W" from project amp`)

	_, err = run(t, "project", "delete", "amp", "--description", "10k Resistor 1/4W", "--data-dir", data)
	assert.ErrorIs(t, err, inv.ErrItemNotFound)

	_, err = run(t, "project", "delete", "amp", "--description", "CAP CER 0.1UF 50V X7R 0805", "--data-dir", data)
	assert.ErrorIs(t, err, workspace.ErrBlankProject)

	out, err = run(t, "project", "show", "amp", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "CAP CER 0.1UF 50V X7R 0805")
	assert.NotContains(t, out, "10k Resistor")
	saved, err := os.ReadFile(filepath.Join(data, "Projects", "amp.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "0.0125", "the project keeps sub-cent prices")

	out, err = run(t, "search", "--section", "all", "--category", "all", "--text", "resistor", "--format", "text", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "10k Resistor 1/4W")
	assert.NotContains(t, out, "CAP CER")

	out, err = run(t, "export", "Inventory.xlsx", "--data-dir", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to")
	assert.FileExists(t, filepath.Join(home, "Downloads", "exported_electronics_lists", "Inventory.xlsx"))

	rulesFile := filepath.Join(home, "rules-dump.yaml")
	_, err = run(t, "rules", "dump", "-o", rulesFile, "--data-dir", data)
	require.NoError(t, err)
	assert.FileExists(t, rulesFile)
}

func TestCLI_ClosesContainerOnError(t *testing.T) {
	home := isolate(t)
	_, err := run(t, "project", "show", "missing", "--data-dir", filepath.Join(home, "data"))
	assert.ErrorIs(t, err, workspace.ErrProjectNotFound)
	assert.Nil(t, root.AppContainer)

	_, err = root.GetContainer()
	assert.Error(t, err)
}

func TestCLI_InvalidLogLevel(t *testing.T) {
	home := isolate(t)
	_, err := run(t, "rules", "list", "--log-level", "loud", "--data-dir", filepath.Join(home, "data"))
	assert.ErrorContains(t, err, "invalid log level")

	_, err = run(t, "rules", "list", "--log-level", "info", "--data-dir", filepath.Join(home, "data"))
	assert.NoError(t, err)
}
