package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/config"
	"librarian-backend/internal/domains/spreadsheet/workbook"
	"librarian-backend/pkg/container"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test"},
		Store:   config.StoreConfig{Driver: config.StoreDriverMemory},
		Lending: config.LendingConfig{DefaultDueDays: 14, LockTTL: time.Second},
	}
	c, err := container.NewContainerWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	var out bytes.Buffer
	return &app{out: &out, cfg: cfg, container: c}, &out
}

func run(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func writeWorkbook(t *testing.T, name string, rows ...[]interface{}) string {
	t.Helper()
	data, err := workbook.Write("Sheet1", []string{"a", "b", "c"}, rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestImportThenStats(t *testing.T) {
	a, out := newTestApp(t)

	students := writeWorkbook(t, "students.xlsx",
		[]interface{}{"Doe", "Jane", "7A"},
		[]interface{}{"Doe", "Jane", "7A"},
	)
	require.NoError(t, run(t, a, "import", "students", students))
	assert.Contains(t, out.String(), "Added (1):\n  - Jane Doe (7A)")
	assert.Contains(t, out.String(), "Skipped (1):\n  - Jane Doe (7A) - already exists")

	books := writeWorkbook(t, "books.xlsx", []interface{}{"Dune", "Herbert", 3})
	require.NoError(t, run(t, a, "import", "books", books))
	assert.Contains(t, out.String(), "Dune by Herbert (3 copies)")

	out.Reset()
	require.NoError(t, run(t, a, "stats"))
	assert.Contains(t, out.String(), "Students             1")
	assert.Contains(t, out.String(), "Copies               3")
	assert.Contains(t, out.String(), "7A                   1")
}

func TestExport(t *testing.T) {
	a, out := newTestApp(t)
	dir := t.TempDir()

	require.NoError(t, run(t, a, "export", "books", "-o", dir))
	assert.Equal(t, "No books to export\n", out.String())

	books := writeWorkbook(t, "books.xlsx", []interface{}{"Dune", "Herbert", 1})
	require.NoError(t, run(t, a, "import", "books", books))

	require.NoError(t, run(t, a, "export", "books", "-o", dir))
	matches, err := filepath.Glob(filepath.Join(dir, "books_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	assert.Error(t, run(t, a, "export", "authors"))
}

func TestImport_RejectsUnsupportedFile(t *testing.T) {
	a, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c"), 0o600))

	assert.Error(t, run(t, a, "import", "students", path))
}

func TestMigrate_MemoryStore(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, run(t, a, "migrate"))
	assert.Equal(t, "Store \"memory\" has no schema\n", out.String())
}

func TestArchive_RequiresObjectStorage(t *testing.T) {
	a, _ := newTestApp(t)

	err := run(t, a, "archive", "list")

	assert.ErrorIs(t, err, errNoArchive)
}
