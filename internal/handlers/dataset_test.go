package handlers

import (
	"archive/tar"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastore/job-service/internal/storage"
)

func writeArchive(t *testing.T, dir, name string, entries ...string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name+".tar"))
	require.NoError(t, err)
	defer f.Close()

	tw := tar.NewWriter(f)
	for _, entry := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: entry, Mode: 0o644, Size: 0}))
	}
	require.NoError(t, tw.Close())
}

func TestListImportableDatasets(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, dir, "PERSON_INCOME", "PERSON_INCOME.json", "chunks/")
	h := NewDatasetHandler(storage.NewInputDirectory(dir, nopLogger), nopLogger)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/importable-datasets", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"datasetName":"PERSON_INCOME","hasMetadata":true,"hasData":true,"isArchived":false}]`, rec.Body.String())
}

func TestDeleteImportableDataset(t *testing.T) {
	cases := []struct {
		Name    string
		Dataset string
		Status  int
		Body    string
	}{
		{"existing", "PERSON_INCOME.tar", http.StatusOK, `{"message":"OK, PERSON_INCOME.tar deleted"}`},
		{"missing", "NOPE.tar", http.StatusNotFound, ""},
		{"traversal", "..", http.StatusBadRequest, ""},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			dir := t.TempDir()
			writeArchive(t, dir, "PERSON_INCOME", "PERSON_INCOME.json")
			h := NewDatasetHandler(storage.NewInputDirectory(dir, nopLogger), nopLogger)

			rec := httptest.NewRecorder()
			h.Delete(rec, newRequest(t, http.MethodDelete, "/importable-datasets/"+c.Dataset, nil, map[string]string{"name": c.Dataset}))

			require.Equal(t, c.Status, rec.Code)
			if c.Body != "" {
				assert.JSONEq(t, c.Body, rec.Body.String())
				assert.NoFileExists(t, filepath.Join(dir, c.Dataset))
			}
		})
	}
}
