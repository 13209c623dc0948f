// Package storage inspects the input directory where dataset archives wait to
// be imported.
package storage

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/models"
)

const (
	archiveDirName = "archive"
	archiveExt     = ".tar"
	dataEntry      = "chunks"
)

var datasetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-.]*$`)

type InputDirectory struct {
	dir    string
	logger zerolog.Logger
}

func NewInputDirectory(dir string, logger zerolog.Logger) *InputDirectory {
	return &InputDirectory{
		dir:    dir,
		logger: logger.With().Str("component", "input-directory").Logger(),
	}
}

// ImportableDatasets lists the tar archives in the input directory and its
// archive subdirectory. Archives without a metadata file are skipped.
func (d *InputDirectory) ImportableDatasets() ([]models.ImportableDataset, error) {
	datasets, err := d.scan(d.dir, false)
	if err != nil {
		return nil, err
	}

	archiveDir := filepath.Join(d.dir, archiveDirName)
	if info, err := os.Stat(archiveDir); err == nil && info.IsDir() {
		archived, err := d.scan(archiveDir, true)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, archived...)
	}
	return datasets, nil
}

func (d *InputDirectory) scan(dir string, archived bool) ([]models.ImportableDataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	datasets := []models.ImportableDataset{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != archiveExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), archiveExt)
		names, err := tarEntryNames(filepath.Join(dir, entry.Name()))
		if err != nil {
			d.logger.Warn().Err(err).Str("dataset", name).Msg("couldn't read tarfile")
			continue
		}
		dataset := models.ImportableDataset{
			DatasetName: name,
			HasData:     names[dataEntry],
			HasMetadata: names[name+".json"],
			IsArchived:  archived,
		}
		if dataset.HasMetadata {
			datasets = append(datasets, dataset)
		}
	}
	return datasets, nil
}

func tarEntryNames(file string) (map[string]bool, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := map[string]bool{}
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", filepath.Base(file))
		}
		clean := path.Clean(strings.TrimPrefix(hdr.Name, "./"))
		names[clean] = true
		names[strings.SplitN(clean, "/", 2)[0]] = true
	}
	if len(names) == 0 {
		return nil, errors.Errorf("%s is empty or not a tar archive", filepath.Base(file))
	}
	return names, nil
}

// Delete removes a file from the input directory.
func (d *InputDirectory) Delete(name string) error {
	if !datasetNamePattern.MatchString(name) || strings.Contains(name, "..") {
		return apperrors.NameValidation(name)
	}
	err := os.Remove(filepath.Join(d.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return &apperrors.Error{
			Sentinel: apperrors.ErrNotFound,
			Message:  fmt.Sprintf("File %s not found", name),
			Resource: "file",
		}
	}
	return errors.Wrapf(err, "delete %s", name)
}
