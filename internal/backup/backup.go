// Package backup writes and restores tar.gz archives of the inventory data
// file and its config file.
package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/HerbHall/netinventory/internal/store"
)

// sqliteMagic opens every SQLite 3 database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// ErrExists is returned by Restore when a target file exists and force is off.
var ErrExists = errors.New("file already exists")

// Backup creates a tar.gz archive containing the inventory data file and an
// optional config file. A SQLite data file gets a WAL checkpoint first so the
// copied file is self-contained.
func Backup(ctx context.Context, dataPath, configPath, outputPath string) (err error) {
	if _, err := os.Stat(dataPath); err != nil {
		return fmt.Errorf("data file not found: %w", err)
	}

	isDB, err := isSQLite(dataPath)
	if err != nil {
		return fmt.Errorf("inspect data file: %w", err)
	}
	if isDB {
		if err := checkpointWAL(ctx, dataPath); err != nil {
			return fmt.Errorf("WAL checkpoint failed: %w", err)
		}
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil {
			err = cerr
		}
	}()

	gw := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gw)

	if err := addFileToTar(tw, dataPath, filepath.Base(dataPath)); err != nil {
		return fmt.Errorf("adding data file to archive: %w", err)
	}

	// A missing config file is skipped silently.
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finishing tar: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("finishing gzip: %w", err)
	}
	return nil
}

// Restore extracts the archive at inputPath into dir and returns the paths
// written. Entries are flattened to their base name. Existing files are only
// replaced when force is set.
func Restore(_ context.Context, inputPath, dir string, force bool) ([]string, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading gzip: %w", err)
	}
	defer gr.Close()

	var restored []string
	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return restored, fmt.Errorf("reading tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Base(filepath.Clean(hdr.Name))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return restored, fmt.Errorf("invalid archive entry %q", hdr.Name)
		}
		target := filepath.Join(dir, name)

		if !force {
			if _, err := os.Stat(target); err == nil {
				return restored, fmt.Errorf("%s: %w (use -force to overwrite)", target, ErrExists)
			}
		}
		if err := writeFile(target, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
			return restored, fmt.Errorf("restoring %s: %w", name, err)
		}
		restored = append(restored, target)
	}

	if len(restored) == 0 {
		return nil, fmt.Errorf("archive %s contains no files", inputPath)
	}
	return restored, nil
}

func writeFile(path string, r io.Reader, perm fs.FileMode) error {
	if perm == 0 {
		perm = 0o600
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func isSQLite(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(sqliteMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(head, sqliteMagic), nil
}

// checkpointWAL opens the database, runs a TRUNCATE checkpoint to flush the
// WAL, and closes the connection.
func checkpointWAL(ctx context.Context, dbPath string) error {
	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Checkpoint(ctx)
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}
