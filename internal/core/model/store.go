package model

import (
	"errors"
	"os"
	"path/filepath"

	perr "phishguard/internal/platform/errors"
)

// Save writes the artifact to path atomically
// The blob goes to a temp file in the same directory, is fsynced, then renamed over path
func Save(a *Artifact, path string) (err error) {
	if a == nil {
		return perr.InvalidArgf("model: nil artifact")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "model: mkdir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "model: create temp in %s", dir)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = a.Encode(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: fsync")
	}
	if err = tmp.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: close temp")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: chmod")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "model: rename into %s", path)
	}
	return nil
}

// Load reads and validates the artifact at path
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeArtifactNotFound,
				"model: no artifact at %s; train one first with phishguard-train", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifactCorrupt, "model: open %s", path)
	}
	defer f.Close()
	if st, err := f.Stat(); err == nil && st.IsDir() {
		return nil, perr.Newf(perr.ErrorCodeArtifactCorrupt, "model: %s is a directory", path)
	}
	return Decode(f)
}
