package model

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"phishguard/internal/core/logreg"
	"phishguard/internal/core/textvec"
	perr "phishguard/internal/platform/errors"
)

// magic prefixes every blob so foreign files fail fast
var magic = []byte("PGMA")

const formatVersion = 1

// snapshot is the gob wire shape; fields are only ever added
type snapshot struct {
	Version   int
	ID        string
	CreatedAt time.Time

	NgramMin    int
	NgramMax    int
	MaxFeatures int
	Terms       []string
	IDF         []float64

	Classes   []string
	Coef      []float64
	Intercept float64

	Info Info
}

// Encode writes the artifact as magic + zstd(gob(snapshot))
func (a *Artifact) Encode(w io.Writer) error {
	cfg := a.Vectorizer.Config()
	snap := snapshot{
		Version:     formatVersion,
		ID:          a.ID.String(),
		CreatedAt:   a.CreatedAt,
		NgramMin:    cfg.NgramMin,
		NgramMax:    cfg.NgramMax,
		MaxFeatures: cfg.MaxFeatures,
		Terms:       a.Vectorizer.Terms(),
		IDF:         a.Vectorizer.IDF(),
		Classes:     a.Classifier.Classes(),
		Coef:        a.Classifier.Coef(),
		Intercept:   a.Classifier.Intercept(),
		Info:        a.Info,
	}
	if _, err := w.Write(magic); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: write header")
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: zstd writer")
	}
	if err := gob.NewEncoder(zw).Encode(&snap); err != nil {
		_ = zw.Close()
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: encode snapshot")
	}
	if err := zw.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "model: flush zstd")
	}
	return nil
}

// Decode reads a blob produced by Encode and validates its shape
func Decode(r io.Reader) (*Artifact, error) {
	br := bufio.NewReader(r)
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(br, head); err != nil || !bytes.Equal(head, magic) {
		return nil, perr.Newf(perr.ErrorCodeArtifactCorrupt, "model: missing artifact header")
	}
	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifactCorrupt, "model: zstd reader")
	}
	defer zr.Close()

	var snap snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifactCorrupt, "model: decode snapshot")
	}
	return fromSnapshot(snap)
}

func fromSnapshot(s snapshot) (*Artifact, error) {
	corrupt := func(err error, what string) error {
		return perr.Wrapf(err, perr.ErrorCodeArtifactCorrupt, "model: %s", what)
	}
	if s.Version != formatVersion {
		return nil, perr.Newf(perr.ErrorCodeArtifactCorrupt, "model: unsupported format version %d", s.Version)
	}
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, corrupt(err, "bad artifact id")
	}
	cfg := textvec.Config{NgramMin: s.NgramMin, NgramMax: s.NgramMax, MaxFeatures: s.MaxFeatures}
	vec, err := textvec.Restore(cfg, s.Terms, s.IDF)
	if err != nil {
		return nil, corrupt(err, "vectorizer state")
	}
	clf, err := logreg.Restore(s.Classes, s.Coef, s.Intercept)
	if err != nil {
		return nil, corrupt(err, "classifier state")
	}
	if err := check(vec, clf); err != nil {
		return nil, corrupt(err, "shape mismatch")
	}
	return &Artifact{ID: id, CreatedAt: s.CreatedAt, Vectorizer: vec, Classifier: clf, Info: s.Info}, nil
}
