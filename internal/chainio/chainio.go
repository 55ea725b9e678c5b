// Package chainio stores sampler chains as Parquet files.
//
// Each iteration becomes one row. Files written by [WriteFile] are replaced
// atomically, so a checkpoint interrupted mid-write leaves the previous
// checkpoint intact.
package chainio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-lisa/lisa/mcmc"
	"github.com/parquet-go/parquet-go"
)

// Sample is one chain row.
type Sample struct {
	Iteration    int64   `parquet:"iteration"`
	Fdot         float64 `parquet:"fdot"`
	LogPosterior float64 `parquet:"log_posterior"`
	Accepted     bool    `parquet:"accepted"`
}

const readBatch = 1024

var errInconsistentResult = errors.New("chainio: result slices differ in length")

// Samples flattens res into rows.
func Samples(res mcmc.Result) ([]Sample, error) {
	n := res.Len()
	if len(res.LogPosterior) != n || len(res.Accepted) != n {
		return nil, errInconsistentResult
	}

	rows := make([]Sample, n)
	for i := range rows {
		rows[i] = Sample{
			Iteration:    int64(i),
			Fdot:         res.Chain[i],
			LogPosterior: res.LogPosterior[i],
			Accepted:     res.Accepted[i],
		}
	}
	return rows, nil
}

// Result rebuilds a chain from rows ordered by iteration.
func Result(rows []Sample) (mcmc.Result, error) {
	res := mcmc.Result{
		Chain:        make([]float64, len(rows)),
		LogPosterior: make([]float64, len(rows)),
		Accepted:     make([]bool, len(rows)),
	}
	for i, r := range rows {
		if r.Iteration != int64(i) {
			return mcmc.Result{}, fmt.Errorf("chainio: row %d has iteration %d", i, r.Iteration)
		}
		res.Chain[i] = r.Fdot
		res.LogPosterior[i] = r.LogPosterior
		res.Accepted[i] = r.Accepted
	}
	return res, nil
}

// Write encodes res as a zstd-compressed Parquet stream.
func Write(w io.Writer, res mcmc.Result) error {
	rows, err := Samples(res)
	if err != nil {
		return err
	}

	pw := parquet.NewGenericWriter[Sample](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("chainio: write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("chainio: close writer: %w", err)
	}
	return nil
}

// Read decodes all rows from a Parquet stream.
func Read(ra io.ReaderAt) ([]Sample, error) {
	gr := parquet.NewGenericReader[Sample](ra)
	defer gr.Close()

	out := make([]Sample, 0, readBatch)
	batch := make([]Sample, readBatch)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("chainio: read rows: %w", err)
		}
	}
	return out, nil
}

// WriteFile writes res to path through a temporary file in the same
// directory and renames it into place.
func WriteFile(path string, res mcmc.Result) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("chainio: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, res); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("chainio: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("chainio: %w", err)
	}
	return nil
}

// ReadFile loads a chain written by WriteFile.
func ReadFile(path string) (mcmc.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return mcmc.Result{}, fmt.Errorf("chainio: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return mcmc.Result{}, err
	}
	return Result(rows)
}

// Checkpoint returns a sampler hook that rewrites path on every call.
func Checkpoint(path string) mcmc.CheckpointFunc {
	return func(res mcmc.Result) error {
		return WriteFile(path, res)
	}
}
