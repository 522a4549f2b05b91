package app

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
)

// CohortFileError records a file that could not be scored.
type CohortFileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// DimensionStats summarizes one dimension across the cohort.
type DimensionStats struct {
	Label  string  `json:"label"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// CohortReport is the aggregate over a directory of rating files.
type CohortReport struct {
	Directory        string                                  `json:"directory"`
	FilesScanned     int                                     `json:"files_scanned"`
	Scored           int                                     `json:"scored"`
	Failed           int                                     `json:"failed"`
	QualityCheckRate float64                                 `json:"quality_check_rate"`
	Dimensions       map[instrument.Dimension]DimensionStats `json:"dimensions"`
	Errors           []CohortFileError                       `json:"errors,omitempty"`
}

type cohortFileResult struct {
	file    string
	profile *scoring.Profile
	err     error
}

// ScoreCohort scores every rating file in dir with a bounded worker pool.
// Individual file failures are collected, not fatal; workers <= 0 means one
// worker per CPU.
func ScoreCohort(service *Service, dir string, workers int) (*CohortReport, error) {
	files, err := cohortFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("no rating files (csv, xlsx, json) found in %s", dir))
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]cohortFileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			profile, err := service.ScoreFile(file, scoring.Options{ID: id})
			results[i] = cohortFileResult{file: file, profile: profile, err: err}
			return nil
		})
	}
	// Workers never return errors; failures live in the result slots.
	_ = g.Wait()

	return summarizeCohort(dir, results), nil
}

func cohortFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read cohort directory %s", dir)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx", ".json":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func summarizeCohort(dir string, results []cohortFileResult) *CohortReport {
	report := &CohortReport{
		Directory:    dir,
		FilesScanned: len(results),
		Dimensions:   make(map[instrument.Dimension]DimensionStats),
	}

	scores := make(map[instrument.Dimension][]float64)
	checkCount := 0
	for _, res := range results {
		if res.err != nil {
			report.Failed++
			report.Errors = append(report.Errors, CohortFileError{
				File:  filepath.Base(res.file),
				Error: res.err.Error(),
			})
			continue
		}
		report.Scored++
		if res.profile.ResponseQuality.QualityFlag == scoring.QualityCheck {
			checkCount++
		}
		for dim, result := range res.profile.Dimensions {
			scores[dim] = append(scores[dim], result.Score)
		}
	}

	if report.Scored > 0 {
		report.QualityCheckRate = roundTo(float64(checkCount)/float64(report.Scored), 3)
	}
	for _, dim := range instrument.Dimensions() {
		xs := scores[dim]
		if len(xs) == 0 {
			continue
		}
		report.Dimensions[dim] = summarizeDimension(dim, xs)
	}
	return report
}

func summarizeDimension(dim instrument.Dimension, xs []float64) DimensionStats {
	sort.Float64s(xs)

	mean, _ := stats.Mean(xs)
	stddev := 0.0
	if len(xs) > 1 {
		stddev = stat.StdDev(xs, nil)
	}
	median := stat.Quantile(0.5, stat.Empirical, xs, nil)

	return DimensionStats{
		Label:  dim.Label(),
		N:      len(xs),
		Mean:   roundTo(mean, 2),
		StdDev: roundTo(stddev, 2),
		Min:    xs[0],
		Median: roundTo(median, 2),
		Max:    xs[len(xs)-1],
	}
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
