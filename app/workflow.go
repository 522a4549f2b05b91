package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dsci3d/learning-energy-profile/adapters/render"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
)

// StageName identifies a workflow stage
type StageName string

const (
	StageScore  StageName = "score"
	StageRender StageName = "render"
	StageExport StageName = "export"
	StageVerify StageName = "verify"
)

const runDirLayout = "20060102_150405"

// workflows maps a workflow name to its ordered stages.
var workflows = map[string][]StageName{
	"minimal": {StageScore},
	"basic":   {StageScore, StageRender},
	"full":    {StageScore, StageRender, StageExport, StageVerify},
	"verify":  {StageVerify},
}

// WorkflowNames returns the known workflow names, sorted.
func WorkflowNames() []string {
	names := make([]string, 0, len(workflows))
	for name := range workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WorkflowStages returns the stage list for a workflow.
func WorkflowStages(name string) ([]StageName, bool) {
	stages, ok := workflows[name]
	return stages, ok
}

// StageResult records the outcome of a single stage execution.
type StageResult struct {
	Stage       StageName `json:"stage"`
	Success     bool      `json:"success"`
	OutputFiles []string  `json:"output_files,omitempty"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
}

// RunSummary provides high-level run statistics.
type RunSummary struct {
	TotalStages     int   `json:"total_stages"`
	Successful      int   `json:"successful"`
	Failed          int   `json:"failed"`
	TotalDurationMs int64 `json:"total_duration_ms"`
}

// WorkflowRun is the session record of one workflow execution. It is what
// gets appended to the session index.
type WorkflowRun struct {
	Workflow  string        `json:"workflow"`
	Input     string        `json:"input,omitempty"`
	RunDir    string        `json:"run_dir"`
	StartedAt time.Time     `json:"started_at"`
	Stages    []StageResult `json:"stages"`
	Summary   RunSummary    `json:"summary"`
}

// OK reports whether every stage succeeded.
func (r *WorkflowRun) OK() bool {
	return r.Summary.Failed == 0
}

func (r *WorkflowRun) addResult(result StageResult) {
	r.Stages = append(r.Stages, result)
	r.Summary.TotalStages++
	if result.Success {
		r.Summary.Successful++
	} else {
		r.Summary.Failed++
	}
	r.Summary.TotalDurationMs += result.DurationMs
}

// WorkflowRunner executes named workflows against rating files.
type WorkflowRunner struct {
	service *Service
	outDir  string
	now     func() time.Time
}

// NewWorkflowRunner creates a workflow runner writing below outDir.
func NewWorkflowRunner(service *Service, outDir string) *WorkflowRunner {
	return &WorkflowRunner{
		service: service,
		outDir:  outDir,
		now:     time.Now,
	}
}

// WithClock overrides the runner's clock. Run directories are named after
// the clock, so tests inject fixed times.
func (r *WorkflowRunner) WithClock(now func() time.Time) *WorkflowRunner {
	r.now = now
	return r
}

// Run executes the named workflow. A failed stage aborts the remaining
// stages; the partial run is still recorded in the session index.
func (r *WorkflowRunner) Run(name, inputPath string, opts scoring.Options) (*WorkflowRun, error) {
	stages, ok := workflows[name]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown workflow %q (have: %v)", name, WorkflowNames()))
	}

	startedAt := r.now().UTC()
	runDir := filepath.Join(r.outDir, startedAt.Format(runDirLayout))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, apperrors.Wrapf(err, "failed to create run directory %s", runDir)
	}

	run := &WorkflowRun{
		Workflow:  name,
		Input:     inputPath,
		RunDir:    runDir,
		StartedAt: startedAt,
	}

	var profile *scoring.Profile
	for _, stage := range stages {
		start := time.Now()
		files, err := r.runStage(stage, inputPath, runDir, &profile, opts)
		result := StageResult{
			Stage:       stage,
			Success:     err == nil,
			OutputFiles: files,
			DurationMs:  time.Since(start).Milliseconds(),
		}
		if err != nil {
			result.Error = err.Error()
		}
		run.addResult(result)
		if err != nil {
			break
		}
	}

	if err := r.appendSessionIndex(run); err != nil {
		return run, apperrors.Wrap(err, "failed to write session index")
	}
	return run, nil
}

func (r *WorkflowRunner) runStage(stage StageName, inputPath, runDir string, profile **scoring.Profile, opts scoring.Options) ([]string, error) {
	switch stage {
	case StageScore:
		scored, err := r.service.ScoreFile(inputPath, opts)
		if err != nil {
			return nil, err
		}
		*profile = scored
		path := filepath.Join(runDir, "profile.json")
		if err := writeTo(path, func(w io.Writer) error {
			return render.WriteJSON(w, scored)
		}); err != nil {
			return nil, err
		}
		return []string{"profile.json"}, nil

	case StageRender:
		if *profile == nil {
			return nil, fmt.Errorf("render stage requires a scored profile")
		}
		files := []string{"report.txt", "report.md", "report.html"}
		writers := map[string]func(io.Writer) error{
			"report.txt": func(w io.Writer) error {
				return render.WriteText(w, *profile, render.TextOptions{})
			},
			"report.md": func(w io.Writer) error {
				return render.WriteMarkdown(w, *profile)
			},
			"report.html": func(w io.Writer) error {
				return render.WriteHTML(w, *profile)
			},
		}
		for _, name := range files {
			if err := writeTo(filepath.Join(runDir, name), writers[name]); err != nil {
				return nil, err
			}
		}
		return files, nil

	case StageExport:
		if *profile == nil {
			return nil, fmt.Errorf("export stage requires a scored profile")
		}
		if err := render.WriteWorkbook(filepath.Join(runDir, "profile.xlsx"), *profile); err != nil {
			return nil, err
		}
		return []string{"profile.xlsx"}, nil

	case StageVerify:
		report := SelfCheck()
		path := filepath.Join(runDir, "verify.json")
		if err := writeTo(path, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}); err != nil {
			return nil, err
		}
		if !report.OK() {
			return []string{"verify.json"}, fmt.Errorf("self-check failed: %d of %d checks", report.Failed, report.Passed+report.Failed)
		}
		return []string{"verify.json"}, nil

	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

func (r *WorkflowRunner) appendSessionIndex(run *WorkflowRun) error {
	dir := filepath.Join(r.outDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, run.StartedAt.Format(runDirLayout)+".json")
	return writeTo(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	})
}

// ListSessions reads the session index, newest first.
func ListSessions(outDir string) ([]*WorkflowRun, error) {
	dir := filepath.Join(outDir, "sessions")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []*WorkflowRun
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var run WorkflowRun
		if err := json.Unmarshal(data, &run); err != nil {
			return nil, fmt.Errorf("corrupt session file %s: %w", entry.Name(), err)
		}
		runs = append(runs, &run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

func writeTo(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
