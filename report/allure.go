package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	resultFileSuffix     = "-result.json"
	attachmentFileSuffix = "-attachment.txt"
)

// Result is one test result in the Allure results format, so that the files we write can
// also be processed by the Allure command-line tools.
type Result struct {
	UUID          string        `json:"uuid"`
	HistoryID     string        `json:"historyId"`
	FullName      string        `json:"fullName"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Status        string        `json:"status"`
	StatusDetails StatusDetails `json:"statusDetails"`
	Stage         string        `json:"stage"`
	Start         int64         `json:"start"`
	Stop          int64         `json:"stop"`
	Labels        []Label       `json:"labels"`
	Parameters    []Parameter   `json:"parameters,omitempty"`
	Attachments   []Attachment  `json:"attachments,omitempty"`
}

type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
	Flaky   bool   `json:"flaky,omitempty"`
}

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Label returns the value of the first label with the given name, or "" if there is none.
func (r Result) Label(name string) string {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Value
		}
	}
	return ""
}

// ResultWriter writes test results as Allure result files.
type ResultWriter struct {
	fs  afero.Fs
	dir string
}

func NewResultWriter(fs afero.Fs, dir string) *ResultWriter {
	return &ResultWriter{fs: fs, dir: dir}
}

// Clean deletes any results from a previous run.
func (w *ResultWriter) Clean() error {
	if err := w.fs.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("could not remove %s: %w", w.dir, err)
	}
	return w.fs.MkdirAll(w.dir, 0o755)
}

// Write writes one result file per test, plus an attachment for each test that produced
// debug output. It returns the results as written.
func (w *ResultWriter) Write(results framework.Results) ([]Result, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", w.dir, err)
	}
	ret := make([]Result, 0, len(results.Tests))
	for _, tr := range results.Tests {
		r := convertResult(tr)
		if len(tr.DebugOutput) > 0 {
			source := uuid.NewString() + attachmentFileSuffix
			var b strings.Builder
			tr.DebugOutput.Dump(&b, "")
			if err := afero.WriteFile(w.fs, filepath.Join(w.dir, source), []byte(b.String()), 0o644); err != nil {
				return nil, fmt.Errorf("could not write attachment: %w", err)
			}
			r.Attachments = append(r.Attachments, Attachment{Name: "debug output", Source: source, Type: "text/plain"})
		}
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(w.fs, filepath.Join(w.dir, r.UUID+resultFileSuffix), data, 0o644); err != nil {
			return nil, fmt.Errorf("could not write result for %s: %w", r.FullName, err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func convertResult(tr framework.TestResult) Result {
	fullName := tr.TestID.String()
	r := Result{
		UUID: uuid.NewString(),
		// Stable across runs, so that reports can track the history of each test.
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(fullName)).String(),
		FullName:    fullName,
		Name:        tr.TestID.Name(),
		Description: tr.Labels.Get(framework.LabelDescription),
		Status:      string(tr.Status),
		Stage:       "finished",
		Start:       tr.Start.UnixMilli(),
		Stop:        tr.Start.Add(tr.Duration).UnixMilli(),
	}
	for _, l := range tr.Labels {
		if l.Name != framework.LabelDescription {
			r.Labels = append(r.Labels, Label{Name: l.Name, Value: l.Value})
		}
	}
	if len(tr.TestID.Path) > 1 {
		r.Labels = append(r.Labels, Label{Name: "parentSuite", Value: tr.TestID.Suite()})
	}
	r.Labels = append(r.Labels, Label{Name: "language", Value: "go"})

	switch tr.Status {
	case framework.StatusFailed:
		var messages []string
		for _, e := range tr.Errors {
			messages = append(messages, e.Error())
		}
		r.StatusDetails.Message = strings.Join(messages, "\n")
	case framework.StatusSkipped:
		r.StatusDetails.Message = tr.SkipReason
	case framework.StatusPassed:
		r.StatusDetails.Flaky = tr.Attempts > 1
	}
	if tr.Attempts > 1 {
		r.Parameters = append(r.Parameters, Parameter{Name: "attempts", Value: fmt.Sprint(tr.Attempts)})
	}
	return r
}

// ReadResults loads every result file in dir, ordered by start time and then name.
func ReadResults(fs afero.Fs, dir string) ([]Result, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read results directory %s: %w", dir, err)
	}
	var ret []Result
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), resultFileSuffix) {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var r Result
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("malformed result file %s: %w", e.Name(), err)
		}
		ret = append(ret, r)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Start != ret[j].Start {
			return ret[i].Start < ret[j].Start
		}
		return ret[i].FullName < ret[j].FullName
	})
	return ret, nil
}
