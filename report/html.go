package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/spf13/afero"
)

const indexFileName = "index.html"

var indexTemplate = template.Must(template.New(indexFileName).Funcs(template.FuncMap{
	"duration": func(r Result) string {
		return (time.Duration(r.Stop-r.Start) * time.Millisecond).String()
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>API Test Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: 4px 8px; text-align: left; vertical-align: top; }
.passed { color: #2e7d32; } .failed { color: #c62828; } .skipped { color: #757575; }
pre { white-space: pre-wrap; margin: 0; }
</style>
</head>
<body>
<h1>API Test Report</h1>
<p>Generated {{.Generated.Format "2006-01-02 15:04:05"}}:
<span class="passed">{{.Passed}} passed</span>,
<span class="failed">{{.Failed}} failed</span>,
<span class="skipped">{{.Skipped}} skipped</span></p>
{{range .Suites}}
<h2>{{.Name}}</h2>
<table>
<tr><th>Test</th><th>Status</th><th>Severity</th><th>Duration</th><th>Details</th></tr>
{{range .Results}}
<tr>
<td>{{.Name}}{{with .Label "story"}}<br><small>{{.}}</small>{{end}}</td>
<td class="{{.Status}}">{{.Status}}{{if .StatusDetails.Flaky}} (flaky){{end}}</td>
<td>{{.Label "severity"}}</td>
<td>{{duration .}}</td>
<td>{{with .Description}}<p>{{.}}</p>{{end}}{{with .StatusDetails.Message}}<pre>{{.}}</pre>{{end}}{{range .Attachments}}<a href="data/{{.Source}}">{{.Name}}</a>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

type indexData struct {
	Generated time.Time
	Passed    int
	Failed    int
	Skipped   int
	Suites    []suiteData
}

type suiteData struct {
	Name    string
	Results []Result
}

// Generate reads the result files in resultsDir and writes an HTML summary to reportDir,
// replacing anything that was there. It returns the path of the summary page.
func Generate(fs afero.Fs, resultsDir, reportDir string) (string, error) {
	results, err := ReadResults(fs, resultsDir)
	if err != nil {
		return "", err
	}

	data := indexData{Generated: time.Now()}
	suiteIndex := make(map[string]int)
	for _, r := range results {
		switch framework.Status(r.Status) {
		case framework.StatusPassed:
			data.Passed++
		case framework.StatusFailed:
			data.Failed++
		case framework.StatusSkipped:
			data.Skipped++
		}
		suite := r.Label("parentSuite")
		if suite == "" {
			suite = r.Label(framework.LabelEpic)
		}
		i, ok := suiteIndex[suite]
		if !ok {
			i = len(data.Suites)
			suiteIndex[suite] = i
			data.Suites = append(data.Suites, suiteData{Name: suite})
		}
		data.Suites[i].Results = append(data.Suites[i].Results, r)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("could not render report: %w", err)
	}

	if err := fs.RemoveAll(reportDir); err != nil {
		return "", fmt.Errorf("could not clean %s: %w", reportDir, err)
	}
	if err := fs.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create %s: %w", reportDir, err)
	}
	path := filepath.Join(reportDir, indexFileName)
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}
	for _, r := range results {
		for _, a := range r.Attachments {
			if err := copyFile(fs, filepath.Join(resultsDir, a.Source), filepath.Join(reportDir, "data", a.Source)); err != nil {
				return "", err
			}
		}
	}
	return path, nil
}

func copyFile(fs afero.Fs, from, to string) error {
	data, err := afero.ReadFile(fs, from)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", from, err)
	}
	if err := fs.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, to, data, 0o644)
}
