package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fillscan/fillscan/internal/report"
)

// WriteReports persists the two report artifacts for a finished scan:
//
//	<dir>/<host>.txt   one accepted URL per line, report order
//	<dir>/<host>.json  array of {"url","status"} objects, same order
//
// The directory is created on demand. Returns the two paths written.
func WriteReports(rep *report.Report, dir string) (txtPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}

	txtPath = filepath.Join(dir, rep.Host+".txt")
	jsonPath = filepath.Join(dir, rep.Host+".json")

	var sb strings.Builder
	for _, r := range rep.Results {
		sb.WriteString(r.URL)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(txtPath, []byte(sb.String()), 0644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", txtPath, err)
	}

	results := rep.Results
	if results == nil {
		results = []report.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encoding JSON report: %w", err)
	}
	if err := os.WriteFile(jsonPath, append(data, '\n'), 0644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", jsonPath, err)
	}

	return txtPath, jsonPath, nil
}
