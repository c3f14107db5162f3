package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/larascan/domain"
)

func sampleResponse() *domain.CheckResponse {
	return &domain.CheckResponse{
		Passed:  false,
		Version: "1.2.3",
		Results: []domain.PresetResult{
			{Preset: "commands", Category: domain.CategoryCommand, Passed: true, ClassesScoped: 3},
			{
				Preset:        "jobs",
				Category:      domain.CategoryJob,
				Passed:        false,
				ClassesScoped: 2,
				Violations: []domain.Diagnostic{{
					Category:  domain.CategoryJob,
					Rule:      "naming-prefix",
					Title:     "Job name must start with an action verb",
					Statement: "Job `EmailSender` does not start with a recognised verb.",
					Reason:    "A leading verb makes the purpose obvious.",
					Class:     `App\Jobs\EmailSender`,
					FilePath:  "app/Jobs/EmailSender.php",
					StartLine: 7,
					EndLine:   12,
					Options:   []string{"Send", "Process"},
					Fix:       "Rename `EmailSender`.",
					Example:   "class SendWelcomeEmail",
					Reference: "https://laravel.com/docs/queues#creating-jobs",
				}},
			},
		},
		Summary: domain.CheckSummary{FilesParsed: 5, ClassesFound: 5, PresetsRun: 2, PresetsFailed: 1, TotalViolations: 1},
	}
}

func TestReportFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportFormatter().Write(sampleResponse(), domain.OutputFormatText, &buf))

	out := buf.String()
	for _, want := range []string{
		"larascan 1.2.3",
		"PASS",
		"FAIL",
		"JOB VIOLATION",
		"Job name must start with an action verb",
		"app/Jobs/EmailSender.php:7-12",
		"Send, Process",
		"class SendWelcomeEmail",
		"https://laravel.com/docs/queues#creating-jobs",
		"FAILED",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "no escape codes when writing to a buffer")
}

func TestReportFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportFormatter().Write(sampleResponse(), domain.OutputFormatJSON, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["passed"])

	results := decoded["results"].([]any)
	require.Len(t, results, 2)
	violation := results[1].(map[string]any)["violations"].([]any)[0].(map[string]any)
	assert.Equal(t, "naming-prefix", violation["rule"])
	assert.Equal(t, "app/Jobs/EmailSender.php", violation["file"])
	assert.Equal(t, float64(7), violation["start_line"])
}

func TestReportFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportFormatter().Write(sampleResponse(), domain.OutputFormatYAML, &buf))

	var decoded struct {
		Passed  bool `yaml:"passed"`
		Summary struct {
			TotalViolations int `yaml:"total_violations"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.Passed)
	assert.Equal(t, 1, decoded.Summary.TotalViolations)
	assert.True(t, strings.Contains(buf.String(), "category: job"))
}

func TestReportFormatter_UnsupportedFormat(t *testing.T) {
	err := NewReportFormatter().Write(sampleResponse(), domain.OutputFormat("html"), &bytes.Buffer{})
	require.Error(t, err)

	var domainErr domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
}
