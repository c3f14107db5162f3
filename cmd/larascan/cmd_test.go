package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/larascan/internal/constants"
	"github.com/ludo-technologies/larascan/internal/testutil"
)

const passingJob = `<?php

namespace App\Jobs;

use Illuminate\Contracts\Queue\ShouldQueue;

class SendWelcomeEmail implements ShouldQueue
{
    public function handle(): void
    {
    }
}
`

const failingJob = `<?php

namespace App\Jobs;

use Illuminate\Contracts\Queue\ShouldQueue;

class EmailSender implements ShouldQueue
{
    public function handle(): void
    {
    }
}
`

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return constants.ExitPassed
	}
	var exitErr *CheckExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	for _, name := range []string{"path", "config", "format", "mode", "all", "verbose", "no-progress", "timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}

	shortFlags := map[string]string{"p": "path", "c": "config", "f": "format", "a": "all", "v": "verbose"}
	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if assert.NotNil(t, flag, "missing short flag -%s", short) {
			assert.Equal(t, long, flag.Name)
		}
	}
}

func TestCheckCmd_ExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  int
	}{
		{
			name:  "passing project",
			files: map[string]string{"app/Jobs/SendWelcomeEmail.php": passingJob},
			args:  []string{"jobs"},
			want:  constants.ExitPassed,
		},
		{
			name:  "violation",
			files: map[string]string{"app/Jobs/EmailSender.php": failingJob},
			args:  []string{"jobs"},
			want:  constants.ExitViolation,
		},
		{
			name:  "unknown preset",
			files: map[string]string{"app/Jobs/SendWelcomeEmail.php": passingJob},
			args:  []string{"jbos"},
			want:  constants.ExitError,
		},
		{
			name:  "bad format flag",
			files: map[string]string{"app/Jobs/SendWelcomeEmail.php": passingJob},
			args:  []string{"--format", "html"},
			want:  constants.ExitError,
		},
		{
			name:  "negative timeout",
			files: map[string]string{"app/Jobs/SendWelcomeEmail.php": passingJob},
			args:  []string{"--timeout=-1s"},
			want:  constants.ExitError,
		},
		{
			name:  "no app directory",
			files: map[string]string{"composer.json": "{}"},
			want:  constants.ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.WriteProject(t, tt.files)
			args := append([]string{"--path", root, "--no-progress"}, tt.args...)

			_, err := execute(t, checkCmd(), args...)
			assert.Equal(t, tt.want, exitCode(err), "err: %v", err)
		})
	}
}

func TestCheckCmd_TextReport(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"app/Jobs/EmailSender.php": failingJob})

	out, err := execute(t, checkCmd(), "--path", root, "--no-progress", "jobs")
	require.Error(t, err)

	assert.Contains(t, out, "JOB VIOLATION")
	assert.Contains(t, out, "EmailSender")
	assert.Contains(t, out, "FAILED")
}

func TestCheckCmd_ConfigFlag(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"app/Jobs/EmailSender.php": failingJob,
		"ci/larascan.yaml":         "report:\n  format: json\npresets:\n  enabled: [events]\n",
	})

	out, err := execute(t, checkCmd(), "--path", root, "--config", root+"/ci/larascan.yaml")
	require.NoError(t, err, "only the events preset is enabled")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "json report expected, got %s", out)
}

func TestListCmd(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"larascan.yaml": "presets:\n  enabled: [jobs]\n  namespaces:\n    actions: '\\Domain\\Actions'\n",
	})

	out, err := execute(t, listCmd(), "--path", root, "--steps")
	require.NoError(t, err)

	assert.Contains(t, out, "PRESET")
	assert.Contains(t, out, `Domain\Actions`)
	assert.Contains(t, out, "naming-prefix")
	assert.Regexp(t, `jobs\s+yes`, out)
	assert.Regexp(t, `models\s+no`, out)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "larascan version "))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"check", "list", "init", "watch", "version"} {
		assert.Contains(t, names, want)
	}
}
