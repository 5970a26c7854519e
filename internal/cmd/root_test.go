package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "pathscope")
	assert.Contains(t, output, "scan")
	assert.Contains(t, output, "pick")
	assert.Contains(t, output, "--exclude")
}

func TestRootCommand_Version(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), Version)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "pathscope", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "scan")
	assert.Contains(t, names, "pick")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"unexpected"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, IsReported(err))
}

func TestIsReported(t *testing.T) {
	base := errors.New("失敗")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"通知済み", &ReportedError{Err: base}, true},
		{"ラップされた通知済み", fmt.Errorf("外側: %w", &ReportedError{Err: base}), true},
		{"未通知", base, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReported(tt.err))
		})
	}
}

func TestReportedError_Unwrap(t *testing.T) {
	base := errors.New("失敗")
	err := &ReportedError{Err: base}

	assert.True(t, errors.Is(err, base))
	assert.True(t, strings.Contains(err.Error(), "失敗"))
}
