package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modepack.dev/pkg/modepack/internal/domain"
	domainmocks "modepack.dev/pkg/modepack/internal/domain/mocks"
	m "modepack.dev/pkg/modepack/internal/model"
)

func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()
	t.Chdir(t.TempDir())

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() {
		workflow = originalWorkflow
		viper.Set(pluginsDirConfigKey, "")
	})

	return mockWorkflow
}

func TestScanCmd_DefaultRoots(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.LocalRoot == m.Path(defaultGamemodesDir) && len(args.Roots) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"scan"})
	require.NoError(t, cmd.Execute())
}

func TestScanCmd_ParallelAndPluginsDir(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	viper.Set(pluginsDirConfigKey, "plugins")

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Parallel == 3 &&
			args.LocalRoot == m.Path(defaultGamemodesDir) &&
			len(args.Roots) == 1 && args.Roots[0] == "plugins"
	})).Return(nil)

	cmd.SetArgs([]string{"scan", "--parallel", "3"})
	require.NoError(t, cmd.Execute())
}

func TestScanCmd_ExplicitRoots(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.LocalRoot == "" &&
			len(args.Roots) == 2 &&
			args.Roots[0] == "one" &&
			args.Roots[1] == "two"
	})).Return(nil)

	cmd.SetArgs([]string{"scan", "one", "two"})
	require.NoError(t, cmd.Execute())
}

func TestScanCmd_PropagatesErrors(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Scan", mock.Anything, mock.Anything).Return(errors.New("interrupted"))

	cmd.SetArgs([]string{"scan"})
	require.EqualError(t, cmd.Execute(), "interrupted")
}
