package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/toil/cmd/toil/commands"
	"go.trai.ch/toil/internal/app"
	"go.trai.ch/toil/internal/build"
	"go.trai.ch/toil/internal/core/domain"
)

type mockApp struct {
	runFunc    func(ctx context.Context, startDir string, task domain.TaskName, opts app.RunOptions) error
	tasks      []string
	presets    []domain.Preset
	targets    []domain.Target
	selections map[string]string
}

func (m *mockApp) RunTask(ctx context.Context, startDir string, task domain.TaskName, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, startDir, task, opts)
	}
	return nil
}

func (m *mockApp) DetectedBackend(string) (string, string, error) {
	return "/proj", "cmake", nil
}

func (m *mockApp) AvailableTasks(string) ([]string, error) {
	return m.tasks, nil
}

func (m *mockApp) Presets(string, domain.PresetKind) ([]domain.Preset, error) {
	return m.presets, nil
}

func (m *mockApp) Targets(string) ([]domain.Target, error) {
	return m.targets, nil
}

func (m *mockApp) Select(_, key, value string) error {
	if m.selections == nil {
		m.selections = map[string]string{}
	}
	m.selections[key] = value
	return nil
}

func newCLI(mock *mockApp) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	return cli, buf
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedTask domain.TaskName
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, task domain.TaskName, opts app.RunOptions) error {
				capturedTask = task
				capturedOpts = opts
				return nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "build", "--preset", "debug", "--build-preset", "fast", "--prompt", "-o", "problems"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, domain.TaskBuild, capturedTask)
		assert.Equal(t, "debug", capturedOpts.Preset)
		assert.Equal(t, "fast", capturedOpts.BuildPreset)
		assert.True(t, capturedOpts.Prompt)
		assert.Equal(t, "problems", capturedOpts.OutputMode)
		assert.Nil(t, capturedOpts.BuildTarget)
	})

	t.Run("explicit empty build target is forwarded", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ domain.TaskName, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "build", "--build-target", ""})

		require.NoError(t, cli.Execute(context.Background()))
		require.NotNil(t, capturedOpts.BuildTarget)
		assert.Empty(t, *capturedOpts.BuildTarget)
	})

	t.Run("extra args after task name", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ domain.TaskName, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "configure", "--", "--fresh"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"--fresh"}, capturedOpts.ExtraArgs)
	})

	t.Run("returns error on task failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, domain.TaskName, app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "test"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Tasks(t *testing.T) {
	mock := &mockApp{tasks: []string{"build", "clean", "configure"}}

	cli, buf := newCLI(mock)
	cli.SetArgs([]string{"tasks"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "build\nclean\nconfigure\n", buf.String())
}

func TestCommands_Backend(t *testing.T) {
	cli, buf := newCLI(&mockApp{})
	cli.SetArgs([]string{"backend"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "cmake\t/proj\n", buf.String())
}

func TestCommands_Presets(t *testing.T) {
	mock := &mockApp{presets: []domain.Preset{{Name: "debug"}, {Name: "release"}}}

	cli, buf := newCLI(mock)
	cli.SetArgs([]string{"presets", "configure"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "debug\nrelease\n", buf.String())
}

func TestCommands_Presets_NoFile(t *testing.T) {
	cli, buf := newCLI(&mockApp{})
	cli.SetArgs([]string{"presets"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "no presets file")
}

func TestCommands_Targets(t *testing.T) {
	mock := &mockApp{targets: []domain.Target{
		{Name: "app", Type: domain.TargetExecutable, Artifact: "bin/app"},
	}}

	cli, buf := newCLI(mock)
	cli.SetArgs([]string{"targets"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "app\tEXECUTABLE\n", buf.String())
}

func TestCommands_Select(t *testing.T) {
	mock := &mockApp{}

	cli, _ := newCLI(mock)
	cli.SetArgs([]string{"select", "preset", "debug"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "debug", mock.selections["preset"])
}

func TestCommands_Version(t *testing.T) {
	cli, buf := newCLI(&mockApp{})
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}
