package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/toil/internal/core/domain"
)

func TestDefaultRegistry_Order(t *testing.T) {
	reg := domain.DefaultRegistry()

	backends := reg.Backends()
	require.Len(t, backends, 2)
	assert.Equal(t, "cmake", backends[0].Name)
	assert.Equal(t, "python", backends[1].Name)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := domain.DefaultRegistry()

	b, ok := reg.Lookup("python")
	require.True(t, ok)
	assert.Equal(t, "python", b.Name)

	_, ok = reg.Lookup("gradle")
	assert.False(t, ok)
}

func TestBackend_Supports(t *testing.T) {
	reg := domain.DefaultRegistry()

	cmake, ok := reg.Lookup("cmake")
	require.True(t, ok)
	python, ok := reg.Lookup("python")
	require.True(t, ok)

	assert.True(t, cmake.Supports(domain.TaskConfigure))
	assert.True(t, cmake.Supports(domain.TaskDebug))
	assert.False(t, python.Supports(domain.TaskConfigure))
	assert.False(t, python.Supports(domain.TaskDebug))
	assert.True(t, python.Supports(domain.TaskTest))
}

func TestBackend_TaskNamesSorted(t *testing.T) {
	reg := domain.DefaultRegistry()

	cmake, ok := reg.Lookup("cmake")
	require.True(t, ok)
	assert.Equal(t,
		[]string{"build", "clean", "configure", "debug", "package", "run", "test"},
		cmake.TaskNames())

	python, ok := reg.Lookup("python")
	require.True(t, ok)
	assert.Equal(t,
		[]string{"build", "clean", "package", "run", "test"},
		python.TaskNames())
}

func TestCMakeBackend_CommandTemplates(t *testing.T) {
	reg := domain.DefaultRegistry()
	cmake, ok := reg.Lookup("cmake")
	require.True(t, ok)

	tests := []struct {
		name string
		task domain.TaskName
		in   domain.FallbackInput
		want []string
	}{
		{
			name: "configure fallback",
			task: domain.TaskConfigure,
			in:   domain.FallbackInput{BuildDir: "/p/build"},
			want: []string{"cmake", "-S", ".", "-B", "/p/build"},
		},
		{
			name: "build all targets",
			task: domain.TaskBuild,
			in:   domain.FallbackInput{BuildDir: "/p/build"},
			want: []string{"cmake", "--build", "/p/build"},
		},
		{
			name: "build single target",
			task: domain.TaskBuild,
			in:   domain.FallbackInput{BuildDir: "/p/build", Target: "app"},
			want: []string{"cmake", "--build", "/p/build", "--target", "app"},
		},
		{
			name: "test fallback",
			task: domain.TaskTest,
			in:   domain.FallbackInput{BuildDir: "/p/build"},
			want: []string{"ctest", "--test-dir", "/p/build", "--output-on-failure"},
		},
		{
			name: "clean removes build dir",
			task: domain.TaskClean,
			in:   domain.FallbackInput{BuildDir: "/p/build"},
			want: []string{"cmake", "-E", "rm", "-rf", "/p/build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := cmake.Tasks[tt.task]
			require.NotNil(t, spec.FallbackArgs)
			assert.Equal(t, tt.want, spec.FallbackArgs(tt.in))
		})
	}
}

func TestCMakeBackend_PresetTemplates(t *testing.T) {
	reg := domain.DefaultRegistry()
	cmake, ok := reg.Lookup("cmake")
	require.True(t, ok)

	assert.Equal(t, []string{"cmake", "--preset", "rel"},
		cmake.Tasks[domain.TaskConfigure].PresetArgs("rel"))
	assert.Equal(t, []string{"cmake", "--build", "--preset", "rel"},
		cmake.Tasks[domain.TaskBuild].PresetArgs("rel"))
	assert.Equal(t, []string{"ctest", "--preset", "rel"},
		cmake.Tasks[domain.TaskTest].PresetArgs("rel"))
}

func TestPythonBackend_CommandTemplates(t *testing.T) {
	reg := domain.DefaultRegistry()
	python, ok := reg.Lookup("python")
	require.True(t, ok)

	assert.Equal(t, []string{"uv", "sync"},
		python.Tasks[domain.TaskBuild].FallbackArgs(domain.FallbackInput{}))
	assert.Equal(t, []string{"uv", "run", "main.py"},
		python.Tasks[domain.TaskRun].FallbackArgs(domain.FallbackInput{}))
	assert.Equal(t, []string{"uv", "run", "tool.py"},
		python.Tasks[domain.TaskRun].FallbackArgs(domain.FallbackInput{Target: "tool.py"}))
	assert.Equal(t, []string{"uv", "run", "pytest"},
		python.Tasks[domain.TaskTest].FallbackArgs(domain.FallbackInput{}))
	assert.Equal(t, []string{"uv", "build"},
		python.Tasks[domain.TaskPackage].FallbackArgs(domain.FallbackInput{}))
}

func TestJobStatus_TerminalAndActive(t *testing.T) {
	assert.True(t, domain.JobSucceeded.Terminal())
	assert.True(t, domain.JobFailed.Terminal())
	assert.True(t, domain.JobCancelled.Terminal())
	assert.False(t, domain.JobRunning.Terminal())
	assert.False(t, domain.JobIdle.Terminal())

	assert.True(t, domain.JobStarting.Active())
	assert.True(t, domain.JobRunning.Active())
	assert.False(t, domain.JobCancelled.Active())
	assert.False(t, domain.JobIdle.Active())
}
