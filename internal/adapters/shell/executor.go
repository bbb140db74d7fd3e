// Package shell provides a pty-backed executor for running resolved
// commands as child processes.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and a pty. The pty
// merges the child's stdout and stderr into a single ordered stream, which
// is what the sinks consume.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

// Wait blocks until the child exits and the output copy loop has drained
// the pty. A non-zero exit is reported with the exit code attached.
func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	// Let the copy loop read whatever is left before the ptmx closes.
	<-p.ioDone

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// Terminate asks the child to stop with SIGTERM. It returns immediately;
// the exit is observed by whoever is blocked in Wait.
func (p *ptyProcess) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Signal(syscall.SIGTERM)
}

// Start launches the resolved command in a pty and streams its combined
// output to the given writer as it arrives.
func (e *Executor) Start(ctx context.Context, command *domain.ResolvedCommand, output io.Writer) (ports.Process, error) {
	if command == nil || len(command.Args) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	name := command.Args[0]
	args := command.Args[1:]

	cmdEnv := overlayEnvironment(os.Environ(), command.Env)

	// Resolve the executable path against the merged environment.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}
	cmd.Env = cmdEnv

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrSpawnFailed, "command", name), "cause", err.Error())
	}

	// Match the host terminal size so tools that wrap output behave.
	if rows, cols, sizeErr := hostTerminalSize(); sizeErr == nil {
		_ = pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols})
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Copy until the child side of the pty closes. Read errors here are
		// the normal EIO at process exit.
		_, _ = io.Copy(output, ptmx)
	}()

	return &ptyProcess{
		cmd:    cmd,
		ptmx:   ptmx,
		ioDone: ioDone,
	}, nil
}

func hostTerminalSize() (rows, cols uint16, err error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, os.ErrInvalid
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, err
	}
	return uint16(height), uint16(width), nil //nolint:gosec // terminal dimensions
}

// overlayEnvironment applies the command's environment overlay on top of
// the host environment. The engine runs the user's own tool chain, so the
// full host environment is inherited.
func overlayEnvironment(sysEnv []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(overlay))
	order := make([]string, 0, len(sysEnv)+len(overlay))

	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overlay {
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the merged environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
