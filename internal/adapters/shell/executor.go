// Package shell provides an executor for running compiler and archiver processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec, attaching a PTY where supported
// so compilers keep their colored diagnostics.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, c *domain.Command, stdout, stderr io.Writer) error {
	if c == nil || c.Name == "" {
		return nil
	}

	stdoutLog := &logWriter{logger: e.logger, component: string(c.Component)}
	stderrLog := &logWriter{logger: e.logger, component: string(c.Component), stderr: true}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	finalStdout := io.MultiWriter(stdoutLog, stdout)
	finalStderr := io.MultiWriter(stderrLog, stderr)

	if err := run(func() *exec.Cmd { return e.command(ctx, c) }, finalStdout, finalStderr); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", c.Name)
	}
	return nil
}

func (e *Executor) command(ctx context.Context, c *domain.Command) *exec.Cmd {
	env := resolveEnvironment(os.Environ(), c.Env)

	executable := c.Name
	if !filepath.IsAbs(c.Name) {
		if lp, err := lookPath(c.Name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // toolchain command from configuration
	if len(cmd.Args) > 0 {
		cmd.Args[0] = c.Name
	}
	cmd.Dir = c.Dir
	cmd.Env = env
	return cmd
}

// run starts the command in a PTY and copies its merged output to stdout.
// When no PTY can be opened the command runs with plain pipes instead.
func run(newCmd func() *exec.Cmd, stdout, stderr io.Writer) error {
	cmd := newCmd()
	ptmx, err := pty.Start(cmd)
	if err != nil {
		if cmd.Process != nil {
			return zerr.Wrap(err, "failed to start pty")
		}
		if !errors.Is(err, pty.ErrUnsupported) && !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrPermission) {
			return err
		}
		cmd = newCmd()
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone
	_ = ptmx.Close()
	return waitErr
}

// logWriter forwards complete output lines to the logger.
type logWriter struct {
	logger    ports.Logger
	component string
	stderr    bool
	buf       []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	w.logger.Output(w.component, strings.TrimSuffix(string(line), "\r"), w.stderr)
}

// allowListedEnvVars are the system variables inherited by toolchain processes.
// Compiler drivers need PATH and the temp directory; MSVC additionally reads INCLUDE and LIB.
var allowListedEnvVars = map[string]struct{}{
	"HOME":                     {},
	"TERM":                     {},
	"USER":                     {},
	"PATH":                     {},
	"TMPDIR":                   {},
	"TEMP":                     {},
	"TMP":                      {},
	"SYSTEMROOT":               {},
	"INCLUDE":                  {},
	"LIB":                      {},
	"LIBPATH":                  {},
	"SDKROOT":                  {},
	"MACOSX_DEPLOYMENT_TARGET": {},
}

// resolveEnvironment starts from the allow-listed system variables and applies the overrides.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	for _, entry := range overrides {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the PATH of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
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
