package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
)

// ErrCompilerNotFound is returned when the installer compiler is neither on
// PATH nor at the configured fallback path.
var ErrCompilerNotFound = errors.New("installer compiler not found")

// Runner executes the release steps described by a descriptor.
type Runner struct {
	desc   Descriptor
	stdout io.Writer
	stderr io.Writer

	// lookPath is swappable in tests
	lookPath func(string) (string, error)
}

// NewRunner creates a runner writing tool output to stdout/stderr.
func NewRunner(desc Descriptor) *Runner {
	return &Runner{
		desc:     desc,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		lookPath: exec.LookPath,
	}
}

// Run performs the release: clean, bundle, then compile the installer unless
// skipped. The first failing step aborts the run.
func (r *Runner) Run(ctx context.Context, skipInstaller bool) error {
	if err := r.clean(); err != nil {
		return err
	}

	log.Printf("Bundling %s %s", r.desc.AppName, r.desc.Version)
	if err := r.invoke(ctx, r.desc.Bundler.Command, r.desc.Bundler.Args...); err != nil {
		return fmt.Errorf("bundler failed: %w", err)
	}

	if skipInstaller {
		log.Printf("Skipping installer for %s", r.desc.AppName)
		return nil
	}

	compiler, err := r.locateCompiler()
	if err != nil {
		return err
	}

	log.Printf("Compiling installer with %s", compiler)
	if err := r.invoke(ctx, compiler, r.desc.Installer.Script); err != nil {
		return fmt.Errorf("installer compiler failed: %w", err)
	}
	return nil
}

// clean removes previous build output directories
func (r *Runner) clean() error {
	dirs := append([]string{}, r.desc.CleanDirs...)
	if r.desc.DistDir != "" {
		dirs = append(dirs, r.desc.DistDir)
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("cleaning %s: %w", dir, err)
		}
	}
	return nil
}

// locateCompiler searches PATH first, then the fixed fallback location
func (r *Runner) locateCompiler() (string, error) {
	if r.desc.Installer.Compiler != "" {
		if path, err := r.lookPath(r.desc.Installer.Compiler); err == nil {
			return path, nil
		}
	}
	if fallback := r.desc.Installer.FallbackPath; fallback != "" {
		if info, err := os.Stat(fallback); err == nil && !info.IsDir() {
			return fallback, nil
		}
	}
	log.Printf("Warning: installer compiler %q not on PATH and fallback %q missing",
		r.desc.Installer.Compiler, r.desc.Installer.FallbackPath)
	return "", ErrCompilerNotFound
}

func (r *Runner) invoke(ctx context.Context, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}
