package publish

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/theme"
)

// Runner executes a command and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// Installer installs bundles into a WordPress site through WP-CLI.
type Installer struct {
	wpCLIPath string
	wpPath    string
	run       Runner
}

// NewInstaller creates an Installer for the site at wpPath. A nil runner
// executes the command with os/exec.
func NewInstaller(wpCLIPath, wpPath string, run Runner) *Installer {
	if run == nil {
		run = execRunner
	}
	return &Installer{wpCLIPath: wpCLIPath, wpPath: wpPath, run: run}
}

// Install zips the bundle into a temporary directory and runs
// `wp theme install <zip> --path=<wpPath> --force [--activate]`. WP-CLI
// output without "Success:" is an UpstreamGenerationError.
func (in *Installer) Install(ctx context.Context, b theme.Bundle, activate bool) (string, error) {
	tempDir, err := os.MkdirTemp("", "theme-install-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	zipPath := filepath.Join(tempDir, b.Slug+".zip")
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	if err := Zip(f, b); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive: %w", err)
	}

	args := []string{"theme", "install", zipPath, "--path=" + in.wpPath, "--force"}
	if activate {
		args = append(args, "--activate")
	}
	log.Printf("Info: running %s %s", in.wpCLIPath, strings.Join(args, " "))

	stdout, stderr, err := in.run(ctx, in.wpCLIPath, args...)
	output := strings.TrimSpace(stdout + "\n" + stderr)
	if err != nil {
		log.Printf("WARN: wp theme install stderr: %s", stderr)
		return output, errs.Upstream("wp theme install failed: "+strings.TrimSpace(stderr), err)
	}
	if !strings.Contains(stdout, "Success:") {
		return output, errs.Upstream("wp theme install did not report success: "+strings.TrimSpace(stderr), nil)
	}
	log.Printf("Info: installed theme %s into %s (activate=%t)", b.Slug, in.wpPath, activate)
	return output, nil
}

func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
