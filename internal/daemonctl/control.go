// Package daemonctl launches and stops the emblemd process on behalf of the
// CLI.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"emblem/internal/ipc"
)

// ErrDaemonNotRunning indicates no daemon answered on the socket.
var ErrDaemonNotRunning = errors.New("daemon is not running")

// LaunchOptions carries flags forwarded to the spawned daemon.
type LaunchOptions struct {
	ConfigPath string
}

// Launch starts emblemd detached from the CLI process.
func Launch(executablePath string, opts LaunchOptions) error {
	args := []string{}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}

	cmd := exec.Command(executablePath, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return cmd.Process.Release()
}

// WaitForClient polls the socket until the daemon answers or the timeout
// elapses.
func WaitForClient(socketPath string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	for {
		client, err := ipc.Dial(socketPath)
		if err == nil {
			if _, statusErr := client.Status(); statusErr == nil {
				return client, nil
			}
			_ = client.Close()
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("daemon did not answer on %s within %s", socketPath, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// EnsureStarted connects to a running daemon or launches one and waits for it.
// It reports whether a new process was launched.
func EnsureStarted(socketPath, executablePath string, opts LaunchOptions, waitTimeout time.Duration) (bool, error) {
	if client, err := ipc.Dial(socketPath); err == nil {
		_, statusErr := client.Status()
		_ = client.Close()
		if statusErr == nil {
			return false, nil
		}
	}

	if err := Launch(executablePath, opts); err != nil {
		return false, err
	}
	client, err := WaitForClient(socketPath, waitTimeout)
	if err != nil {
		return true, err
	}
	_ = client.Close()
	return true, nil
}

// Stop asks the daemon for its PID, signals it, and waits for the socket to
// stop answering.
func Stop(socketPath string, grace time.Duration) (int, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return 0, ErrDaemonNotRunning
	}
	status, err := client.Status()
	_ = client.Close()
	if err != nil {
		return 0, ErrDaemonNotRunning
	}

	pid := status.Status.PID
	if pid <= 0 {
		return 0, fmt.Errorf("daemon reported invalid pid %d", pid)
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return pid, fmt.Errorf("find daemon process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("signal daemon: %w", err)
	}

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		probe, err := ipc.Dial(socketPath)
		if err != nil {
			return pid, nil
		}
		_, statusErr := probe.Status()
		_ = probe.Close()
		if statusErr != nil {
			return pid, nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return pid, fmt.Errorf("daemon (pid %d) did not shut down within %s", pid, grace)
}
