package cos

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"foley-demo-prep/internal"
)

// Signer produces an access URL for one object in the demo bucket.
// Implementations: CmdSigner (shells out to coscmd) and PresignSigner
// (signs directly with COS API credentials).
type Signer interface {
	SignURL(ctx context.Context, remotePath string) (string, error)
}

// ErrToolUnavailable means the external signing tool could not be run at all,
// as opposed to it rejecting a particular object path.
var ErrToolUnavailable = errors.New("signing tool unavailable")

// CmdSigner signs URLs by invoking `coscmd signurl`. coscmd reads its
// credentials from its own config file; this process never sees them.
type CmdSigner struct {
	tool    string
	expiry  int64 // seconds, as passed to -t
	timeout time.Duration
}

func NewCmdSigner(cfg internal.Config) *CmdSigner {
	return &CmdSigner{
		tool:    "coscmd",
		expiry:  int64(cfg.SignExpiry.Seconds()),
		timeout: cfg.SignTimeout,
	}
}

func (s *CmdSigner) SignURL(ctx context.Context, remotePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.tool, "signurl", "-t", strconv.FormatInt(s.expiry, 10), remotePath)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s signurl timed out for %s: %w", s.tool, remotePath, err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s signurl failed for %s: %s", s.tool, remotePath,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}

	url := cleanSignedOutput(out)
	if url == "" {
		return "", fmt.Errorf("%s signurl returned empty output for %s", s.tool, remotePath)
	}
	return url, nil
}

// Check verifies the tool is installed and runnable before a batch that has
// no fallback path.
func (s *CmdSigner) Check(ctx context.Context) error {
	if err := exec.CommandContext(ctx, s.tool, "--version").Run(); err != nil {
		return fmt.Errorf("%w: %v (install and configure %s first)", ErrToolUnavailable, err, s.tool)
	}
	return nil
}

// cleanSignedOutput extracts the URL from coscmd's stdout: first line of the
// trimmed output, with the b'...' bytes-repr wrapper some coscmd versions
// print stripped off.
func cleanSignedOutput(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if strings.HasPrefix(s, "b'") && strings.HasSuffix(s, "'") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}
