// MIT License
//
// Copyright (c) 2025 Stalescan Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package helm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// timeFormat is passed to `helm list` so timestamps come back as RFC3339
// instead of helm's default locale-dependent format.
const timeFormat = time.RFC3339

// Release is a single entry of `helm list -o json` output.
type Release struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Revision   string `json:"revision"`
	Updated    string `json:"updated"`
	Status     string `json:"status"`
	Chart      string `json:"chart"`
	AppVersion string `json:"app_version"`
}

// Runner executes the helm binary and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// execRunner runs helm as a subprocess. Authentication and cluster selection
// are left to helm's own ambient configuration.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "helm", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("helm %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("helm %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// Client reads release metadata through the helm CLI.
type Client struct {
	runner Runner
}

// NewClient creates a client backed by the helm binary on PATH.
func NewClient() *Client {
	return &Client{runner: execRunner{}}
}

// NewClientWithRunner creates a client with a custom runner, used in tests.
func NewClientWithRunner(r Runner) *Client {
	return &Client{runner: r}
}

// ListReleases returns the releases installed in the given namespace.
func (c *Client) ListReleases(ctx context.Context, namespace string) ([]Release, error) {
	out, err := c.runner.Run(ctx, "list", "--namespace", namespace, "-o", "json", "--time-format", timeFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases in namespace %s: %w", namespace, err)
	}

	var releases []Release
	if err := json.Unmarshal(out, &releases); err != nil {
		return nil, fmt.Errorf("failed to parse helm output for namespace %s: %w", namespace, err)
	}
	return releases, nil
}

// LastDeployed returns when the release in the given namespace was last
// deployed. Review-app namespaces hold exactly one release; any other count
// is an error.
func (c *Client) LastDeployed(ctx context.Context, namespace string) (time.Time, error) {
	releases, err := c.ListReleases(ctx, namespace)
	if err != nil {
		return time.Time{}, err
	}

	if len(releases) != 1 {
		return time.Time{}, fmt.Errorf("expected exactly one release in namespace %s, found %d", namespace, len(releases))
	}

	updated, err := time.Parse(time.RFC3339, releases[0].Updated)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse deploy time %q for namespace %s: %w", releases[0].Updated, namespace, err)
	}
	return updated, nil
}
