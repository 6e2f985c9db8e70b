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
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRunner records the arguments it was invoked with and returns canned
// output or a canned error.
type fakeRunner struct {
	output []byte
	err    error
	args   []string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func TestClient_ListReleases_parses_helm_output(t *testing.T) {
	runner := &fakeRunner{
		output: []byte(`[{"name":"review-42-myapp","namespace":"review-42-myapp","revision":"3","updated":"2025-01-02T15:04:05Z","status":"deployed","chart":"myapp-1.2.3","app_version":"1.2.3"}]`),
	}
	client := NewClientWithRunner(runner)

	releases, err := client.ListReleases(context.Background(), "review-42-myapp")
	if err != nil {
		t.Fatalf("ListReleases() returned error: %v", err)
	}

	if len(releases) != 1 {
		t.Fatalf("ListReleases() returned %d releases, want 1", len(releases))
	}
	if releases[0].Name != "review-42-myapp" {
		t.Errorf("release name = %q, want %q", releases[0].Name, "review-42-myapp")
	}
	if releases[0].Updated != "2025-01-02T15:04:05Z" {
		t.Errorf("release updated = %q, want %q", releases[0].Updated, "2025-01-02T15:04:05Z")
	}
}

func TestClient_ListReleases_passes_namespace_and_time_format(t *testing.T) {
	runner := &fakeRunner{output: []byte(`[]`)}
	client := NewClientWithRunner(runner)

	_, err := client.ListReleases(context.Background(), "review-7-myapp")
	if err != nil {
		t.Fatalf("ListReleases() returned error: %v", err)
	}

	got := strings.Join(runner.args, " ")
	want := "list --namespace review-7-myapp -o json --time-format 2006-01-02T15:04:05Z07:00"
	if got != want {
		t.Errorf("helm args = %q, want %q", got, want)
	}
}

func TestClient_ListReleases_propagates_runner_error(t *testing.T) {
	runner := &fakeRunner{err: errors.New("Kubernetes cluster unreachable")}
	client := NewClientWithRunner(runner)

	_, err := client.ListReleases(context.Background(), "review-42-myapp")
	if err == nil {
		t.Fatal("ListReleases() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "review-42-myapp") {
		t.Errorf("error %q does not name the namespace", err)
	}
}

func TestClient_ListReleases_rejects_malformed_output(t *testing.T) {
	runner := &fakeRunner{output: []byte(`Error: unknown flag`)}
	client := NewClientWithRunner(runner)

	_, err := client.ListReleases(context.Background(), "review-42-myapp")
	if err == nil {
		t.Fatal("ListReleases() expected error for malformed output, got nil")
	}
}

func TestClient_LastDeployed(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		want      time.Time
		wantError string
	}{
		{
			name:   "single release returns its deploy time",
			output: `[{"name":"review-42-myapp","updated":"2025-01-02T15:04:05Z","status":"deployed"}]`,
			want:   time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			name:   "timestamp with zone offset",
			output: `[{"name":"review-42-myapp","updated":"2025-01-02T15:04:05+02:00","status":"deployed"}]`,
			want:   time.Date(2025, 1, 2, 13, 4, 5, 0, time.UTC),
		},
		{
			name:      "no releases is an error",
			output:    `[]`,
			wantError: "found 0",
		},
		{
			name:      "multiple releases is an error",
			output:    `[{"name":"a","updated":"2025-01-02T15:04:05Z"},{"name":"b","updated":"2025-01-02T15:04:05Z"}]`,
			wantError: "found 2",
		},
		{
			name:      "unparseable timestamp is an error",
			output:    `[{"name":"review-42-myapp","updated":"yesterday"}]`,
			wantError: "failed to parse deploy time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithRunner(&fakeRunner{output: []byte(tt.output)})

			got, err := client.LastDeployed(context.Background(), "review-42-myapp")
			if tt.wantError != "" {
				if err == nil {
					t.Fatalf("LastDeployed() expected error containing %q, got nil", tt.wantError)
				}
				if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("LastDeployed() error = %q, want substring %q", err, tt.wantError)
				}
				return
			}

			if err != nil {
				t.Fatalf("LastDeployed() returned error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("LastDeployed() = %v, want %v", got, tt.want)
			}
		})
	}
}
