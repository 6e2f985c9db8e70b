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

package github

import "context"

// StateChecker reports pull-request state for a fixed repository. It
// satisfies the scanner's PRChecker interface.
type StateChecker struct {
	client Client
	owner  string
	repo   string
}

// NewStateChecker creates a checker bound to owner/repo.
func NewStateChecker(client Client, owner, repo string) *StateChecker {
	return &StateChecker{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// State returns the state of the pull request, "open" or "closed".
func (s *StateChecker) State(ctx context.Context, number int) (string, error) {
	pr, err := s.client.GetPullRequest(ctx, s.owner, s.repo, number)
	if err != nil {
		return "", err
	}
	return pr.State, nil
}
