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

package reviewapp

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// HelmClient provides the last-deployed timestamp of the release installed
// in a namespace.
type HelmClient interface {
	LastDeployed(ctx context.Context, namespace string) (time.Time, error)
}

// PRChecker reports the state of a pull request ("open" or "closed").
type PRChecker interface {
	State(ctx context.Context, number int) (string, error)
}

// Candidate is a review app whose last deployment exceeded the age threshold.
type Candidate struct {
	Namespace    string
	PRNumber     int
	LastDeployed time.Time
	Age          time.Duration
}

// Scanner filters namespace names down to stale review apps.
type Scanner struct {
	matcher *Matcher
	helm    HelmClient
	maxAge  time.Duration
	checker PRChecker
	now     func() time.Time
}

// NewScanner creates a scanner that considers a review app stale once its
// last deployment is older than maxAge.
func NewScanner(matcher *Matcher, helm HelmClient, maxAge time.Duration) *Scanner {
	return &Scanner{
		matcher: matcher,
		helm:    helm,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// WithPRChecker makes the scanner drop stale candidates whose pull request
// is still open.
func (s *Scanner) WithPRChecker(checker PRChecker) *Scanner {
	s.checker = checker
	return s
}

// Scan inspects the given namespaces and returns the stale review apps in
// input order. Namespaces that do not match the review-app pattern are
// ignored; any error fetching release metadata or pull-request state aborts
// the scan.
func (s *Scanner) Scan(ctx context.Context, namespaces []string) ([]Candidate, error) {
	now := s.now()

	var candidates []Candidate
	matched := 0
	for _, ns := range namespaces {
		pr, ok, err := s.matcher.Match(ns)
		if err != nil {
			return nil, err
		}
		if !ok {
			logrus.WithField("namespace", ns).Debug("not a review-app namespace, skipping")
			continue
		}
		matched++

		lastDeployed, err := s.helm.LastDeployed(ctx, ns)
		if err != nil {
			return nil, err
		}

		age := now.Sub(lastDeployed)
		if age <= s.maxAge {
			logrus.WithFields(logrus.Fields{
				"namespace": ns,
				"age":       age.Round(time.Minute),
			}).Debug("review app deployed recently, keeping")
			continue
		}

		if s.checker != nil {
			state, err := s.checker.State(ctx, pr)
			if err != nil {
				return nil, fmt.Errorf("failed to check pull request %d: %w", pr, err)
			}
			if state == "open" {
				logrus.WithFields(logrus.Fields{
					"namespace": ns,
					"pr":        pr,
				}).Info("pull request still open, keeping review app")
				continue
			}
		}

		logrus.WithFields(logrus.Fields{
			"namespace": ns,
			"pr":        pr,
			"age":       age.Round(time.Minute),
		}).Debug("review app is stale")
		candidates = append(candidates, Candidate{
			Namespace:    ns,
			PRNumber:     pr,
			LastDeployed: lastDeployed,
			Age:          age,
		})
	}

	logrus.Infof("found %d review app namespaces, %d stale", matched, len(candidates))
	return candidates, nil
}
