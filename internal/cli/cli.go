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

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/reviewops/stalescan/internal/github"
	"github.com/reviewops/stalescan/internal/helm"
	"github.com/reviewops/stalescan/internal/kube"
	"github.com/reviewops/stalescan/internal/output"
	"github.com/reviewops/stalescan/internal/reviewapp"
)

// CLI declares the command-line surface.
type CLI struct {
	ReviewAppName string `arg:"" help:"Application name; review-app namespaces look like review-<pr>-<name>."`
	Namespace     string `arg:"" help:"Parent namespace holding the review-app subnamespaces."`

	MaxAge       int              `help:"Max time since a review app was updated, in hours." default:"72"`
	Debug        bool             `help:"Print debug info." short:"d"`
	Kubeconfig   string           `help:"Path to a kubeconfig file; defaults to the ambient configuration." type:"path"`
	ClusterScope bool             `help:"Scan every cluster namespace instead of the parent's subnamespace anchors."`
	GitHubRepo   string           `name:"github-repo" help:"Repository (owner/repo) used to look up pull-request state."`
	SkipOpenPRs  bool             `name:"skip-open-prs" help:"Keep stale review apps whose pull request is still open out of the result."`
	Output       string           `help:"Output file path; defaults to $GITHUB_OUTPUT." type:"path"`
	Version      kong.VersionFlag `help:"Show version information."`
}

// Validate is called by kong after parsing.
func (c *CLI) Validate() error {
	if c.MaxAge <= 0 {
		return fmt.Errorf("--max-age must be positive, got %d", c.MaxAge)
	}
	if c.SkipOpenPRs && c.GitHubRepo == "" {
		return fmt.Errorf("--skip-open-prs requires --github-repo")
	}
	if c.GitHubRepo != "" {
		owner, repo, ok := strings.Cut(c.GitHubRepo, "/")
		if !ok || owner == "" || repo == "" {
			return fmt.Errorf("--github-repo must be in owner/repo form, got %q", c.GitHubRepo)
		}
	}
	return nil
}

// Run executes a single scan and writes the resulting matrix.
func (c *CLI) Run() error {
	if c.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	clients, err := kube.NewClients(c.Kubeconfig)
	if err != nil {
		return err
	}
	lister := kube.NewLister(clients.Core, clients.Dynamic)

	var namespaces []string
	if c.ClusterScope {
		logrus.Info("listing cluster namespaces")
		namespaces, err = lister.Namespaces(ctx)
	} else {
		logrus.WithField("parent", c.Namespace).Info("listing subnamespace anchors")
		namespaces, err = lister.Subnamespaces(ctx, c.Namespace)
	}
	if err != nil {
		return err
	}
	logrus.Infof("found %d namespaces", len(namespaces))

	scanner := reviewapp.NewScanner(
		reviewapp.NewMatcher(c.ReviewAppName),
		helm.NewClient(),
		time.Duration(c.MaxAge)*time.Hour,
	)

	if c.SkipOpenPRs {
		owner, repo, _ := strings.Cut(c.GitHubRepo, "/")
		ghClient, err := github.NewClient(os.Getenv("GITHUB_TOKEN"))
		if err != nil {
			return err
		}
		scanner = scanner.WithPRChecker(github.NewStateChecker(ghClient, owner, repo))
	}

	logrus.Infof("searching for review apps not updated for at least %d hours", c.MaxAge)
	candidates, err := scanner.Scan(ctx, namespaces)
	if err != nil {
		return err
	}

	prNumbers := make([]int, 0, len(candidates))
	for _, candidate := range candidates {
		logrus.WithFields(logrus.Fields{
			"namespace":     candidate.Namespace,
			"pr":            candidate.PRNumber,
			"last_deployed": candidate.LastDeployed.Format(time.RFC3339),
		}).Info("stale review app")
		prNumbers = append(prNumbers, candidate.PRNumber)
	}

	path, err := output.Path(c.Output)
	if err != nil {
		return err
	}

	logrus.WithField("path", path).Debug("writing output matrix")
	return output.Write(path, prNumbers)
}
