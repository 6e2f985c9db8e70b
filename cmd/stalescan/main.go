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

package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/reviewops/stalescan/internal/cli"
)

// Build information injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0 -X main.Commit=abc123 ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const description = "Find review apps whose last deployment is older than a configurable age threshold"

func main() {
	var c cli.CLI
	kctx := kong.Parse(&c,
		kong.Name("stalescan"),
		kong.Description(description),
		kong.Vars{
			"version": fmt.Sprintf("stalescan %s (commit: %s, built: %s)", Version, Commit, Date),
		},
		kong.UsageOnError(),
	)

	if err := kctx.Run(); err != nil {
		logrus.WithError(err).Fatal("scan failed")
	}
}
