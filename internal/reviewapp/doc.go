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

// Package reviewapp implements the stale review-app detection pipeline.
//
// A review app is an ephemeral per-pull-request environment deployed as a
// Helm release into its own namespace, named review-<pr>-<app>. The Scanner
// walks a list of namespace names, keeps the ones matching that pattern for
// the configured application, looks up each release's last-deployed
// timestamp, and collects those older than the age threshold.
//
// Detection is the whole job. Nothing here deletes namespaces or touches
// releases; the resulting candidate list is handed to the CI pipeline, which
// fans out over the pull-request numbers.
//
// An optional PRChecker gates the result: when configured, stale candidates
// whose pull request is still open are kept alive and left out of the list.
package reviewapp
