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

// Package helm reads release metadata by shelling out to the helm CLI.
//
// The scanner only needs one fact from helm: when the release in a
// review-app namespace was last deployed. Rather than linking the helm SDK
// (and taking on its chart-loading and storage-backend surface), the package
// invokes `helm list --namespace <ns> -o json` and parses the result. The
// `--time-format` flag pins the timestamp format to RFC3339 so parsing does
// not depend on helm's locale-sensitive default.
//
// Command execution sits behind the Runner interface so tests can substitute
// canned output for the helm binary. There is no retry logic: a helm failure
// is reported to the caller and ends the run.
package helm
