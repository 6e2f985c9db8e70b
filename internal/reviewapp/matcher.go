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
	"fmt"
	"regexp"
	"strconv"
)

// Matcher recognizes review-app namespaces belonging to a named application.
//
// Review-app namespaces follow the pattern review-<pr>-<app>, where <pr> is
// the pull-request number (1 to 4 digits).
type Matcher struct {
	pattern *regexp.Regexp
}

// NewMatcher builds a matcher for the given application name. The name is
// taken literally; regex metacharacters in it are escaped.
func NewMatcher(app string) *Matcher {
	return &Matcher{
		pattern: regexp.MustCompile(fmt.Sprintf(`^review-(\d{1,4})-%s`, regexp.QuoteMeta(app))),
	}
}

// Match reports whether the namespace is a review app for this matcher's
// application and, when it is, the embedded pull-request number.
func (m *Matcher) Match(namespace string) (int, bool, error) {
	groups := m.pattern.FindStringSubmatch(namespace)
	if groups == nil {
		return 0, false, nil
	}

	pr, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false, fmt.Errorf("malformed review-app namespace name %q: %w", namespace, err)
	}
	return pr, true, nil
}
