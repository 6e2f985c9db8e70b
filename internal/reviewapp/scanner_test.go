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
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReviewApp(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReviewApp Suite")
}

// fakeHelm serves last-deployed timestamps from a map.
type fakeHelm struct {
	deployed map[string]time.Time
	err      error
}

func (f *fakeHelm) LastDeployed(_ context.Context, namespace string) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	deployed, ok := f.deployed[namespace]
	if !ok {
		return time.Time{}, fmt.Errorf("expected exactly one release in namespace %s, found 0", namespace)
	}
	return deployed, nil
}

// fakeChecker serves pull-request states from a map.
type fakeChecker struct {
	states map[int]string
	err    error
}

func (f *fakeChecker) State(_ context.Context, number int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.states[number], nil
}

var _ = Describe("Scanner", func() {
	var (
		now     time.Time
		helm    *fakeHelm
		scanner *Scanner
	)

	stale := func() time.Time { return now.Add(-100 * time.Hour) }
	fresh := func() time.Time { return now.Add(-10 * time.Hour) }

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		helm = &fakeHelm{deployed: map[string]time.Time{}}
		scanner = NewScanner(NewMatcher("myapp"), helm, 72*time.Hour)
		scanner.now = func() time.Time { return now }
	})

	Context("age filtering", func() {
		It("reports review apps deployed before the threshold", func() {
			helm.deployed["review-42-myapp"] = stale()

			candidates, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].Namespace).To(Equal("review-42-myapp"))
			Expect(candidates[0].PRNumber).To(Equal(42))
			Expect(candidates[0].LastDeployed).To(Equal(stale()))
			Expect(candidates[0].Age).To(Equal(100 * time.Hour))
		})

		It("keeps review apps deployed within the threshold", func() {
			helm.deployed["review-42-myapp"] = fresh()

			candidates, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())
		})

		It("treats a deployment exactly at the threshold as fresh", func() {
			helm.deployed["review-42-myapp"] = now.Add(-72 * time.Hour)

			candidates, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())
		})
	})

	Context("namespace filtering", func() {
		It("ignores namespaces that are not review apps", func() {
			// No helm data for these: the scanner must not even ask.
			candidates, err := scanner.Scan(context.Background(), []string{"default", "kube-system", "review-42-otherapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())
		})

		It("returns an empty result for an empty namespace list", func() {
			candidates, err := scanner.Scan(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())
		})

		It("preserves input order in the result", func() {
			helm.deployed["review-9-myapp"] = stale()
			helm.deployed["review-3-myapp"] = stale()
			helm.deployed["review-12-myapp"] = fresh()

			candidates, err := scanner.Scan(context.Background(), []string{
				"review-9-myapp", "review-12-myapp", "review-3-myapp",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].PRNumber).To(Equal(9))
			Expect(candidates[1].PRNumber).To(Equal(3))
		})
	})

	Context("error propagation", func() {
		It("aborts the scan when helm fails", func() {
			helm.err = errors.New("Kubernetes cluster unreachable")

			_, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).To(MatchError(helm.err))
		})

		It("aborts the scan when a review-app namespace has no release", func() {
			_, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("review-42-myapp"))
		})
	})

	Context("with a PR checker", func() {
		var checker *fakeChecker

		BeforeEach(func() {
			checker = &fakeChecker{states: map[int]string{}}
			scanner = scanner.WithPRChecker(checker)
		})

		It("drops stale review apps whose pull request is still open", func() {
			helm.deployed["review-42-myapp"] = stale()
			helm.deployed["review-43-myapp"] = stale()
			checker.states[42] = "open"
			checker.states[43] = "closed"

			candidates, err := scanner.Scan(context.Background(), []string{"review-42-myapp", "review-43-myapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].PRNumber).To(Equal(43))
		})

		It("does not check fresh review apps", func() {
			helm.deployed["review-42-myapp"] = fresh()
			checker.err = errors.New("should not be called")

			candidates, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())
		})

		It("aborts the scan when the check fails", func() {
			helm.deployed["review-42-myapp"] = stale()
			checker.err = errors.New("api unavailable")

			_, err := scanner.Scan(context.Background(), []string{"review-42-myapp"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("pull request 42"))
		})
	})
})
