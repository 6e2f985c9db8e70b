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

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// envVar is the GitHub Actions convention for the step output file.
const envVar = "GITHUB_OUTPUT"

// outputKey is the step output the workflow's fan-out matrix reads.
const outputKey = "matrix"

// Matrix is the payload the CI pipeline fans out over. PR numbers are
// strings because they interpolate into workflow matrix expressions.
type Matrix struct {
	PRNumbers []string `json:"pr_numbers"`
}

// Path resolves the output destination: an explicit override wins, otherwise
// the GITHUB_OUTPUT environment variable. Neither being set is an error.
func Path(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if path := os.Getenv(envVar); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no output destination: %s is not set and no --output flag was given", envVar)
}

// Write appends the matrix line for the given PR numbers to the output file
// at path, in the key=value format GitHub Actions expects. An empty or nil
// list produces an empty JSON array.
func Write(path string, prNumbers []int) error {
	matrix := Matrix{PRNumbers: make([]string, 0, len(prNumbers))}
	for _, pr := range prNumbers {
		matrix.PRNumbers = append(matrix.PRNumbers, strconv.Itoa(pr))
	}

	payload, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("failed to encode output matrix: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", outputKey, payload); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
