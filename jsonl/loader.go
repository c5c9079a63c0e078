// Package jsonl reads refactor job records from JSONL files.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.JobLoader = (*Loader)(nil)

// Loader loads RefactorJob records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the JSONL file at path. Errors name the file and line.
func (l *Loader) Load(path string) ([]diffcard.RefactorJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	jobs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}

// Decode reads one job per line from r. Blank lines are skipped and a
// record without a path is an error. Lines have no length limit since a
// record carries a whole rewritten file.
func Decode(r io.Reader) ([]diffcard.RefactorJob, error) {
	br := bufio.NewReader(r)
	var jobs []diffcard.RefactorJob
	for n := 1; ; n++ {
		line, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, readErr
		}
		if line = bytes.TrimSpace(line); len(line) > 0 {
			job, err := decodeJob(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			jobs = append(jobs, job)
		}
		if readErr != nil {
			return jobs, nil
		}
	}
}

func decodeJob(line []byte) (diffcard.RefactorJob, error) {
	var job diffcard.RefactorJob
	if err := json.Unmarshal(line, &job); err != nil {
		return job, err
	}
	if job.Path == "" {
		return job, errors.New("missing path")
	}
	return job, nil
}
