// Package sink publishes the artifacts of a finished run to optional
// external targets.
package sink

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dd0wney/cluso-leaknet/pkg/export"
)

// Run is the set of artifacts one pipeline run left in its output
// directory.
type Run struct {
	ID       string
	Dir      string
	Manifest *export.Manifest
}

// Path returns where the artifact called name lives, or false if the run
// did not produce it.
func (r *Run) Path(name string) (string, bool) {
	a, ok := r.Manifest.Find(name)
	if !ok {
		return "", false
	}
	return filepath.Join(r.Dir, a.File), true
}

func (r *Run) mustPath(name string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("run %s has no %s artifact", r.ID, name)
	}
	return p, nil
}

// Sink is a publication target.
type Sink interface {
	Name() string
	Publish(ctx context.Context, run *Run) error
	Close() error
}
