/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package checkpoint selects the best or last saved model of a training run
// from its checkpoint callbacks.
package checkpoint

import (
	"errors"
	"fmt"
)

// ErrCheckpointNotFound is returned when no matching checkpoint callback
// holds a model path.
var ErrCheckpointNotFound = errors.New("nsx(checkpoint): no checkpoint found")

// Callback is anything a trainer runs during fitting.
type Callback any

// ModelCheckpoint records where a checkpointing callback saved models.
type ModelCheckpoint struct {
	// Monitor is the metric the callback ranks checkpoints by.
	Monitor string
	// BestModelPath is the checkpoint with the best monitored value.
	BestModelPath string
	// LastModelPath is the most recent checkpoint.
	LastModelPath string
}

// Trainer exposes the callbacks of a training run.
type Trainer interface {
	Callbacks() []Callback
}

// Kind selects which checkpoint path to read.
type Kind uint8

const (
	// Best selects ModelCheckpoint.BestModelPath.
	Best Kind = iota
	// Last selects ModelCheckpoint.LastModelPath.
	Last
)

func (k Kind) String() string {
	if k == Last {
		return "last"
	}
	return "best"
}

// DefaultCallback returns the first ModelCheckpoint of tr, if any.
func DefaultCallback(tr Trainer) (*ModelCheckpoint, bool) {
	for _, cb := range tr.Callbacks() {
		if mc, ok := cb.(*ModelCheckpoint); ok && mc != nil {
			return mc, true
		}
	}
	return nil, false
}

// ModelPath returns the kind path of the checkpoint callback monitoring
// monitor. An empty monitor selects the default callback. Callbacks that
// are not a *ModelCheckpoint are skipped.
func ModelPath(tr Trainer, monitor string, kind Kind) (string, error) {
	var mc *ModelCheckpoint
	if monitor == "" {
		mc, _ = DefaultCallback(tr)
	} else {
		for _, cb := range tr.Callbacks() {
			if c, ok := cb.(*ModelCheckpoint); ok && c != nil && c.Monitor == monitor {
				mc = c
				break
			}
		}
	}
	var path string
	if mc != nil {
		path = mc.BestModelPath
		if kind == Last {
			path = mc.LastModelPath
		}
	}
	if path == "" {
		return "", fmt.Errorf("%w: %s model for monitor %q", ErrCheckpointNotFound, kind, monitor)
	}
	return path, nil
}

// BestModelPath returns the best checkpoint path for monitor.
func BestModelPath(tr Trainer, monitor string) (string, error) {
	return ModelPath(tr, monitor, Best)
}

// LastModelPath returns the last checkpoint path for monitor.
func LastModelPath(tr Trainer, monitor string) (string, error) {
	return ModelPath(tr, monitor, Last)
}

// Load finds the kind checkpoint for monitor and hands its path to load.
func Load(tr Trainer, monitor string, kind Kind, load func(path string) error) error {
	path, err := ModelPath(tr, monitor, kind)
	if err != nil {
		return err
	}
	if err := load(path); err != nil {
		return fmt.Errorf("nsx(checkpoint): load %s: %w", path, err)
	}
	return nil
}
