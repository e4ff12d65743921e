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

// Package nn groups the statically declared training namespaces and builds
// an optimizer, scheduler and activation from a declarative recipe.
package nn

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/nsx"
	"dirpx.dev/nsx/nn/activation"
	"dirpx.dev/nsx/nn/lrscheduler"
	"dirpx.dev/nsx/nn/optim"
	"dirpx.dev/nsx/registry"
)

// ErrNoOptimizer is returned when a recipe names no optimizer.
var ErrNoOptimizer = errors.New("nsx(nn): recipe has no optimizer")

// Catalog returns the training namespaces by category:
// "activation", "functional", "lr_scheduler" and "optim".
func Catalog() *registry.Catalog {
	return registry.NewCatalog("nn").
		MustAdd(optim.Label, optim.Namespace()).
		MustAdd(lrscheduler.Label, lrscheduler.Namespace()).
		MustAdd(activation.Label, activation.Namespace()).
		MustAdd(activation.FunctionalLabel, activation.Functional())
}

// Component names an entity and the keyword arguments to build it with.
type Component struct {
	Name   string         `yaml:"name"`
	Kwargs map[string]any `yaml:"kwargs,omitempty"`
}

// Recipe declares what Configure builds.
//
//	optimizer:
//	  name: Adam
//	  kwargs: {lr: 0.001}
//	lr_scheduler:
//	  name: StepLR
//	  kwargs: {step_size: 10}
//	activation:
//	  name: ReLU
type Recipe struct {
	Optimizer   Component  `yaml:"optimizer"`
	LRScheduler *Component `yaml:"lr_scheduler,omitempty"`
	Activation  *Component `yaml:"activation,omitempty"`
}

// LoadRecipe decodes a YAML recipe. Unknown keys are rejected.
func LoadRecipe(r io.Reader) (Recipe, error) {
	var s Recipe
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Recipe{}, fmt.Errorf("nsx(nn): decode recipe: %w", err)
	}
	return s, nil
}

// LoadRecipeFile reads the YAML recipe at path.
func LoadRecipeFile(path string) (Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("nsx(nn): open %s: %w", path, err)
	}
	defer f.Close()
	return LoadRecipe(f)
}

// Setup is what Configure built. Scheduler and Activation are nil when the
// recipe omits them.
type Setup struct {
	Optimizer  optim.Optimizer
	Scheduler  lrscheduler.Scheduler
	Activation activation.Activation
}

// Configure resolves every component of recipe (fuzzily) in env and builds
// them over params. A nil env uses defaults.
func Configure(env *nsx.Env, params []*optim.Param, recipe Recipe) (*Setup, error) {
	if recipe.Optimizer.Name == "" {
		return nil, ErrNoOptimizer
	}
	opt, err := optim.Get(env, recipe.Optimizer.Name, params, recipe.Optimizer.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("nsx(nn): optimizer: %w", err)
	}
	out := &Setup{Optimizer: opt}
	if c := recipe.LRScheduler; c != nil {
		if out.Scheduler, err = lrscheduler.Get(env, c.Name, opt, c.Kwargs); err != nil {
			return nil, fmt.Errorf("nsx(nn): lr_scheduler: %w", err)
		}
	}
	if c := recipe.Activation; c != nil {
		if out.Activation, err = activation.Get(env, c.Name, c.Kwargs); err != nil {
			return nil, fmt.Errorf("nsx(nn): activation: %w", err)
		}
	}
	return out, nil
}
