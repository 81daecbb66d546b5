// Copyright 2024 The Hexastore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hexastore is a thin facade wiring the term, store, query and
// reason packages together into the store most callers actually want: one
// that accepts triples, answers basic graph pattern queries, and keeps
// itself closed under whatever rules it was configured with.
package hexastore

import (
	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/reason"
	"github.com/mutantdb/hexastore/reason/rulepack"
	"github.com/mutantdb/hexastore/solution"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

// Config configures a new Store.
type Config struct {
	// BlankNodeCounterStart sets the first counter value the store's blank
	// node factory mints. Leave at zero unless restoring a store whose
	// blank nodes must not collide with ones minted by a prior run.
	BlankNodeCounterStart int

	// LoadDefaultRules registers the shipped RDFS/OWL rule pack
	// (symmetric and inverse properties, subClassOf/subPropertyOf
	// transitivity and type propagation, domain and range) against the
	// new store's reasoner.
	LoadDefaultRules bool
}

// Store is a hexastore with forward-chaining reasoning layered over it.
// Its embedded *store.Store exposes Insert/Delete/Contains directly for
// callers that want to bypass the reasoner; Reasoner.Insert/Delete are the
// entry points that keep the store closed under its registered rules.
type Store struct {
	*store.Store
	Reasoner *reason.Reasoner
}

// New returns a Store configured by cfg. A nil cfg is equivalent to the
// zero Config.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	st := store.New(term.NewBlankNodeFactory(cfg.BlankNodeCounterStart))
	r := reason.New(st)

	if cfg.LoadDefaultRules {
		if err := rulepack.LoadDefault(r); err != nil {
			return nil, err
		}
	}

	return &Store{Store: st, Reasoner: r}, nil
}

// Query evaluates a basic graph pattern against the store, returning
// solutions ordered by order if it is non-empty.
func (s *Store) Query(patterns []query.Pattern, order []solution.OrderCondition) []solution.Solution {
	return query.Execute(s.Store, patterns, order, nil)
}
