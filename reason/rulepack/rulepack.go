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

// Package rulepack ships a default RDFS/OWL entailment rule set: the
// config naming which of the built-in rules are enabled is data (YAML),
// but each rule's actual inference behaviour is a Go callback, since a
// general rule-body interpreter is explicitly out of scope — only the set
// of shipped rules is meant to be data-driven, not an end-user rule
// language.
package rulepack

import (
	_ "embed"

	"gopkg.in/yaml.v2"

	"github.com/mutantdb/hexastore/reason"
)

//go:embed default.yaml
var defaultYAML []byte

// entry is one line of the rule manifest: a built-in rule's name and
// whether it should be loaded.
type entry struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

type manifest struct {
	Rules []entry `yaml:"rules"`
}

// builtins maps a manifest entry's name to the function that registers it
// against a Reasoner.
var builtins = map[string]func(*reason.Reasoner){
	"symmetric-property": registerSymmetricProperty,
	"inverse-of":          registerInverseOf,
	"sub-class-of":        registerSubClassOf,
	"sub-property-of":     registerSubPropertyOf,
	"domain":              registerDomain,
	"range":               registerRange,
}

// Load parses manifest data in the default.yaml format and registers every
// enabled rule it names against r. An unrecognised rule name is ignored
// rather than treated as an error, so a manifest written against a newer
// rulepack still loads its recognised subset against an older one.
func Load(data []byte, r *reason.Reasoner) error {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}
	for _, e := range m.Rules {
		if !e.Enabled {
			continue
		}
		if register, ok := builtins[e.Name]; ok {
			register(r)
		}
	}
	return nil
}

// LoadDefault registers the rule set embedded in default.yaml — symmetric
// and inverse properties, rdfs:subClassOf/subPropertyOf transitivity and
// type propagation, and rdfs:domain/range — against r.
func LoadDefault(r *reason.Reasoner) error {
	return Load(defaultYAML, r)
}
