// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordbank supplies the stimulus word pool that random word
// association draws from: a built-in pool of concrete nouns, verbs, and
// abstractions, optionally replaced by a YAML file the facilitator
// provides.
// Implements: prd007-word-bank (R1-R3);
//
//	docs/ARCHITECTURE § Word Bank.
package wordbank

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Built-in pool, grouped the way facilitators think about stimulus words.
// Groups are concatenated in declaration order; duplicates across groups
// collapse to the first occurrence (R1.1).
var (
	objectWords = []string{
		"telescope", "bicycle", "lighthouse", "butterfly", "compass",
		"bridge", "fountain", "garden", "mountain", "river",
		"canvas", "mirror", "clock", "book", "key",
		"ladder", "door", "window", "tree", "flower",
		"stone", "feather", "shell",
	}

	actionWords = []string{
		"explore", "discover", "transform", "connect", "build",
		"flow", "dance", "sing", "jump", "climb",
		"swim", "fly", "create", "imagine", "dream",
		"wonder", "search", "find", "gather", "share",
		"teach", "learn", "grow", "bloom",
	}

	conceptWords = []string{
		"freedom", "harmony", "balance", "energy", "mystery",
		"adventure", "journey", "discovery", "innovation", "creativity",
		"inspiration", "imagination", "wonder", "curiosity", "passion",
		"courage", "wisdom", "strength", "peace", "joy",
	}

	natureWords = []string{
		"ocean", "forest", "desert", "volcano", "glacier",
		"meadow", "valley", "peak", "cloud", "storm",
		"rainbow", "sunrise", "moonlight", "star", "comet",
		"planet",
	}

	technologyWords = []string{
		"robot", "satellite", "network", "algorithm", "quantum",
		"digital", "virtual", "artificial", "augmented", "blockchain",
		"neural", "hologram", "laser", "plasma",
	}
)

// Bank is an immutable, deduplicated word pool.
type Bank struct {
	words []string
}

// Builtin returns the built-in stimulus pool (R1.1).
func Builtin() *Bank {
	var all []string
	for _, group := range [][]string{objectWords, actionWords, conceptWords, natureWords, technologyWords} {
		all = append(all, group...)
	}
	return newBank(all)
}

// bankFile is the on-disk YAML schema: a flat word list, named groups, or
// both (R2.1).
type bankFile struct {
	Words  []string            `yaml:"words"`
	Groups map[string][]string `yaml:"groups"`
}

// Load reads a word bank from a YAML file. Group entries are appended
// after the flat list, groups in name order so the resulting pool is
// stable across runs. A file yielding no words is an error (R2.1-R2.2).
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word bank: %w", err)
	}

	var bf bankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing word bank %s: %w", path, err)
	}

	words := append([]string(nil), bf.Words...)
	groupNames := make([]string, 0, len(bf.Groups))
	for name := range bf.Groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)
	for _, name := range groupNames {
		words = append(words, bf.Groups[name]...)
	}

	bank := newBank(words)
	if bank.Size() == 0 {
		return nil, fmt.Errorf("word bank %s contains no words", path)
	}
	return bank, nil
}

// Resolve returns the bank at path, or the built-in pool when path is
// empty (R2.2).
func Resolve(path string) (*Bank, error) {
	if path == "" {
		return Builtin(), nil
	}
	return Load(path)
}

// Words returns a copy of the pool in bank order.
func (b *Bank) Words() []string {
	return append([]string(nil), b.words...)
}

// Size returns the number of distinct words in the pool.
func (b *Bank) Size() int {
	return len(b.words)
}

// newBank deduplicates words preserving first occurrence and drops blanks.
func newBank(words []string) *Bank {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return &Bank{words: out}
}
