// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package textmatch provides multi-pattern substring matching over catalog
// text using the Aho-Corasick algorithm.
//
// Keyword scoring asks "which of these N keywords occur in this item text"
// for every catalog item; category detection asks "does any garment term
// occur in this title". Checking each pattern individually is
// O(len(text) * N); the automaton answers for all patterns in a single pass,
// O(len(text) + matches), with Korean garment terms handled the same as
// ASCII because the automaton walks runes.
package textmatch

import "strings"

// Matcher finds occurrences of a fixed pattern set in a text.
//
// A Matcher is immutable after construction and therefore safe for
// concurrent use without locking. Matching is case-insensitive: patterns
// are lowercased at build time and text is lowercased at search time,
// mirroring how catalog item text and analysis keywords are normalized.
//
// Example:
//
//	m := textmatch.NewMatcher([]string{"denim jacket", "denim", "jacket"})
//	hits := m.MatchedSet("Vintage Denim Jacket - blue wash")
//	// hits: {"denim jacket": true, "denim": true, "jacket": true}
type Matcher struct {
	root     *node
	patterns []string
}

// node represents a node in the Aho-Corasick automaton.
type node struct {
	children map[rune]*node
	failure  *node // Failure link for when match fails
	output   []int // Indices of patterns that end at this node
}

// NewMatcher builds an automaton over the given patterns.
//
// Empty patterns are skipped and duplicates collapse to a single pattern.
// The returned Matcher never matches anything if no usable patterns remain.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{root: newNode()}

	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		m.patterns = append(m.patterns, p)
	}

	for i, p := range m.patterns {
		m.insertPattern(i, p)
	}
	m.buildFailureLinks()

	return m
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// insertPattern inserts a pattern into the trie.
func (m *Matcher) insertPattern(index int, pattern string) {
	n := m.root
	for _, ch := range pattern {
		if n.children[ch] == nil {
			n.children[ch] = newNode()
		}
		n = n.children[ch]
	}
	n.output = append(n.output, index)
}

// buildFailureLinks builds failure links using BFS.
func (m *Matcher) buildFailureLinks() {
	// Root's children fail to root
	queue := make([]*node, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	// BFS to build failure links
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			// Follow failure links to find longest proper suffix
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				// Merge output from failure link
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// MatchedSet returns the set of patterns that occur in text as substrings.
//
// The returned map keys are the lowercased patterns as stored in the
// matcher. Each pattern appears at most once regardless of how many times
// it occurs in the text.
func (m *Matcher) MatchedSet(text string) map[string]bool {
	if len(m.patterns) == 0 {
		return nil
	}

	matched := make(map[string]bool)
	n := m.root

	for _, ch := range strings.ToLower(text) {
		// Follow failure links until we find a transition or reach root
		for n != nil && n.children[ch] == nil {
			n = n.failure
		}

		if n == nil {
			n = m.root
			continue
		}

		n = n.children[ch]

		// Collect all patterns that end at this position
		for _, idx := range n.output {
			matched[m.patterns[idx]] = true
		}
		if len(matched) == len(m.patterns) {
			break // Every pattern already found
		}
	}

	return matched
}

// Contains reports whether any pattern occurs in the text.
// Cheaper than MatchedSet when only a boolean is needed.
func (m *Matcher) Contains(text string) bool {
	if len(m.patterns) == 0 {
		return false
	}

	n := m.root
	for _, ch := range strings.ToLower(text) {
		for n != nil && n.children[ch] == nil {
			n = n.failure
		}

		if n == nil {
			n = m.root
			continue
		}

		n = n.children[ch]

		if len(n.output) > 0 {
			return true
		}
	}

	return false
}

// PatternCount returns the number of distinct patterns in the matcher.
func (m *Matcher) PatternCount() int {
	return len(m.patterns)
}
