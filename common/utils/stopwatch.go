package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type stopwatchEntry struct {
	start    time.Time
	duration time.Duration
	order    int
}

// Stopwatch measures named sections of a function
type Stopwatch struct {
	name    string
	entries map[string]*stopwatchEntry
}

func MakeStopwatch(name string) *Stopwatch {
	return &Stopwatch{
		name:    name,
		entries: make(map[string]*stopwatchEntry),
	}
}

func (s *Stopwatch) Start(section string) {
	entry, ok := s.entries[section]
	if !ok {
		entry = &stopwatchEntry{order: len(s.entries)}
		s.entries[section] = entry
	}

	entry.start = time.Now()
}

func (s *Stopwatch) Stop(section string) time.Duration {
	entry, ok := s.entries[section]
	if !ok || entry.start.IsZero() {
		return 0
	}

	elapsed := time.Since(entry.start)
	entry.duration += elapsed
	entry.start = time.Time{}

	return elapsed
}

func (s *Stopwatch) Duration(section string) time.Duration {
	if entry, ok := s.entries[section]; ok {
		return entry.duration
	}

	return 0
}

func (s *Stopwatch) Sections() []string {
	sections := make([]string, 0, len(s.entries))
	for section := range s.entries {
		sections = append(sections, section)
	}

	sort.Slice(sections, func(i, j int) bool {
		return s.entries[sections[i]].order < s.entries[sections[j]].order
	})

	return sections
}

func (s *Stopwatch) String() string {
	parts := make([]string, 0, len(s.entries))
	for _, section := range s.Sections() {
		parts = append(parts, fmt.Sprintf("%s: %s", section, s.entries[section].duration))
	}

	return s.name + " " + strings.Join(parts, "; ")
}
