// ABOUTME: Tests for NonwordSet semantics and the non-word list line parser,
// ABOUTME: including the deliberate collection of blank lines as literal entries.
package lattice

import (
	"reflect"
	"testing"
)

func TestNonwordSetContains(t *testing.T) {
	s := NewNonwordSet([]string{"sil", "eps", "sil"})

	if !s.Contains("sil") || !s.Contains("eps") {
		t.Errorf("set should contain sil and eps: %v", s.Labels())
	}
	if s.Contains("word") {
		t.Errorf("set should not contain %q", "word")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2 (duplicates collapsed)", s.Len())
	}
}

func TestNilNonwordSetIsAbsent(t *testing.T) {
	var s *NonwordSet

	if s.Contains("sil") {
		t.Errorf("nil set should contain nothing")
	}
	if s.Len() != 0 {
		t.Errorf("nil set Len = %d, want 0", s.Len())
	}
	if s.Labels() != nil {
		t.Errorf("nil set Labels = %v, want nil", s.Labels())
	}
}

func TestSetParserCollectsLines(t *testing.T) {
	p := NewSetParser(nil)
	for _, line := range []string{"sil", "eps", "sil"} {
		if err := p.HandleLine(line); err != nil {
			t.Fatalf("HandleLine(%q) error: %v", line, err)
		}
	}

	s := p.Complete()
	want := []string{"eps", "sil"}
	if got := s.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels = %v, want %v", got, want)
	}
}

// Blank lines are collected as literal entries; the non-word loader has never
// skipped them the way the lattice parser does.
func TestSetParserKeepsBlankLines(t *testing.T) {
	p := NewSetParser(nil)
	for _, line := range []string{"sil", ""} {
		if err := p.HandleLine(line); err != nil {
			t.Fatalf("HandleLine(%q) error: %v", line, err)
		}
	}

	s := p.Complete()
	if !s.Contains("") {
		t.Errorf("blank line should become an empty-string entry")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestSetParserTransformAndReset(t *testing.T) {
	p := NewSetParser(LowerCase)
	if err := p.HandleLine("SIL"); err != nil {
		t.Fatalf("HandleLine error: %v", err)
	}
	if s := p.Complete(); !s.Contains("sil") {
		t.Errorf("transform not applied: %v", s.Labels())
	}

	p.Reset()
	if s := p.Complete(); s.Len() != 0 {
		t.Errorf("after Reset Len = %d, want 0", s.Len())
	}
}

func TestEmptyInputYieldsEmptySet(t *testing.T) {
	p := NewSetParser(nil)
	s := p.Complete()
	if s == nil {
		t.Fatalf("empty input should yield an empty set, not an absent one")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}
