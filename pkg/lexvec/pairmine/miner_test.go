package pairmine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "c.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCandidatesRankedByPMI(t *testing.T) {
	corpus := strings.Repeat("salt pepper filler ", 100) + strings.Repeat("salt filler pepper filler dog filler cat filler ", 1)
	path := writeCorpus(t, corpus)

	m := New(Config{Window: 5, WeakPMIThreshold: 0.1, StrongPMIThreshold: 100, StrongMinSupport: 1})
	if err := m.Scan(context.Background(), path); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	cands := m.Candidates()
	if len(cands) == 0 {
		t.Fatal("expected at least one candidate")
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].PMI > cands[i-1].PMI {
			t.Fatalf("expected candidates sorted by descending PMI at %d", i)
		}
	}

	found := false
	for _, c := range cands {
		if (c.A == "salt" && c.B == "pepper") || (c.A == "pepper" && c.B == "salt") {
			found = true
		}
	}
	if !found {
		t.Error("expected salt/pepper to appear as a co-occurrence candidate")
	}
}

func TestCandidatesEmptyOnEmptyCorpus(t *testing.T) {
	path := writeCorpus(t, "")
	m := New(Config{})
	if err := m.Scan(context.Background(), path); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if cands := m.Candidates(); len(cands) != 0 {
		t.Errorf("expected no candidates for an empty corpus, got %d", len(cands))
	}
}

type fakeReviewer struct {
	reject map[string]bool
}

func (r *fakeReviewer) Approve(_ context.Context, a, b string) (bool, error) {
	return !r.reject[a+"|"+b] && !r.reject[b+"|"+a], nil
}

func TestRunAppliesReviewerAndSplitsByStrength(t *testing.T) {
	dir := t.TempDir()
	cands := []Candidate{
		{A: "cat", B: "dog", PMI: 5, Support: 10, Strong: true},
		{A: "mat", B: "rug", PMI: 1, Support: 3, Strong: false},
		{A: "sky", B: "cloud", PMI: 2, Support: 4, Strong: false},
	}
	rev := &fakeReviewer{reject: map[string]bool{"sky|cloud": true}}

	strongPath := filepath.Join(dir, "strong.txt")
	weakPath := filepath.Join(dir, "weak.txt")
	if err := Run(context.Background(), cands, WriteOptions{StrongPath: strongPath, WeakPath: weakPath, Reviewer: rev}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	strongData, err := os.ReadFile(strongPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(strongData), "cat dog") {
		t.Errorf("expected strong file to contain cat dog, got %q", string(strongData))
	}

	weakData, err := os.ReadFile(weakPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(weakData), "mat rug") {
		t.Errorf("expected weak file to contain mat rug, got %q", string(weakData))
	}
	if strings.Contains(string(weakData), "sky cloud") {
		t.Error("expected reviewer-rejected pair sky/cloud to be excluded")
	}
}
