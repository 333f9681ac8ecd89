package loader

import (
	"strings"
	"testing"
)

func TestRandomAlphaStringRespectsBounds(t *testing.T) {
	g := newRowGen(1)
	for i := 0; i < 200; i++ {
		s := g.randomAlphaString(10, 20)
		if len(s) < 10 || len(s) > 20 {
			t.Fatalf("randomAlphaString produced length %d outside [10,20]", len(s))
		}
	}
}

func TestRandomZipShape(t *testing.T) {
	g := newRowGen(2)
	z := g.randomZip()
	if len(z) != 9 || !strings.HasSuffix(z, "11111") {
		t.Fatalf("randomZip() = %q, want 9 chars ending in 11111", z)
	}
}

func TestRandomStateDistinctLetters(t *testing.T) {
	g := newRowGen(3)
	for i := 0; i < 50; i++ {
		s := g.randomState()
		if len(s) != 2 || s[0] == s[1] {
			t.Fatalf("randomState() = %q, want two distinct letters", s)
		}
	}
}

func TestGenLastDeterministicBelow1000(t *testing.T) {
	g := newRowGen(4)
	a := g.genLast(0)
	b := g.genLast(0)
	if a != b {
		t.Fatalf("genLast(0) not deterministic: %q vs %q", a, b)
	}
	if a != "BARBARBAR" {
		t.Fatalf("genLast(0) = %q, want BARBARBAR", a)
	}
}

func TestGenLastThreeSyllablesPerDigit(t *testing.T) {
	g := newRowGen(5)
	last := g.genLast(5)
	want := lastSyllables[0] + lastSyllables[0] + lastSyllables[5]
	if last != want {
		t.Fatalf("genLast(5) = %q, want %q", last, want)
	}
}

func TestMaybeEmbedOriginalLeavesLengthUnchanged(t *testing.T) {
	g := newRowGen(6)
	s := strings.Repeat("x", 50)
	out := g.maybeEmbedOriginal(s)
	if len(out) != len(s) {
		t.Fatalf("maybeEmbedOriginal changed length: %d vs %d", len(out), len(s))
	}
}

func TestUniformIntWithinRange(t *testing.T) {
	g := newRowGen(7)
	for i := 0; i < 500; i++ {
		v := g.uniformInt(5, 15)
		if v < 5 || v > 15 {
			t.Fatalf("uniformInt(5,15) = %d, out of range", v)
		}
	}
}
