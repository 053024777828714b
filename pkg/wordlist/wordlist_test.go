package wordlist

import (
	"errors"
	"testing"
)

func TestNewEnglish(t *testing.T) {
	d := NewEnglish()
	if d.Size() != 2048 {
		t.Fatalf("Size() = %d, want 2048", d.Size())
	}

	idx, err := d.IndexOf("abandon")
	if err != nil {
		t.Fatalf("IndexOf(abandon) error: %v", err)
	}
	if idx != 1 {
		t.Errorf("IndexOf(abandon) = %d, want 1", idx)
	}

	w, err := d.WordAt(2048)
	if err != nil {
		t.Fatalf("WordAt(2048) error: %v", err)
	}
	if w != "zoo" {
		t.Errorf("WordAt(2048) = %q, want %q", w, "zoo")
	}
}

func TestIndexOf_Unknown(t *testing.T) {
	d := NewEnglish()

	tests := []string{"", "notaword", "Abandon", "ABANDON", "abandon "}
	for _, word := range tests {
		if _, err := d.IndexOf(word); !errors.Is(err, ErrUnknownWord) {
			t.Errorf("IndexOf(%q) error = %v, want ErrUnknownWord", word, err)
		}
	}
}

func TestWordAt_OutOfRange(t *testing.T) {
	d := NewEnglish()

	for _, idx := range []int{-1, 0, 2049, 1 << 20} {
		if _, err := d.WordAt(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("WordAt(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	d := NewEnglish()
	for idx := 1; idx <= d.Size(); idx++ {
		w, err := d.WordAt(idx)
		if err != nil {
			t.Fatalf("WordAt(%d) error: %v", idx, err)
		}
		back, err := d.IndexOf(w)
		if err != nil {
			t.Fatalf("IndexOf(%q) error: %v", w, err)
		}
		if back != idx {
			t.Fatalf("IndexOf(WordAt(%d)) = %d", idx, back)
		}
	}
}

func TestNew_Custom(t *testing.T) {
	d, err := New([]string{"alpha", "bravo", "charlie"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if d.Size() != 3 {
		t.Errorf("Size() = %d, want 3", d.Size())
	}

	idx, err := d.IndexOf("charlie")
	if err != nil {
		t.Fatalf("IndexOf(charlie) error: %v", err)
	}
	if idx != 3 {
		t.Errorf("IndexOf(charlie) = %d, want 3", idx)
	}
}

func TestNew_Rejects(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}
	if _, err := New([]string{"dup", "dup"}); err == nil {
		t.Error("New with duplicate words should fail")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	words := []string{"alpha", "bravo"}
	d, err := New(words)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	words[0] = "mutated"

	w, err := d.WordAt(1)
	if err != nil {
		t.Fatalf("WordAt(1) error: %v", err)
	}
	if w != "alpha" {
		t.Errorf("WordAt(1) = %q after caller mutation, want %q", w, "alpha")
	}
}

func TestDigits(t *testing.T) {
	d := NewEnglish()

	digits, err := d.ToDigits([]string{"abandon", "zoo", "ability"})
	if err != nil {
		t.Fatalf("ToDigits() error: %v", err)
	}
	want := []string{"1", "2048", "2"}
	for i := range want {
		if digits[i] != want[i] {
			t.Errorf("ToDigits()[%d] = %q, want %q", i, digits[i], want[i])
		}
	}

	words, err := d.FromDigits(digits)
	if err != nil {
		t.Fatalf("FromDigits() error: %v", err)
	}
	for i, w := range []string{"abandon", "zoo", "ability"} {
		if words[i] != w {
			t.Errorf("FromDigits()[%d] = %q, want %q", i, words[i], w)
		}
	}
}

func TestFromDigits_Invalid(t *testing.T) {
	d := NewEnglish()

	if _, err := d.FromDigits([]string{"notanumber"}); err == nil {
		t.Error("FromDigits with non-numeric input should fail")
	}
	if _, err := d.FromDigits([]string{"0"}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("FromDigits(0) should fail with ErrIndexOutOfRange")
	}
	if _, err := d.FromDigits([]string{"2049"}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("FromDigits(2049) should fail with ErrIndexOutOfRange")
	}
}
