package interval

import (
	"testing"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
)

func TestMaximalIntervalMatchesGenesis(t *testing.T) {
	got := MaximalInterval()
	want := Interval{Start: 1, End: ^uint64(0) - 1}
	if got != want {
		t.Fatalf("MaximalInterval() = %+v, want %+v", got, want)
	}
}

func TestContains(t *testing.T) {
	parent := New(10, 100)

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"equal", New(10, 100), true},
		{"strictly inside", New(20, 30), true},
		{"touches both ends", New(10, 10), true},
		{"extends past end", New(20, 101), false},
		{"extends before start", New(9, 50), false},
		{"disjoint after", New(101, 200), false},
		{"disjoint before", New(1, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parent.Contains(tt.other); got != tt.want {
				t.Errorf("Contains(%+v) = %t, want %t", tt.other, got, tt.want)
			}
		})
	}
}

func TestSplitHalf(t *testing.T) {
	tests := []struct {
		name      string
		in        Interval
		wantLeft  Interval
		wantRight Interval
	}{
		{"even size", New(1, 10), New(1, 5), New(6, 10)},
		{"odd size, left gets the extra point", New(1, 11), New(1, 6), New(7, 11)},
		{"size one", New(5, 5), New(5, 5), Interval{Start: 6, End: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, err := SplitHalf(tt.in)
			if err != nil {
				t.Fatalf("SplitHalf: %s", err)
			}
			if left != tt.wantLeft {
				t.Errorf("left = %+v, want %+v", left, tt.wantLeft)
			}
			if right != tt.wantRight {
				t.Errorf("right = %+v, want %+v", right, tt.wantRight)
			}
		})
	}
}

func TestSplitHalfExhausted(t *testing.T) {
	empty := Interval{Start: 5, End: 4}
	_, _, err := SplitHalf(empty)
	if !model.IsCapacityExhaustedError(err) {
		t.Fatalf("SplitHalf(empty) error = %v, want ErrCapacityExhausted", err)
	}
}

func TestSplitAfter(t *testing.T) {
	parent := New(1, 100)

	suffix, err := SplitAfter(parent, 50)
	if err != nil {
		t.Fatalf("SplitAfter: %s", err)
	}
	if suffix != (Interval{Start: 51, End: 100}) {
		t.Fatalf("SplitAfter(50) = %+v, want [51, 100]", suffix)
	}

	_, err = SplitAfter(parent, 100)
	if !model.IsCapacityExhaustedError(err) {
		t.Fatalf("SplitAfter(usedEnd=End) error = %v, want ErrCapacityExhausted", err)
	}
}

func TestSplitExact(t *testing.T) {
	parent := New(1, 10)

	intervals, err := SplitExact(parent, []uint64{3, 3, 4})
	if err != nil {
		t.Fatalf("SplitExact: %s", err)
	}
	want := []Interval{{Start: 1, End: 3}, {Start: 4, End: 6}, {Start: 7, End: 10}}
	for i, w := range want {
		if intervals[i] != w {
			t.Errorf("intervals[%d] = %+v, want %+v", i, intervals[i], w)
		}
	}

	_, err = SplitExact(parent, []uint64{5, 6})
	if !model.IsCapacityExhaustedError(err) {
		t.Fatalf("SplitExact(oversized) error = %v, want ErrCapacityExhausted", err)
	}
}

func TestSizeAndEmpty(t *testing.T) {
	i := New(5, 9)
	if i.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", i.Size())
	}
	if i.Empty() {
		t.Fatalf("Empty() = true for a non-empty interval")
	}

	empty := Interval{Start: 5, End: 4}
	if !empty.Empty() {
		t.Fatalf("Empty() = false for a zero-size interval")
	}
}
