package agent

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/eashang1/terminal-s8/model"
)

func TestParseBreaches(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []model.Coordinate
		wantErr bool
	}{
		{"opponent breach", `{"events":{"breach":[[[3,4],1,3,"12",2]]}}`, model.Coordinates([2]int{3, 4}), false},
		{"own breach", `{"events":{"breach":[[[3,4],1,3,"12",1]]}}`, nil, false},
		{"mixed keeps order", `{"events":{"breach":[[[20,6],2,3,"1",2],[[14,27],1,3,"2",1],[[5,8],1,4,"3",2]]}}`,
			model.Coordinates([2]int{20, 6}, [2]int{5, 8}), false},
		{"empty list", `{"events":{"breach":[]}}`, nil, false},
		{"missing breach", `{"events":{"damage":[]}}`, nil, true},
		{"missing events", `{"turnInfo":[1,2,3]}`, nil, true},
		{"short entry", `{"events":{"breach":[[[20,6],2,3,"1",2],[[3,4],1]]}}`, nil, true},
		{"bad location", `{"events":{"breach":[["x",1,3,"1",2]]}}`, nil, true},
		{"not json", `{"events":`, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBreaches([]byte(tc.raw))
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseBreaches error = %v, wantErr %v", err, tc.wantErr)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("ParseBreaches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOnActionFrame(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	frames := []string{
		`{"events":{"breach":[[[3,4],1,3,"12",2]]}}`,
		`{"events":{"breach":[[[3,4],1,3,"13",1]]}}`,
		`{"events":{"breach":[[[9,4],1,3,"14",2],[[3,4],1,3,"15",2]]}}`,
	}
	for _, f := range frames {
		if err := o.OnActionFrame(ctx, []byte(f)); err != nil {
			t.Fatalf("OnActionFrame(%s): %v", f, err)
		}
	}
	want := model.Coordinates([2]int{3, 4}, [2]int{9, 4}, [2]int{3, 4})
	if got := o.Breaches(); !slices.Equal(got, want) {
		t.Fatalf("breach log = %v, want %v", got, want)
	}

	// A batch with one bad entry is dropped whole.
	err := o.OnActionFrame(ctx, []byte(`{"events":{"breach":[[[1,12],1,3,"16",2],"junk"]}}`))
	if err == nil {
		t.Fatal("expected an error for a malformed batch")
	}
	if got := o.Breaches(); !slices.Equal(got, want) {
		t.Errorf("malformed batch changed the log: %v", got)
	}

	err = o.OnActionFrame(ctx, []byte(`{"events":{}}`))
	if !errors.Is(err, ErrNoBreachEvents) {
		t.Errorf("missing breach error = %v, want ErrNoBreachEvents", err)
	}
}

func TestBreachLog(t *testing.T) {
	var l BreachLog
	l.Append(model.C(1, 12))
	l.Append(model.C(2, 11), model.C(1, 12))

	all := l.All()
	all[0] = model.C(0, 0)
	if l.All()[0] != model.C(1, 12) {
		t.Error("All must return a copy")
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}

	tests := []struct {
		n    int
		want int
	}{
		{-1, 3},
		{0, 3},
		{2, 1},
		{3, 0},
		{7, 0},
	}
	for _, tc := range tests {
		if got := len(l.Since(tc.n)); got != tc.want {
			t.Errorf("len(Since(%d)) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
