// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notify

import (
	"fmt"
	"testing"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type shape struct {
	Notifier
	Width, Height float64
}

func shapeType() *props.Type {
	t := props.NewType[*shape]()
	props.AddField(t, "Width", func(s *shape) float64 { return s.Width },
		func(s *shape, v float64) error { s.Width = v; return nil })
	props.AddField(t, "Height", func(s *shape) float64 { return s.Height },
		func(s *shape, v float64) error { s.Height = v; return nil })
	props.AddField(t, "Area", func(s *shape) float64 { return s.Width * s.Height }, nil,
		attrs.DependsOn{"Width", "Height"})
	props.AddField(t, "Perimeter", func(s *shape) float64 { return 2 * (s.Width + s.Height) }, nil,
		attrs.DependsOn{"Width", "Height"})
	props.AddField(t, "Summary", func(s *shape) string { return fmt.Sprint(s.Width * s.Height) }, nil,
		attrs.DependsOn{"Area"})
	return t
}

// record returns a notifier over the given dependency declarations
// (name -> sources), recording every announced name.
func record(t *testing.T, decls map[string][]string, order []string) (*Notifier, *[]string) {
	pt := props.NewType[*shape]()
	for _, name := range order {
		props.AddField(pt, name, func(s *shape) int { return 0 }, nil, attrs.DependsOn(decls[name]))
	}
	n := &Notifier{}
	n.Init(NewRegistry(), pt)
	var got []string
	n.OnPropertyChanged(func(name string) { got = append(got, name) })
	return n, &got
}

func TestBuildDependencyMap(t *testing.T) {
	m := BuildDependencyMap(shapeType())
	require.NotNil(t, m)
	assert.Equal(t, []string{"Area", "Perimeter"}, m.Dependents("Width"))
	assert.Equal(t, []string{"Area", "Perimeter"}, m.Dependents("Height"))
	assert.Equal(t, []string{"Summary"}, m.Dependents("Area"))
	assert.Nil(t, m.Dependents("Summary"))
	assert.Equal(t, 3, m.Len())

	empty := props.NewType[*shape]()
	props.AddField(empty, "Width", func(s *shape) float64 { return s.Width }, nil)
	assert.Nil(t, BuildDependencyMap(empty))
}

func TestRegistryCaches(t *testing.T) {
	r := NewRegistry()
	st := shapeType()
	m1 := r.Map(st)
	require.NotNil(t, m1)
	assert.Same(t, m1, r.Map(st))
	assert.NotSame(t, m1, NewRegistry().Map(st))

	empty := props.NewType[*shape]()
	assert.Nil(t, r.Map(empty))
	assert.Nil(t, r.Map(empty))
}

func TestFanOutOrder(t *testing.T) {
	s := &shape{}
	s.Init(NewRegistry(), shapeType())
	var got []string
	s.OnPropertyChanged(func(name string) { got = append(got, name) })

	s.RaisePropertyChanged("Width")
	assert.Equal(t, []string{"Width", "Area", "Summary", "Perimeter"}, got)

	got = nil
	s.RaisePropertyChanged("Summary")
	assert.Equal(t, []string{"Summary"}, got)

	got = nil
	s.RaisePropertyChanged("Unknown")
	assert.Equal(t, []string{"Unknown"}, got)
}

func TestFanOutThroughHandle(t *testing.T) {
	s := &shape{}
	st := shapeType()
	s.Init(NewRegistry(), st)
	var got []string
	s.OnPropertyChanged(func(name string) { got = append(got, name) })

	h, _ := st.Bind(s).Handle("Height")
	require.NoError(t, h.SetValue(2.0))
	assert.Equal(t, []string{"Height", "Area", "Summary", "Perimeter"}, got)
}

func TestCycleTerminates(t *testing.T) {
	n, got := record(t, map[string][]string{"A": {"B"}, "B": {"A"}}, []string{"A", "B"})
	n.RaisePropertyChanged("A")
	assert.Equal(t, []string{"A", "B"}, *got)
	assert.Empty(t, n.guard)

	*got = nil
	n.RaisePropertyChanged("B")
	assert.Equal(t, []string{"B", "A"}, *got)
}

func TestSelfDependency(t *testing.T) {
	n, got := record(t, map[string][]string{"A": {"A"}}, []string{"A"})
	n.RaisePropertyChanged("A")
	assert.Equal(t, []string{"A"}, *got)
}

func TestGuardReleasedOnPanic(t *testing.T) {
	n, got := record(t, map[string][]string{"B": {"A"}}, []string{"A", "B"})
	id := n.OnPropertyChanged(func(name string) {
		if name == "B" {
			panic("listener failed")
		}
	})
	assert.Panics(t, func() { n.RaisePropertyChanged("A") })
	assert.Empty(t, n.guard)

	n.RemovePropertyChanged(id)
	*got = nil
	n.RaisePropertyChanged("A")
	assert.Equal(t, []string{"A", "B"}, *got)
}

func TestReentrantRaise(t *testing.T) {
	n, got := record(t, map[string][]string{"B": {"A"}, "C": {"X"}}, []string{"A", "B", "C", "X"})
	n.OnPropertyChanged(func(name string) {
		switch name {
		case "B":
			n.RaisePropertyChanged("A") // A is propagating: skipped
			n.RaisePropertyChanged("X")
		}
	})
	n.RaisePropertyChanged("A")
	assert.Equal(t, []string{"A", "B", "X", "C"}, *got)
	assert.Empty(t, n.guard)
}

// reference is the recursive formulation of the propagation.
func reference(m *DependencyMap, name string, guard []string, out *[]string) {
	for _, g := range guard {
		if g == name {
			return
		}
	}
	*out = append(*out, name)
	deps := m.Dependents(name)
	if len(deps) == 0 {
		return
	}
	guard = append(guard, name)
	for _, d := range deps {
		reference(m, d, guard, out)
	}
}

func TestFanOutMatchesRecursion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 7).Draw(rt, "n")
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("P%d", i)
		}
		decls := map[string][]string{}
		for _, name := range names {
			srcs := rapid.SliceOfNDistinct(rapid.SampledFrom(names), 0, min(3, n), rapid.ID[string]).Draw(rt, name)
			decls[name] = srcs
		}
		start := rapid.SampledFrom(names).Draw(rt, "start")

		nt, got := record(t, decls, names)
		nt.RaisePropertyChanged(start)

		var want []string
		reference(nt.DependencyMap(), start, nil, &want)
		if fmt.Sprint(want) != fmt.Sprint(*got) {
			rt.Fatalf("propagation %v, want %v", *got, want)
		}
		if len(nt.guard) != 0 {
			rt.Fatalf("guard not released: %v", nt.guard)
		}
		counts := map[string]int{}
		for _, g := range *got {
			counts[g]++
		}
		if counts[start] != 1 {
			rt.Fatalf("start %s announced %d times", start, counts[start])
		}
	})
}
