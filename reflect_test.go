package netsim_test

import (
	"testing"

	"github.com/db47h/netsim"
)

type testPart struct {
	ID   string
	A    netsim.Input   `sim:"in"`
	B    []netsim.Input `sim:"in,bus"`
	Sel  netsim.Input   `sim:"in,sel_in"`
	Conf int
}

func TestInputPortsOf(t *testing.T) {
	p := &testPart{
		A:   netsim.NewInput("a", "out"),
		B:   []netsim.Input{netsim.NewInput("b", "out[0]"), netsim.NewInput("b", "out[1]")},
		Sel: netsim.NewInput("s", "out"),
	}
	exp := []netsim.InputPort{
		{PortID: "a", Input: p.A},
		{PortID: "bus[0]", Input: p.B[0]},
		{PortID: "bus[1]", Input: p.B[1]},
		{PortID: "sel_in", Input: p.Sel},
	}
	for _, v := range []interface{}{p, *p} {
		ps := netsim.InputPortsOf(v)
		if len(ps) != len(exp) {
			t.Fatalf("expected %v, got %v", exp, ps)
		}
		for i := range ps {
			if ps[i] != exp[i] {
				t.Errorf("port %d: expected %v, got %v", i, exp[i], ps[i])
			}
		}
	}
}

func TestSetInputPort(t *testing.T) {
	p := &testPart{B: make([]netsim.Input, 2)}
	x := netsim.NewInput("x", "out")
	for _, port := range []string{"a", "bus[1]", "sel_in"} {
		if err := netsim.SetInputPort(p, port, x); err != nil {
			t.Fatal(err)
		}
	}
	if p.A != x || p.B[1] != x || p.Sel != x || p.B[0] != (netsim.Input{}) {
		t.Fatalf("bad binding: %+v", p)
	}
	for _, port := range []string{"b", "bus", "bus[2]", "conf", "sel"} {
		if err := netsim.SetInputPort(p, port, x); err == nil {
			t.Errorf("%s: expected error", port)
		}
	}
	if err := netsim.SetInputPort(*p, "a", x); err == nil {
		t.Error("expected error for non-pointer")
	}
}

func TestInputPortsOf_panics(t *testing.T) {
	type badTag struct {
		A netsim.Input `sim:"out"`
	}
	type badType struct {
		A int `sim:"in"`
	}
	for _, v := range []interface{}{badTag{}, &badType{}, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%T: expected panic", v)
				}
			}()
			netsim.InputPortsOf(v)
		}()
	}
}
