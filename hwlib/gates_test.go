package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/netsim"
	hl "github.com/db47h/netsim/hwlib"
	"github.com/db47h/netsim/hwtest"
	"github.com/pkg/errors"
)

var in = netsim.NewInput

// binary returns a simulator feeding a and b to the two input ports of part,
// and reporting its out output to out.
func binary(t *testing.T, part netsim.Component, a, b *netsim.Value, out *netsim.Value) *netsim.Simulator {
	t.Helper()
	id, _ := part.IDPorts()
	s, err := netsim.New(netsim.NewStore(
		hl.NewSource("a", func() netsim.Value { return *a }),
		hl.NewSource("b", func() netsim.Value { return *b }),
		part,
		hl.NewSink("sink", in(id, "out"), func(v netsim.Value) { *out = v }),
	))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestGates(t *testing.T) {
	td := []struct {
		op string
		fn func(a, b uint32) uint32
	}{
		{"AND", func(a, b uint32) uint32 { return a & b }},
		{"NAND", func(a, b uint32) uint32 { return ^(a & b) }},
		{"OR", func(a, b uint32) uint32 { return a | b }},
		{"NOR", func(a, b uint32) uint32 { return ^(a | b) }},
		{"XOR", func(a, b uint32) uint32 { return a ^ b }},
		{"XNOR", func(a, b uint32) uint32 { return ^(a ^ b) }},
	}
	for _, d := range td {
		t.Run(d.op, func(t *testing.T) {
			var a, b, out netsim.Value
			s := binary(t, hl.NewGate("g", d.op, in("a", "out"), in("b", "out")), &a, &b, &out)
			f := func(x, y uint32) bool {
				a, b = netsim.Data(x), netsim.Data(y)
				if err := s.Clock(); err != nil {
					t.Log(err)
					return false
				}
				return out == netsim.Data(d.fn(x, y))
			}
			if err := quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGate_unknown(t *testing.T) {
	for _, v := range []netsim.Value{netsim.Uninitialized, netsim.Unknown, netsim.DontCare} {
		a, b, out := netsim.Data(1), v, netsim.Data(0)
		s := binary(t, hl.And("g", in("a", "out"), in("b", "out")), &a, &b, &out)
		if err := s.Clock(); err != nil {
			t.Fatal(err)
		}
		if out != netsim.Unknown {
			t.Fatalf("AND(1, %v) = %v, expected unknown", v, out)
		}
	}
}

func TestGate_badOp(t *testing.T) {
	a, b, out := netsim.Data(1), netsim.Data(1), netsim.Data(0)
	s := binary(t, hl.NewGate("g", "IMPLY", in("a", "out"), in("b", "out")), &a, &b, &out)
	err := s.Clock()
	if !errors.Is(err, netsim.ErrNotImplemented) {
		t.Fatalf("expected not implemented condition, got %v", err)
	}
	if out != netsim.Unknown {
		t.Fatalf("expected unknown output, got %v", out)
	}
}

func TestNot(t *testing.T) {
	var v, out netsim.Value
	s, err := netsim.New(netsim.NewStore(
		hl.NewSource("in", func() netsim.Value { return v }),
		hl.NewNot("not", in("in", "out")),
		hl.NewSink("sink", in("not", "out"), func(o netsim.Value) { out = o }),
	))
	if err != nil {
		t.Fatal(err)
	}
	f := func(x uint32) bool {
		v = netsim.Data(x)
		return s.Clock() == nil && out == netsim.Data(^x)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestGateOps(t *testing.T) {
	ops := hl.GateOps()
	exp := []string{"AND", "NAND", "NOR", "OR", "XNOR", "XOR"}
	if len(ops) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, ops)
	}
	for i := range ops {
		if ops[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, ops)
		}
	}
}

func TestXorFromNand(t *testing.T) {
	xor := hwtest.Part(func(id string, ins ...netsim.Input) netsim.Component {
		return hl.Xor(id, ins[0], ins[1])
	})
	nandXor := func(p string, ins []netsim.Input) ([]netsim.Component, []netsim.Input) {
		return []netsim.Component{
				hl.Nand(p+"nab", ins[0], ins[1]),
				hl.Nand(p+"x", ins[0], in(p+"nab", "out")),
				hl.Nand(p+"y", in(p+"nab", "out"), ins[1]),
				hl.Nand(p+"out", in(p+"x", "out"), in(p+"y", "out")),
			},
			[]netsim.Input{in(p+"out", "out")}
	}
	hwtest.ComparePart(t, 2, xor, nandXor)
}
