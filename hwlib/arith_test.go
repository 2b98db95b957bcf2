package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/netsim"
	hl "github.com/db47h/netsim/hwlib"
	"github.com/db47h/netsim/hwtest"
	"github.com/pkg/errors"
)

func TestAdd(t *testing.T) {
	var a, b, out netsim.Value
	s := binary(t, hl.NewAdd("add", in("a", "out"), in("b", "out")), &a, &b, &out)
	f := func(x, y uint32) bool {
		a, b = netsim.Data(x), netsim.Data(y)
		return s.Clock() == nil && out == netsim.Data(x+y)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestAdd_overflow(t *testing.T) {
	td := []struct {
		a, b uint32
		ovf  uint32
	}{
		{1, 2, 0},
		{0x7fffffff, 1, 1},
		{0x80000000, 0x80000000, 1},
		{0x80000000, 0x7fffffff, 0},
		{0xffffffff, 1, 0},
		{0x40000000, 0x40000000, 1},
	}
	h := hwtest.New(t, []netsim.Component{
		hl.NewProbeOut("a"),
		hl.NewProbeOut("b"),
		hl.NewAdd("add", in("a", "out"), in("b", "out")),
	})
	for _, d := range td {
		h.Poke("a", d.a).Poke("b", d.b).Clock()
		h.ExpectData("add", "out", d.a+d.b).ExpectData("add", "overflow", d.ovf)
	}
}

func TestEqual(t *testing.T) {
	var a, b, out netsim.Value
	s := binary(t, hl.NewEqual("eq", in("a", "out"), in("b", "out")), &a, &b, &out)
	f := func(x, y uint32, same bool) bool {
		if same {
			y = x
		}
		a, b = netsim.Data(x), netsim.Data(y)
		return s.Clock() == nil && out == netsim.Bool(x == y)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestExtend(t *testing.T) {
	td := []struct {
		bits int
		in   uint32
		sext uint32
		zext uint32
	}{
		{8, 0xf0, 0xfffffff0, 0xf0},
		{8, 0x1270, 0x70, 0x70},
		{16, 0x8001, 0xffff8001, 0x8001},
		{16, 0xabcd7fff, 0x7fff, 0x7fff},
		{1, 1, 0xffffffff, 1},
		{32, 0x80000000, 0x80000000, 0x80000000},
	}
	for _, d := range td {
		h := hwtest.New(t, []netsim.Component{
			hl.NewProbeOut("in"),
			hl.NewSignExtend("sext", in("in", "out"), d.bits),
			hl.NewZeroExtend("zext", in("in", "out"), d.bits),
		})
		h.Poke("in", d.in).Clock()
		h.ExpectData("sext", "out", d.sext).ExpectData("zext", "out", d.zext)
	}
}

func TestExtend_badWidth(t *testing.T) {
	h := hwtest.New(t, []netsim.Component{
		hl.NewProbeOut("in"),
		hl.NewSignExtend("sext", in("in", "out"), 0),
		hl.NewZeroExtend("zext", in("in", "out"), 33),
	})
	err := h.Poke("in", 1).ClockErr()
	if !errors.Is(err, netsim.ErrInvalidControl) {
		t.Fatalf("expected invalid control, got %v", err)
	}
	var sweep *netsim.SweepError
	if !errors.As(err, &sweep) {
		t.Fatalf("expected a sweep error, got %T", err)
	}
	if len(sweep.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(sweep.Conditions))
	}
}

func TestShiftLeftConst(t *testing.T) {
	var v, out netsim.Value
	s, err := netsim.New(netsim.NewStore(
		hl.NewSource("in", func() netsim.Value { return v }),
		hl.NewShiftLeftConst("sl2", in("in", "out"), 2),
		hl.NewSink("sink", in("sl2", "out"), func(o netsim.Value) { out = o }),
	))
	if err != nil {
		t.Fatal(err)
	}
	f := func(x uint32) bool {
		v = netsim.Data(x)
		return s.Clock() == nil && out == netsim.Data(x<<2)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
