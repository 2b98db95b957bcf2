package hwlib_test

import (
	"testing"

	"github.com/db47h/netsim"
	hl "github.com/db47h/netsim/hwlib"
	"github.com/db47h/netsim/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataMem(t *testing.T, init map[uint64]byte, opts ...netsim.Option) (*hwtest.Harness, *hl.DataMem) {
	t.Helper()
	dm := hl.NewDataMem("dm", in("addr", "out"), in("op", "out"), in("wd", "out"), in("we", "out"), init)
	h := hwtest.New(t, []netsim.Component{
		hl.NewProbeOut("addr"),
		hl.NewProbeOut("op"),
		hl.NewProbeOut("wd"),
		hl.NewProbeOut("we"),
		dm,
	}, opts...)
	return h, dm
}

func TestDataMem_ports(t *testing.T) {
	_, dm := newDataMem(t, nil)
	id, ps := dm.IDPorts()
	assert.Equal(t, "dm", id)
	assert.Equal(t, netsim.Combinational, ps.OutType)
	assert.Equal(t, []string{hl.DataMemDataOut}, ps.Outputs)
	var names []string
	for _, p := range ps.Inputs {
		names = append(names, p.PortID)
	}
	assert.Equal(t, []string{"addr_in", "op_in", "wd_in", "we_in"}, names)

	require.NoError(t, dm.SetIDPort("we_in", in("other", "out")))
	assert.Equal(t, in("other", "out"), dm.WE)
	assert.Error(t, dm.SetIDPort("rd_out", in("other", "out")))
}

func TestDataMem_bigEndian(t *testing.T) {
	h, _ := newDataMem(t, nil)
	// settle pass saw no data on the inputs
	h.Expect("dm", "data_out", netsim.Uninitialized)

	// store byte 0xf0 at 4; same tick read returns the new contents
	h.Poke("addr", 4).Poke("op", hl.OpSB).Poke("wd", 0xf0).Poke("we", 1).Clock()
	h.ExpectData("dm", "data_out", 0xf0)

	h.Poke("we", 0)
	td := []struct {
		name string
		op   uint32
		exp  uint32
	}{
		{"LBU", hl.OpLBU, 0xf0},
		{"LB", hl.OpLB, 0xfffffff0},
		{"LHU", hl.OpLHU, 0xf000},
		{"LH", hl.OpLH, 0xfffff000},
		{"LW", hl.OpLW, 0xf0000000},
		{"other", 0, 0xf0000000},
	}
	for _, d := range td {
		h.Poke("op", d.op).Clock().ExpectData("dm", "data_out", d.exp)
		// repeated reads are stable
		h.Clock().ExpectData("dm", "data_out", d.exp)
	}

	// endianness
	h.Poke("addr", 10).Poke("op", hl.OpSH).Poke("wd", 0x1234).Poke("we", 1).Clock()
	h.Poke("we", 0).Poke("op", hl.OpLBU).Clock().ExpectData("dm", "data_out", 0x12)
	h.Poke("addr", 11).Clock().ExpectData("dm", "data_out", 0x34)
}

func TestDataMem_littleEndian(t *testing.T) {
	h, dm := newDataMem(t, nil)
	dm.LittleEndian = true
	h.Poke("addr", 10).Poke("op", hl.OpSH).Poke("wd", 0x1234).Poke("we", 1).Clock()
	h.Poke("we", 0).Poke("op", hl.OpLBU).Clock().ExpectData("dm", "data_out", 0x34)
	h.Poke("addr", 11).Clock().ExpectData("dm", "data_out", 0x12)
	h.Poke("addr", 10).Poke("op", hl.OpLH).Clock().ExpectData("dm", "data_out", 0x1234)
}

func TestDataMem_zeroAddress(t *testing.T) {
	h, dm := newDataMem(t, nil)
	h.Poke("addr", 0).Poke("op", hl.OpSW).Poke("wd", 0xdeadbeef).Poke("we", 1).Clock()
	h.ExpectData("dm", "data_out", 0)
	h.Poke("we", 0).Poke("op", hl.OpLW).Clock().ExpectData("dm", "data_out", 0)
	assert.Equal(t, 0, dm.Memory().Len())

	ops := dm.History()
	// settle, write, read
	require.Len(t, ops, 3)
	assert.True(t, ops[1].Write)
	assert.True(t, ops[1].Discarded)
	assert.Equal(t, netsim.Data(0), ops[1].Prev)
	assert.False(t, ops[2].Write)
}

func TestDataMem_conditions(t *testing.T) {
	h, _ := newDataMem(t, map[uint64]byte{4: 0x11, 5: 0x22, 6: 0x33, 7: 0x44})
	h.Poke("addr", 4).Poke("op", hl.OpLW).Poke("wd", 0).Poke("we", 0).Clock()
	h.ExpectData("dm", "data_out", 0x11223344)

	for _, op := range []uint32{hl.OpLWL, hl.OpLWR} {
		err := h.Poke("op", op).ClockErr()
		require.Error(t, err)
		assert.ErrorIs(t, err, netsim.ErrNotImplemented)
		var sweep *netsim.SweepError
		require.ErrorAs(t, err, &sweep)
		assert.Error(t, sweep.Condition("dm"))
		// output untouched
		h.ExpectData("dm", "data_out", 0x11223344)
	}

	err := h.Poke("op", hl.OpLW).PokeValue("addr", "out", netsim.Unknown).ClockErr()
	assert.ErrorIs(t, err, netsim.ErrNotData)
	h.ExpectData("dm", "data_out", 0x11223344)

	// write data is only required for writes
	h.Poke("addr", 4).PokeValue("wd", "out", netsim.DontCare).Clock()
	err = h.Poke("we", 1).ClockErr()
	assert.ErrorIs(t, err, netsim.ErrNotData)
}

func TestDataMem_misaligned(t *testing.T) {
	h, dm := newDataMem(t, nil)
	h.Poke("addr", 5).Poke("op", hl.OpSW).Poke("wd", 0xcafebabe).Poke("we", 1).Clock()
	// performed as requested
	h.ExpectData("dm", "data_out", 0xcafebabe)
	ops := dm.History()
	require.NotEmpty(t, ops)
	assert.True(t, ops[len(ops)-1].Misaligned)
}

func TestDataMem_unclock(t *testing.T) {
	h, dm := newDataMem(t, map[uint64]byte{8: 1, 9: 2, 10: 3, 11: 4}, netsim.WithHistory(8))
	h.Poke("addr", 8).Poke("op", hl.OpSW).Poke("wd", 0xaabbccdd).Poke("we", 1).Clock()
	h.Poke("wd", 0x11111111).Clock()
	assert.Equal(t, netsim.Data(0x11111111), dm.Memory().Read(8, 4, false, true))

	require.NoError(t, h.Sim.UnClock())
	assert.Equal(t, netsim.Data(0xaabbccdd), dm.Memory().Read(8, 4, false, true))
	h.ExpectData("dm", "data_out", 0xaabbccdd)

	require.NoError(t, h.Sim.UnClock())
	assert.Equal(t, netsim.Data(0x01020304), dm.Memory().Read(8, 4, false, true))
	assert.EqualValues(t, 1, h.Sim.Cycle())

	err := h.Sim.UnClock()
	assert.ErrorIs(t, err, netsim.ErrNoHistory)
}

func TestDataMem_resetAndSeed(t *testing.T) {
	h, dm := newDataMem(t, map[uint64]byte{0x100: 0x7f})
	h.Poke("addr", 0x100).Poke("op", hl.OpSB).Poke("wd", 0x80).Poke("we", 1).Clock()
	h.Poke("we", 0).Poke("op", hl.OpLB).Clock().ExpectData("dm", "data_out", 0xffffff80)

	h.Sim.Reset()
	assert.EqualValues(t, 1, h.Sim.Cycle())
	assert.Equal(t, byte(0x7f), dm.Memory().Byte(0x100))
	// settle after reset saw Uninitialized probes
	assert.Len(t, dm.History(), 1)

	require.NoError(t, h.Sim.Seed("dm", map[uint64]byte{0x200: 0xff}))
	assert.Equal(t, byte(0), dm.Memory().Byte(0x100))
	h.Poke("addr", 0x200).Poke("op", hl.OpLBU).Poke("we", 0).Clock().ExpectData("dm", "data_out", 0xff)

	assert.Error(t, h.Sim.Seed("addr", nil))
	assert.Error(t, h.Sim.Seed("nope", nil))
}

func TestInstrMem(t *testing.T) {
	im := hl.NewInstrMem("im", in("pc", "out"), map[uint64]byte{
		0: 0x20, 1: 0x08, 2: 0x00, 3: 0x05,
		4: 0x8c, 5: 0x09, 6: 0x00, 7: 0x04,
	})
	h := hwtest.New(t, []netsim.Component{hl.NewProbeOut("pc"), im})
	h.Poke("pc", 0).Clock().ExpectData("im", "instr_out", 0x20080005)
	h.Poke("pc", 4).Clock().ExpectData("im", "instr_out", 0x8c090004)
	h.Poke("pc", 8).Clock().ExpectData("im", "instr_out", 0)
	// misaligned fetches are performed as requested
	h.Poke("pc", 2).Clock().ExpectData("im", "instr_out", 0x00058c09)

	err := h.PokeValue("pc", "out", netsim.Uninitialized).ClockErr()
	assert.ErrorIs(t, err, netsim.ErrNotData)
	h.ExpectData("im", "instr_out", 0x00058c09)
}

func TestDataMem_historyBound(t *testing.T) {
	h, dm := newDataMem(t, nil)
	h.Poke("addr", 4).Poke("op", hl.OpSW).Poke("we", 1)
	for i := uint32(0); i < 100000; i++ {
		h.Poke("wd", i).Clock()
	}
	ops := dm.History()
	require.Len(t, ops, hl.HistoryWindow)
	last := ops[len(ops)-1]
	assert.EqualValues(t, 100000, last.Cycle)
	assert.Equal(t, netsim.Data(99998), last.Prev)

	// a deeper simulator history raises the bound
	h, dm = newDataMem(t, nil, netsim.WithHistory(2*hl.HistoryWindow))
	h.Poke("addr", 4).Poke("op", hl.OpLW).Poke("we", 0)
	for i := 0; i < 4*hl.HistoryWindow; i++ {
		h.Clock()
	}
	assert.Len(t, dm.History(), 2*hl.HistoryWindow)
}
