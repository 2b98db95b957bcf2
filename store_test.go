package netsim_test

import (
	"path/filepath"
	"testing"

	"github.com/db47h/netsim"
	hl "github.com/db47h/netsim/hwlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var in = netsim.NewInput

func TestStore_Validate(t *testing.T) {
	td := []struct {
		name string
		cs   []netsim.Component
		err  string
	}{
		{"ok", []netsim.Component{hl.NewConstant("c", 1), hl.NewNot("n", in("c", "out"))}, ""},
		{"empty id", []netsim.Component{hl.NewConstant("", 1)}, `component of kind "Constant" has an empty id`},
		{"duplicate", []netsim.Component{hl.NewConstant("c", 1), hl.NewConstant("c", 2)}, `duplicate component id "c"`},
		{"producer", []netsim.Component{hl.NewNot("n", in("c", "out"))}, `n.in: unknown component "c"`},
		{"output", []netsim.Component{hl.NewConstant("c", 1), hl.NewNot("n", in("c", "data"))}, `n.in: component "c" has no output "data"`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			err := netsim.NewStore(d.cs...).Validate()
			if d.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, d.err)
		})
	}
}

func TestStore_lookup(t *testing.T) {
	s := netsim.NewStore(hl.NewConstant("a", 1))
	s.Add(hl.NewConstant("b", 2), hl.NewProbeOut("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	c, ok := s.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, uint32(2), c.(*hl.Constant).Value)
	_, ok = s.Lookup("d")
	assert.False(t, ok)
}

func TestStore_file(t *testing.T) {
	name := filepath.Join(t.TempDir(), "net.json")
	s := netsim.NewStore(
		hl.NewConstant("c", 7),
		hl.NewRegister("r", in("c", "out")),
	)
	require.NoError(t, s.SaveFile(name))
	l, err := netsim.LoadFile(name)
	require.NoError(t, err)
	assert.Equal(t, s.IDs(), l.IDs())
	r, _ := l.Lookup("r")
	assert.Equal(t, in("c", "out"), r.(*hl.Register).In)

	_, err = netsim.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRegisterKind_duplicate(t *testing.T) {
	assert.Panics(t, func() {
		netsim.RegisterKind("Constant", func() netsim.Component { return new(hl.Constant) })
	})
}
