// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseInput parses an input reference of the form "id.field". The field
// may be a bus element like "out[2]". Only the first dot separates the
// producer id from the field name.
//
func ParseInput(s string) (Input, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return Input{}, errors.Errorf("invalid input reference %q: expected id.field", s)
	}
	return Input{ID: s[:i], Field: s[i+1:]}, nil
}

// A Connection binds an input port to an Input.
//
type Connection struct {
	PortID string
	Input  Input
}

// ParseConnections parses a connection description string of the form
//
//	port=id.field, port2=id2.field
//
// Bus ranges are expanded on both sides:
//
//	in[0..1]=c.out[0..1] // in[0]=c.out[0], in[1]=c.out[1]
//	in[0..1]=c.out       // in[0]=c.out, in[1]=c.out
//
func ParseConnections(s string) ([]Connection, error) {
	var conns []Connection
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		eq := strings.IndexByte(item, '=')
		if eq < 0 {
			return nil, errors.Errorf("invalid connection %q: missing '='", item)
		}
		port, ref := strings.TrimSpace(item[:eq]), strings.TrimSpace(item[eq+1:])
		if port == "" {
			return nil, errors.Errorf("invalid connection %q: empty port name", item)
		}
		in, err := ParseInput(ref)
		if err != nil {
			return nil, err
		}
		ps, err := expandRange(port)
		if err != nil {
			return nil, errors.Wrap(err, "expand port "+port)
		}
		fs, err := expandRange(in.Field)
		if err != nil {
			return nil, errors.Wrap(err, "expand field "+in.Field)
		}
		switch {
		case len(ps) == len(fs):
			for i := range ps {
				conns = append(conns, Connection{ps[i], Input{in.ID, fs[i]}})
			}
		case len(fs) == 1:
			for _, p := range ps {
				conns = append(conns, Connection{p, in})
			}
		default:
			return nil, errors.New("pin count mismatch in connection: " + item)
		}
	}
	return conns, nil
}

// Connect rebinds the input ports of c according to the connection description conns.
// See ParseConnections for the syntax.
//
func Connect(c Component, conns string) error {
	cs, err := ParseConnections(conns)
	if err != nil {
		return err
	}
	id, _ := c.IDPorts()
	for _, cn := range cs {
		if err = c.SetIDPort(cn.PortID, cn.Input); err != nil {
			return errors.Wrap(err, id)
		}
	}
	return nil
}

func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("invalid bus range %d..%d", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusName(bus, i))
	}
	return r, nil
}
