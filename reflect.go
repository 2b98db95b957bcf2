// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var inputType = reflect.TypeOf(Input{})

// portField describes a struct field holding one or more input ports.
type portField struct {
	index int
	name  string
	bus   bool
}

func portFields(typ reflect.Type) []portField {
	var fs []portField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("sim")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		if tv[0] != "in" {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		name := strings.ToLower(f.Name)
		if len(tv) > 1 && tv[1] != "" {
			name = tv[1]
		}
		switch {
		case f.Type == inputType:
			fs = append(fs, portField{i, name, false})
		case f.Type.Kind() == reflect.Slice && f.Type.Elem() == inputType:
			fs = append(fs, portField{i, name, true})
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
	}
	return fs
}

func structValue(c interface{}) reflect.Value {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if k := v.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, v.Type().Name()))
	}
	return v
}

// InputPortsOf returns the input ports of c, which must be a struct or a
// pointer to a struct. Input ports are identified by field tags.
//
// The field tag must be `sim:"in"`. By default, the port name is the field
// name in lowercase. A specific port name can be forced by adding it in the
// tag: `sim:"in,port_name"`.
//
// Fields must be of type Input or []Input. Slices are expanded as buses:
// a field In []Input with 2 elements yields ports in[0] and in[1].
//
func InputPortsOf(c interface{}) []InputPort {
	v := structValue(c)
	var ps []InputPort
	for _, f := range portFields(v.Type()) {
		fv := v.Field(f.index)
		if !f.bus {
			ps = append(ps, InputPort{PortID: f.name, Input: fv.Interface().(Input)})
			continue
		}
		for i := 0; i < fv.Len(); i++ {
			ps = append(ps, InputPort{PortID: BusName(f.name, i), Input: fv.Index(i).Interface().(Input)})
		}
	}
	return ps
}

// SetInputPort rebinds the input port portID of c to in. c must be a pointer
// to a struct with tagged input fields (see InputPortsOf).
//
func SetInputPort(c interface{}, portID string, in Input) error {
	if reflect.ValueOf(c).Kind() != reflect.Ptr {
		return errors.Errorf("cannot set port %q on non-pointer %T", portID, c)
	}
	v := structValue(c)
	name, idx := portID, -1
	if i := strings.IndexByte(portID, '['); i > 0 && strings.HasSuffix(portID, "]") {
		n, err := strconv.Atoi(portID[i+1 : len(portID)-1])
		if err == nil {
			name, idx = portID[:i], n
		}
	}
	for _, f := range portFields(v.Type()) {
		fv := v.Field(f.index)
		switch {
		case !f.bus && f.name == portID:
			fv.Set(reflect.ValueOf(in))
			return nil
		case f.bus && f.name == name && idx >= 0:
			if idx >= fv.Len() {
				return errors.Errorf("port %q out of range", portID)
			}
			fv.Index(idx).Set(reflect.ValueOf(in))
			return nil
		}
	}
	return errors.Errorf("unknown port %q", portID)
}
