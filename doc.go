/*
Package netsim provides a cycle-driven simulator for digital hardware described
as a netlist of interconnected components (logic gates, registers,
multiplexers, memories, CPU datapath blocks).

A netlist is an ordered Store of Components. Each component declares its
input ports, each bound to a named output of another component (an Input),
and the names of its own outputs. The Simulator keeps the current signal
Value of every declared output and advances the whole netlist one tick at a
time: on every Clock call, each component reads its inputs and writes its
outputs back to the shared state.

Signal values are four-state: uninitialized, unknown, don't-care or a
concrete 32 bits data word. Non-data values are never silently coerced to
zero; components must decide explicitly how to handle them.

Evaluation is a single sweep per tick. By default components are evaluated
in store order, so the order of combinational components in the store must
follow their dependencies. The WithDependencyOrder option sorts them instead.

The hwlib package provides a library of ready to use components, including
byte-addressable data and instruction memories built on the memory package.
*/
package netsim
