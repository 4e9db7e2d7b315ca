/*
Package ort implements a bidirectional codec for ORT, a line-oriented,
human-editable structured-data interchange format that mixes CSV-like
tabular records with nested-object and array literals.

A document is a sequence of sections. Each section starts with a header
line declaring an optional name and a comma-separated field list, and is
followed by data lines holding one positional record each:

	people:name,addr(street,city):
	Alice,(Main St,NYC)
	Bob,(2nd Ave,LA)

	tags:
	[a,b,c]

Parse turns a document into a Value, a tagged union over null, boolean,
number, string, array, and object with ordered keys:

	v, err := ort.Parse(data)
	if err != nil {
		// *ort.ParseError carries the line number and raw line
	}
	people, _ := v.Get("people")

Generate is the inverse: it renders a Value back to canonical ORT text,
choosing per array between the tabular form (a field header plus one
row per element, picked when all elements are objects with one shared
key set) and the bracketed literal form:

	text := ort.Generate(v)

Values can also be built from native Go data with FromNative, NewObject
and friends, mutated through Get, Set, Index and SetIndex, and bridged
to JSON with ToJSON and FromJSON. Both parse and generate are pure,
synchronous transformations over in-memory buffers: concurrent calls
need no coordination as long as each call owns its input and result.

Comments (# lines) and blank lines are skipped during parsing and are
not preserved across a round trip; only the semantic value is.
*/
package ort
