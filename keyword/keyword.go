// Package keyword reserves the identifiers of the reserved words of the
// source language.
//
// Reserve must run on an empty interner: keywords then own the identifiers
// 0 to Count-1 and a scanner recognises a keyword by its identifier alone.
// Two internal names that no source text can spell follow the keywords.
package keyword

import (
	"fmt"

	"github.com/robinvdvleuten/sintern/intern"
)

// Keyword identifiers, in reservation order.
const (
	Abs intern.ID = iota
	Access
	After
	Alias
	All
	And
	Architecture
	Array
	Begin
	Block
	Body
	Case
	Component
	Constant
	Else
	Elsif
	End
	Entity
	Exit
	For
	Function
	Generic
	If
	In
	Is
	Library
	Loop
	Map
	Not
	Null
	Of
	Or
	Others
	Out
	Package
	Port
	Procedure
	Process
	Range
	Record
	Return
	Signal
	Then
	To
	Type
	Use
	Variable
	Wait
	When
	While
	With

	// Count is the number of keywords.
	Count = iota
)

// Internal names, allocated right after the keywords.
const (
	Anonymous intern.ID = Count + iota
	Error

	// Last is the highest reserved identifier.
	Last = Error
)

// Spellings carry their own terminator so they can be registered without
// being copied into the arena.
var spellings = [Count]string{
	"abs\x00", "access\x00", "after\x00", "alias\x00", "all\x00", "and\x00",
	"architecture\x00", "array\x00", "begin\x00", "block\x00", "body\x00",
	"case\x00", "component\x00", "constant\x00", "else\x00", "elsif\x00",
	"end\x00", "entity\x00", "exit\x00", "for\x00", "function\x00",
	"generic\x00", "if\x00", "in\x00", "is\x00", "library\x00", "loop\x00",
	"map\x00", "not\x00", "null\x00", "of\x00", "or\x00", "others\x00",
	"out\x00", "package\x00", "port\x00", "procedure\x00", "process\x00",
	"range\x00", "record\x00", "return\x00", "signal\x00", "then\x00",
	"to\x00", "type\x00", "use\x00", "variable\x00", "wait\x00", "when\x00",
	"while\x00", "with\x00",
}

var internal = [...]string{
	Anonymous - Count: "<anonymous>",
	Error - Count:     "<error>",
}

// Reserve registers every keyword and internal name in in. It panics if in
// already holds identifiers.
func Reserve(in *intern.Interner) {
	if n := in.Len(); n != 0 {
		panic(fmt.Sprintf("keyword: Reserve needs an empty interner, got %d identifiers", n))
	}

	for i, s := range spellings {
		if id := in.InternStatic(s[:len(s)-1]); id != intern.ID(i) {
			panic(fmt.Sprintf("keyword: %q reserved as %d, want %d", s[:len(s)-1], id, i))
		}
	}

	// Internal names must never be found by ordinary interning: an
	// identifier named "<error>" would otherwise alias a real declaration.
	for _, s := range internal {
		in.InternExtra(s)
	}
}

// IsKeyword reports whether id is a reserved word.
func IsKeyword(id intern.ID) bool {
	return id < Count
}

// IsReserved reports whether id was allocated by Reserve.
func IsReserved(id intern.ID) bool {
	return id <= Last
}

// Name returns the spelling of a reserved identifier without needing the
// interner. It panics if id is not reserved.
func Name(id intern.ID) string {
	switch {
	case id < Count:
		s := spellings[id]
		return s[:len(s)-1]
	case id <= Last:
		return internal[id-Count]
	default:
		panic(fmt.Sprintf("keyword: identifier %d is not reserved", id))
	}
}
