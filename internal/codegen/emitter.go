package codegen

import "fmt"

// Segment names the register a Location is addressed from.
type Segment int

const (
	FPRelative Segment = iota // frame pointer: params, locals, temporaries
	GPRelative                // global pointer: globals
)

func (s Segment) String() string {
	switch s {
	case FPRelative:
		return "fp"
	case GPRelative:
		return "gp"
	}
	return fmt.Sprintf("Segment(%d)", int(s))
}

// Location is a one-word memory slot holding a variable or a temporary.
// Locations are compared by identity.
type Location struct {
	Name    string
	Segment Segment
	Offset  int
}

func (l *Location) String() string {
	return l.Name
}

// Emitter receives the abstract instructions of a program in execution
// order. Methods that produce a value return the temporary holding it;
// where the value is optional (calls) a nil Location means none.
//
// The driver never allocates temporaries itself. An Emitter places them
// in the current frame below the locals and accounts for them in the
// frame size given to BeginFunc.
type Emitter interface {
	LoadConstant(v int) *Location
	LoadDouble(v float64) *Location
	LoadString(s string) *Location
	LoadLabel(label string) *Location

	// Assign copies src into dst.
	Assign(dst, src *Location)

	// Load reads the word at ref+offset.
	Load(ref *Location, offset int) *Location

	// Store writes val to the word at ref+offset.
	Store(ref *Location, offset int, val *Location)

	// BinaryOp applies one of + - * / % < == && || to x and y.
	BinaryOp(op string, x, y *Location) *Location

	Label(label string)
	NewLabel() string
	IfZ(test *Location, label string)
	Goto(label string)

	// BeginFunc opens the routine label whose locals take frameSize
	// bytes. EndFunc closes it.
	BeginFunc(label string, frameSize int)
	EndFunc()

	// Return leaves the routine, with val as result unless nil.
	Return(val *Location)

	PushParam(v *Location)
	PopParams(bytes int)
	LCall(label string, hasResult bool) *Location
	ACall(addr *Location, hasResult bool) *Location

	// Builtin calls a runtime routine named in rtabi.
	Builtin(name string, args ...*Location) *Location

	// VTable declares the dispatch table of class.
	VTable(class string, labels []string)
}
