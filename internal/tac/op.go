// Package tac implements a three-address code representation of Decaf
// programs: an emitter recording codegen output, a printer for the
// textual form and a structural verifier.
package tac

// Op is a TAC operation code.
type Op int

const (
	OpInvalid Op = iota

	// Loads of constants; Dst is a fresh temporary.
	OpLoadConst  // Int = value
	OpLoadDouble // Float = value
	OpLoadString // Str = value
	OpLoadLabel  // Label = label

	// Data movement
	OpAssign // Dst = Args[0]
	OpLoad   // Dst = *(Args[0] + Int)
	OpStore  // *(Args[0] + Int) = Args[1]
	OpBinary // Dst = Args[0] Str Args[1]

	// Control
	OpLabel // Label
	OpGoto  // Label
	OpIfZ   // Args[0], Label

	// Routines
	OpBeginFunc // Label, Int = frame size
	OpEndFunc
	OpReturn    // Args[0] if any
	OpPushParam // Args[0]
	OpPopParams // Int = bytes
	OpLCall     // Label; Dst if the callee has a result
	OpACall     // Args[0] = address; Dst if the callee has a result

	// Data
	OpVTable // Label = class, Labels = entries

	opCount
)

// OpInfo holds metadata about a TAC operation.
type OpInfo struct {
	Name     string
	IsBranch bool // refers to a label in its routine
	Global   bool // appears outside routines
}

var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "Invalid"},

	OpLoadConst:  {Name: "LoadConst"},
	OpLoadDouble: {Name: "LoadDouble"},
	OpLoadString: {Name: "LoadString"},
	OpLoadLabel:  {Name: "LoadLabel"},

	OpAssign: {Name: "Assign"},
	OpLoad:   {Name: "Load"},
	OpStore:  {Name: "Store"},
	OpBinary: {Name: "Binary"},

	OpLabel: {Name: "Label"},
	OpGoto:  {Name: "Goto", IsBranch: true},
	OpIfZ:   {Name: "IfZ", IsBranch: true},

	OpBeginFunc: {Name: "BeginFunc", Global: true},
	OpEndFunc:   {Name: "EndFunc"},
	OpReturn:    {Name: "Return"},
	OpPushParam: {Name: "PushParam"},
	OpPopParams: {Name: "PopParams"},
	OpLCall:     {Name: "LCall"},
	OpACall:     {Name: "ACall"},

	OpVTable: {Name: "VTable", Global: true},
}

// String returns the name of the op.
func (o Op) String() string {
	return o.Info().Name
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsBranch reports whether the op transfers control to a label.
func (o Op) IsBranch() bool {
	return o.Info().IsBranch
}
