package rtabi

// Runtime routine labels (must match the runtime library)
const (
	FnAlloc       = "_Alloc"
	FnReadLine    = "_ReadLine"
	FnReadInteger = "_ReadInteger"
	FnStringEqual = "_StringEqual"
	FnPrintInt    = "_PrintInt"
	FnPrintString = "_PrintString"
	FnPrintBool   = "_PrintBool"
	FnHalt        = "_Halt"
)

// User program entry point
const (
	// EntryName is the name of the routine where execution starts.
	// Its label is not mangled.
	EntryName = "main"
)

// Runtime error messages printed before halting
const (
	ErrArrayOutOfBounds = "Decaf runtime error: Array subscript out of bounds\n"
	ErrArrayBadSize     = "Decaf runtime error: Array size is <= 0\n"
)

// FuncSignature describes a runtime routine for code generation.
type FuncSignature struct {
	Name      string // routine label
	NumArgs   int    // number of one-word arguments
	HasResult bool   // whether the routine produces a value
	NoReturn  bool   // whether the routine never returns
}

// RuntimeFunctions returns the signatures of all runtime routines.
func RuntimeFunctions() []FuncSignature {
	return []FuncSignature{
		{Name: FnAlloc, NumArgs: 1, HasResult: true},
		{Name: FnReadLine, NumArgs: 0, HasResult: true},
		{Name: FnReadInteger, NumArgs: 0, HasResult: true},
		{Name: FnStringEqual, NumArgs: 2, HasResult: true},
		{Name: FnPrintInt, NumArgs: 1},
		{Name: FnPrintString, NumArgs: 1},
		{Name: FnPrintBool, NumArgs: 1},
		{Name: FnHalt, NumArgs: 0, NoReturn: true},
	}
}

// LookupSignature returns the signature of the runtime routine name.
func LookupSignature(name string) (FuncSignature, bool) {
	for _, sig := range RuntimeFunctions() {
		if sig.Name == name {
			return sig, true
		}
	}
	return FuncSignature{}, false
}
