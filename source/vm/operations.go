package vm

import "strconv"

func makeOp(oc opcode, args ...uint32) *Operation {
	return &Operation{Opcode: oc, Args: args}
}

// An operation's arguments are decided when the program is assembled: labels are already
// program counters and literals are already indices into the constant pool.
type Operation struct {
	Opcode opcode
	Args   []uint32
}

type opcode uint8

const (
	labl opcode = iota // Label lines occupy a slot and do nothing.
	cnst               // const
	accs               // env index
	clos               // loc
	clss               // loc, loc, ...
	focs               // index
	appl
	apln
	retn
	addi
	subi
	muli
	equi
	brfl // loc
	jmp  // loc
	halt
)

type argKind int

const (
	argNone   argKind = iota
	argConst          // a literal, stored in the constant pool
	argEnv            // $n
	argLabel          // a single label
	argLabels         // one or more labels
	argIndex          // a positive integer
)

type opSpec struct {
	oc    opcode
	arg   argKind
	arity int // How many values the operation takes from the stack.
}

var OPCODES = map[string]opSpec{
	"const":    {cnst, argConst, 0},
	"access":   {accs, argEnv, 0},
	"closure":  {clos, argLabel, 0},
	"closures": {clss, argLabels, 0},
	"focus":    {focs, argIndex, 1},
	"apply":    {appl, argNone, 2},
	"applyn":   {apln, argNone, 2},
	"return":   {retn, argNone, 3},
	"add":      {addi, argNone, 2},
	"sub":      {subi, argNone, 2},
	"mul":      {muli, argNone, 2},
	"eq":       {equi, argNone, 2},
	"brfl":     {brfl, argLabel, 1},
	"br":       {jmp, argLabel, 0},
	"halt":     {halt, argNone, 1},
}

var mnemonics = func() map[opcode]string {
	result := map[opcode]string{labl: "label"}
	for k, v := range OPCODES {
		result[v.oc] = k
	}
	return result
}()

var arities = func() map[opcode]int {
	result := map[opcode]int{labl: 0}
	for _, v := range OPCODES {
		result[v.oc] = v.arity
	}
	return result
}()

func (op *Operation) Mnemonic() string {
	if m, ok := mnemonics[op.Opcode]; ok {
		return m
	}
	return "op" + strconv.Itoa(int(op.Opcode))
}

func (op *Operation) arity() int {
	return arities[op.Opcode]
}

func (op *Operation) ppLoc(i int) string {
	return " @" + strconv.Itoa(int(op.Args[i]))
}

func (op *Operation) ppEnv(i int) string {
	return " $" + strconv.Itoa(int(op.Args[i]))
}

func (op *Operation) ppConst(i int) string {
	return " c" + strconv.Itoa(int(op.Args[i]))
}

func describe(op *Operation) string {
	switch op.Opcode {
	case labl:
		return "labl"
	case cnst:
		return "cnst" + op.ppConst(0)
	case accs:
		return "accs" + op.ppEnv(0)
	case clos:
		return "clos" + op.ppLoc(0)
	case clss:
		result := "clss"
		for i := range op.Args {
			result = result + op.ppLoc(i)
		}
		return result
	case focs:
		return "focs " + strconv.Itoa(int(op.Args[0]))
	case appl:
		return "appl"
	case apln:
		return "apln"
	case retn:
		return "retn"
	case addi:
		return "addi"
	case subi:
		return "subi"
	case muli:
		return "muli"
	case equi:
		return "equi"
	case brfl:
		return "brfl" + op.ppLoc(0)
	case jmp:
		return "jmp" + op.ppLoc(0)
	case halt:
		return "halt"
	}
	return "indescribable thing"
}
