package machine

type opcode int

const (
	opzero opcode = iota
	opiscoeff
	opiszero
	opclone
	opadd
	opmul
	opneg
	opsub
	opiseq
	opdeg
	opdegby
	opat
	opprint
	oppop
	opcompose
)

var opcodeByName = map[string]opcode{
	"ZERO":     opzero,
	"IS_COEFF": opiscoeff,
	"IS_ZERO":  opiszero,
	"CLONE":    opclone,
	"ADD":      opadd,
	"MUL":      opmul,
	"NEG":      opneg,
	"SUB":      opsub,
	"IS_EQ":    opiseq,
	"DEG":      opdeg,
	"DEG_BY":   opdegby,
	"AT":       opat,
	"PRINT":    opprint,
	"POP":      oppop,
	"COMPOSE":  opcompose,
}

func (op opcode) String() string {
	switch op {
	case opzero:
		return "ZERO"
	case opiscoeff:
		return "IS_COEFF"
	case opiszero:
		return "IS_ZERO"
	case opclone:
		return "CLONE"
	case opadd:
		return "ADD"
	case opmul:
		return "MUL"
	case opneg:
		return "NEG"
	case opsub:
		return "SUB"
	case opiseq:
		return "IS_EQ"
	case opdeg:
		return "DEG"
	case opdegby:
		return "DEG_BY"
	case opat:
		return "AT"
	case opprint:
		return "PRINT"
	case oppop:
		return "POP"
	case opcompose:
		return "COMPOSE"
	default:
		panic(op)
	}
}

// paramError returns the diagnostic for a malformed parameter, and false
// for instructions that take no parameter.
func (op opcode) paramError() (Kind, bool) {
	switch op {
	case opdegby:
		return DegByWrongVariable, true
	case opat:
		return AtWrongValue, true
	case opcompose:
		return ComposeWrongParameter, true
	default:
		return WrongCommand, false
	}
}

// arity returns the number of stack elements the instruction needs,
// not counting the substitutions of COMPOSE.
func (op opcode) arity() int {
	switch op {
	case opzero:
		return 0
	case opadd, opmul, opsub, opiseq:
		return 2
	default:
		return 1
	}
}
