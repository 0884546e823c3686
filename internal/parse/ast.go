package parse

// A Node is an immutable AST node. All node types embed NodeBase, which
// implements the interface. The tree is strictly hierarchical: every node
// exclusively owns its children and the whole tree is owned by the Module
// root.
type Node interface {
	Base() NodeBase
	BasePtr() *NodeBase
}

// NodeSpan is a rune-offset range into the source, end exclusive.
type NodeSpan struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"`
}

// NodeBase carries the source position of a node: the span plus CPython-style
// line/column attributes (1-based line, 0-based column).
type NodeBase struct {
	Span      NodeSpan `json:"span"`
	Line      int32    `json:"line"`
	Column    int32    `json:"column"`
	EndLine   int32    `json:"endLine"`
	EndColumn int32    `json:"endColumn"`
}

func (base NodeBase) Base() NodeBase {
	return base
}

func (base *NodeBase) BasePtr() *NodeBase {
	return base
}

// ExprContext distinguishes loads, stores and deletions of assignable
// expressions (Name, Attribute, Subscript, Starred, List, Tuple).
type ExprContext uint8

const (
	Load ExprContext = iota
	Store
	Del
)

func (ctx ExprContext) String() string {
	switch ctx {
	case Store:
		return "Store"
	case Del:
		return "Del"
	default:
		return "Load"
	}
}

type Operator uint8

const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var operatorNames = [...]string{
	Add: "Add", Sub: "Sub", Mult: "Mult", MatMult: "MatMult", Div: "Div",
	Mod: "Mod", Pow: "Pow", LShift: "LShift", RShift: "RShift",
	BitOr: "BitOr", BitXor: "BitXor", BitAnd: "BitAnd", FloorDiv: "FloorDiv",
}

func (op Operator) String() string {
	return operatorNames[op]
}

type BoolOperator uint8

const (
	BoolAnd BoolOperator = iota
	BoolOr
)

func (op BoolOperator) String() string {
	if op == BoolAnd {
		return "And"
	}
	return "Or"
}

type UnaryOperator uint8

const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

var unaryOperatorNames = [...]string{Invert: "Invert", Not: "Not", UAdd: "UAdd", USub: "USub"}

func (op UnaryOperator) String() string {
	return unaryOperatorNames[op]
}

type CompareOperator uint8

const (
	Eq CompareOperator = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var compareOperatorNames = [...]string{
	Eq: "Eq", NotEq: "NotEq", Lt: "Lt", LtE: "LtE", Gt: "Gt", GtE: "GtE",
	Is: "Is", IsNot: "IsNot", In: "In", NotIn: "NotIn",
}

func (op CompareOperator) String() string {
	return compareOperatorNames[op]
}

// ---------------------------------------------------------------------------
// Module
// ---------------------------------------------------------------------------

type Module struct {
	NodeBase `json:"base:module"`
	Body     []Node `json:"body"`
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// FunctionDef covers both 'def' and 'async def'.
type FunctionDef struct {
	NodeBase      `json:"base:function-def"`
	Name          string     `json:"name"`
	TypeParams    []Node     `json:"typeParams"`
	Args          *Arguments `json:"args"`
	Body          []Node     `json:"body"`
	DecoratorList []Node     `json:"decoratorList"`
	Returns       Node       `json:"returns"` //can be nil
	IsAsync       bool       `json:"isAsync"`
}

type ClassDef struct {
	NodeBase      `json:"base:class-def"`
	Name          string     `json:"name"`
	TypeParams    []Node     `json:"typeParams"`
	Bases         []Node     `json:"bases"`
	Keywords      []*Keyword `json:"keywords"`
	Body          []Node     `json:"body"`
	DecoratorList []Node     `json:"decoratorList"`
}

type Return struct {
	NodeBase `json:"base:return"`
	Value    Node `json:"value"` //can be nil
}

type Delete struct {
	NodeBase `json:"base:delete"`
	Targets  []Node `json:"targets"`
}

type Assign struct {
	NodeBase `json:"base:assign"`
	Targets  []Node `json:"targets"`
	Value    Node   `json:"value"`
}

type AugAssign struct {
	NodeBase `json:"base:aug-assign"`
	Target   Node     `json:"target"`
	Op       Operator `json:"op"`
	Value    Node     `json:"value"`
}

type AnnAssign struct {
	NodeBase   `json:"base:ann-assign"`
	Target     Node `json:"target"`
	Annotation Node `json:"annotation"`
	Value      Node `json:"value"` //can be nil
	Simple     bool `json:"simple"`
}

// For covers both 'for' and 'async for'.
type For struct {
	NodeBase `json:"base:for"`
	Target   Node   `json:"target"`
	Iter     Node   `json:"iter"`
	Body     []Node `json:"body"`
	OrElse   []Node `json:"orElse"`
	IsAsync  bool   `json:"isAsync"`
}

type While struct {
	NodeBase `json:"base:while"`
	Test     Node   `json:"test"`
	Body     []Node `json:"body"`
	OrElse   []Node `json:"orElse"`
}

type If struct {
	NodeBase `json:"base:if"`
	Test     Node   `json:"test"`
	Body     []Node `json:"body"`
	OrElse   []Node `json:"orElse"`
}

// With covers both 'with' and 'async with'.
type With struct {
	NodeBase `json:"base:with"`
	Items    []*WithItem `json:"items"`
	Body     []Node      `json:"body"`
	IsAsync  bool        `json:"isAsync"`
}

type WithItem struct {
	NodeBase     `json:"base:with-item"`
	ContextExpr  Node `json:"contextExpr"`
	OptionalVars Node `json:"optionalVars"` //can be nil
}

type Match struct {
	NodeBase `json:"base:match"`
	Subject  Node         `json:"subject"`
	Cases    []*MatchCase `json:"cases"`
}

type MatchCase struct {
	NodeBase `json:"base:match-case"`
	Pattern  Node   `json:"pattern"`
	Guard    Node   `json:"guard"` //can be nil
	Body     []Node `json:"body"`
}

type Raise struct {
	NodeBase `json:"base:raise"`
	Exc      Node `json:"exc"`   //can be nil
	Cause    Node `json:"cause"` //can be nil
}

// Try covers both try/except and try/except* (ExceptStar).
type Try struct {
	NodeBase   `json:"base:try"`
	Body       []Node           `json:"body"`
	Handlers   []*ExceptHandler `json:"handlers"`
	OrElse     []Node           `json:"orElse"`
	FinalBody  []Node           `json:"finalBody"`
	ExceptStar bool             `json:"exceptStar"`
}

type ExceptHandler struct {
	NodeBase `json:"base:except-handler"`
	Type     Node   `json:"type"` //can be nil (bare except)
	Name     string `json:"name"` //empty if no 'as' clause
	Body     []Node `json:"body"`
}

type Assert struct {
	NodeBase `json:"base:assert"`
	Test     Node `json:"test"`
	Msg      Node `json:"msg"` //can be nil
}

type Import struct {
	NodeBase `json:"base:import"`
	Names    []*Alias `json:"names"`
}

type ImportFrom struct {
	NodeBase `json:"base:import-from"`
	Module   string   `json:"module"` //empty for 'from . import x'
	Names    []*Alias `json:"names"`
	Level    int32    `json:"level"` //number of leading dots
}

type Alias struct {
	NodeBase `json:"base:alias"`
	Name     string `json:"name"`
	AsName   string `json:"asName"` //empty if no 'as' clause
}

type Global struct {
	NodeBase `json:"base:global"`
	Names    []string `json:"names"`
}

type Nonlocal struct {
	NodeBase `json:"base:nonlocal"`
	Names    []string `json:"names"`
}

// ExprStmt is a bare expression used as a statement; dumps as CPython's Expr.
type ExprStmt struct {
	NodeBase `json:"base:expr-stmt"`
	Value    Node `json:"value"`
}

type Pass struct {
	NodeBase `json:"base:pass"`
}

type Break struct {
	NodeBase `json:"base:break"`
}

type Continue struct {
	NodeBase `json:"base:continue"`
}

// TypeAlias is the PEP 695 'type X[T] = value' statement.
type TypeAlias struct {
	NodeBase   `json:"base:type-alias"`
	Name       Node   `json:"name"` //always a *Name
	TypeParams []Node `json:"typeParams"`
	Value      Node   `json:"value"`
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

type BoolOp struct {
	NodeBase `json:"base:bool-op"`
	Op       BoolOperator `json:"op"`
	Values   []Node       `json:"values"`
}

type NamedExpr struct {
	NodeBase `json:"base:named-expr"`
	Target   Node `json:"target"` //always a *Name with Store context
	Value    Node `json:"value"`
}

type BinOp struct {
	NodeBase `json:"base:bin-op"`
	Left     Node     `json:"left"`
	Op       Operator `json:"op"`
	Right    Node     `json:"right"`
}

type UnaryOp struct {
	NodeBase `json:"base:unary-op"`
	Op       UnaryOperator `json:"op"`
	Operand  Node          `json:"operand"`
}

type Lambda struct {
	NodeBase `json:"base:lambda"`
	Args     *Arguments `json:"args"`
	Body     Node       `json:"body"`
}

type IfExp struct {
	NodeBase `json:"base:if-exp"`
	Test     Node `json:"test"`
	Body     Node `json:"body"`
	OrElse   Node `json:"orElse"`
}

type Dict struct {
	NodeBase `json:"base:dict"`
	//Keys[i] is nil for a '**mapping' expansion
	Keys   []Node `json:"keys"`
	Values []Node `json:"values"`
}

type Set struct {
	NodeBase `json:"base:set"`
	Elts     []Node `json:"elts"`
}

type ListComp struct {
	NodeBase   `json:"base:list-comp"`
	Elt        Node             `json:"elt"`
	Generators []*Comprehension `json:"generators"`
}

type SetComp struct {
	NodeBase   `json:"base:set-comp"`
	Elt        Node             `json:"elt"`
	Generators []*Comprehension `json:"generators"`
}

type DictComp struct {
	NodeBase   `json:"base:dict-comp"`
	Key        Node             `json:"key"`
	Value      Node             `json:"value"`
	Generators []*Comprehension `json:"generators"`
}

type GeneratorExp struct {
	NodeBase   `json:"base:generator-exp"`
	Elt        Node             `json:"elt"`
	Generators []*Comprehension `json:"generators"`
}

type Comprehension struct {
	NodeBase `json:"base:comprehension"`
	Target   Node   `json:"target"`
	Iter     Node   `json:"iter"`
	Ifs      []Node `json:"ifs"`
	IsAsync  bool   `json:"isAsync"`
}

type Await struct {
	NodeBase `json:"base:await"`
	Value    Node `json:"value"`
}

type Yield struct {
	NodeBase `json:"base:yield"`
	Value    Node `json:"value"` //can be nil
}

type YieldFrom struct {
	NodeBase `json:"base:yield-from"`
	Value    Node `json:"value"`
}

// Compare holds a full comparison chain: '0 < x < 10' is one Compare with
// two operators and two comparators.
type Compare struct {
	NodeBase    `json:"base:compare"`
	Left        Node              `json:"left"`
	Ops         []CompareOperator `json:"ops"`
	Comparators []Node            `json:"comparators"`
}

type Call struct {
	NodeBase `json:"base:call"`
	Func     Node       `json:"func"`
	Args     []Node     `json:"args"`
	Keywords []*Keyword `json:"keywords"`
}

type Keyword struct {
	NodeBase `json:"base:keyword"`
	Arg      string `json:"arg"` //empty for '**kwargs' expansion
	Value    Node   `json:"value"`
}

// FormattedValue is one replacement field of an f-string.
type FormattedValue struct {
	NodeBase `json:"base:formatted-value"`
	Value    Node `json:"value"`
	//-1 for no conversion, otherwise 's', 'r' or 'a'
	Conversion int32 `json:"conversion"`
	FormatSpec Node  `json:"formatSpec"` //nil or a *JoinedStr
}

type JoinedStr struct {
	NodeBase `json:"base:joined-str"`
	Values   []Node `json:"values"`
}

type ConstantKind uint8

const (
	ConstNone ConstantKind = iota
	ConstTrue
	ConstFalse
	ConstEllipsis
	ConstInt
	//ConstBigInt holds integer literals that overflow int64; the digits are
	//kept as text, range validation is out of scope
	ConstBigInt
	ConstFloat
	ConstComplex
	ConstStr
)

var constantKindNames = [...]string{
	ConstNone: "None", ConstTrue: "True", ConstFalse: "False",
	ConstEllipsis: "Ellipsis", ConstInt: "Int", ConstBigInt: "BigInt",
	ConstFloat: "Float", ConstComplex: "Complex", ConstStr: "Str",
}

func (k ConstantKind) String() string {
	return constantKindNames[k]
}

type Constant struct {
	NodeBase `json:"base:constant"`
	Kind     ConstantKind `json:"kind"`
	Int      int64        `json:"int,omitempty"`
	Float    float64      `json:"float,omitempty"`
	//Str holds the decoded string value, the digits of a ConstBigInt, or the
	//normalized text of a ConstComplex
	Str string `json:"str,omitempty"`
}

type Attribute struct {
	NodeBase `json:"base:attribute"`
	Value    Node        `json:"value"`
	Attr     string      `json:"attr"`
	Ctx      ExprContext `json:"ctx"`
}

type Subscript struct {
	NodeBase `json:"base:subscript"`
	Value    Node        `json:"value"`
	Slice    Node        `json:"slice"`
	Ctx      ExprContext `json:"ctx"`
}

type Starred struct {
	NodeBase `json:"base:starred"`
	Value    Node        `json:"value"`
	Ctx      ExprContext `json:"ctx"`
}

type Name struct {
	NodeBase `json:"base:name"`
	Id       string      `json:"id"`
	Ctx      ExprContext `json:"ctx"`
}

type List struct {
	NodeBase `json:"base:list"`
	Elts     []Node      `json:"elts"`
	Ctx      ExprContext `json:"ctx"`
}

type Tuple struct {
	NodeBase `json:"base:tuple"`
	Elts     []Node      `json:"elts"`
	Ctx      ExprContext `json:"ctx"`
}

type Slice struct {
	NodeBase `json:"base:slice"`
	Lower    Node `json:"lower"` //can be nil
	Upper    Node `json:"upper"` //can be nil
	Step     Node `json:"step"`  //can be nil
}

// ---------------------------------------------------------------------------
// Function parameters
// ---------------------------------------------------------------------------

type Arguments struct {
	NodeBase    `json:"base:arguments"`
	PosOnlyArgs []*Arg `json:"posOnlyArgs"`
	Args        []*Arg `json:"args"`
	VarArg      *Arg   `json:"varArg"` //can be nil
	KwOnlyArgs  []*Arg `json:"kwOnlyArgs"`
	//KwDefaults[i] is the default of KwOnlyArgs[i], nil when absent
	KwDefaults []Node `json:"kwDefaults"`
	KwArg      *Arg   `json:"kwArg"` //can be nil
	//Defaults align with the tail of PosOnlyArgs + Args
	Defaults []Node `json:"defaults"`
}

type Arg struct {
	NodeBase   `json:"base:arg"`
	Name       string `json:"name"`
	Annotation Node   `json:"annotation"` //can be nil
}

// ---------------------------------------------------------------------------
// Match patterns
// ---------------------------------------------------------------------------

type MatchValue struct {
	NodeBase `json:"base:match-value"`
	Value    Node `json:"value"`
}

type MatchSingleton struct {
	NodeBase `json:"base:match-singleton"`
	//ConstNone, ConstTrue or ConstFalse
	Value ConstantKind `json:"value"`
}

type MatchSequence struct {
	NodeBase `json:"base:match-sequence"`
	Patterns []Node `json:"patterns"`
}

type MatchMapping struct {
	NodeBase `json:"base:match-mapping"`
	Keys     []Node `json:"keys"`
	Patterns []Node `json:"patterns"`
	Rest     string `json:"rest"` //'**rest' capture, empty when absent
}

type MatchClass struct {
	NodeBase    `json:"base:match-class"`
	Cls         Node     `json:"cls"`
	Patterns    []Node   `json:"patterns"`
	KwdAttrs    []string `json:"kwdAttrs"`
	KwdPatterns []Node   `json:"kwdPatterns"`
}

type MatchStar struct {
	NodeBase `json:"base:match-star"`
	Name     string `json:"name"` //empty for '*_'
}

type MatchAs struct {
	NodeBase `json:"base:match-as"`
	Pattern  Node   `json:"pattern"` //nil for a bare capture or wildcard
	Name     string `json:"name"`    //empty for '_'
}

type MatchOr struct {
	NodeBase `json:"base:match-or"`
	Patterns []Node `json:"patterns"`
}

// ---------------------------------------------------------------------------
// Type parameters (PEP 695)
// ---------------------------------------------------------------------------

type TypeVar struct {
	NodeBase `json:"base:type-var"`
	Name     string `json:"name"`
	Bound    Node   `json:"bound"`   //can be nil
	Default  Node   `json:"default"` //can be nil
}

type ParamSpec struct {
	NodeBase `json:"base:param-spec"`
	Name     string `json:"name"`
	Default  Node   `json:"default"` //can be nil
}

type TypeVarTuple struct {
	NodeBase `json:"base:type-var-tuple"`
	Name     string `json:"name"`
	Default  Node   `json:"default"` //can be nil
}
