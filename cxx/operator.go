package cxx

import "github.com/teranos/bindgen/errors"

// OperatorKind enumerates overloadable C++ operators.
type OperatorKind int

const (
	OperatorConversion OperatorKind = iota
	OperatorAssignment
	OperatorAddition
	OperatorSubtraction
	OperatorUnaryPlus
	OperatorUnaryMinus
	OperatorMultiplication
	OperatorDivision
	OperatorModulo
	OperatorPrefixIncrement
	OperatorPostfixIncrement
	OperatorPrefixDecrement
	OperatorPostfixDecrement
	OperatorEqualTo
	OperatorNotEqualTo
	OperatorGreaterThan
	OperatorLessThan
	OperatorGreaterThanOrEqualTo
	OperatorLessThanOrEqualTo
	OperatorLogicalNot
	OperatorLogicalAnd
	OperatorLogicalOr
	OperatorBitwiseNot
	OperatorBitwiseAnd
	OperatorBitwiseOr
	OperatorBitwiseXor
	OperatorBitwiseLeftShift
	OperatorBitwiseRightShift
	OperatorAdditionAssignment
	OperatorSubtractionAssignment
	OperatorMultiplicationAssignment
	OperatorDivisionAssignment
	OperatorModuloAssignment
	OperatorBitwiseAndAssignment
	OperatorBitwiseOrAssignment
	OperatorBitwiseXorAssignment
	OperatorBitwiseLeftShiftAssignment
	OperatorBitwiseRightShiftAssignment
	OperatorSubscript
	OperatorIndirection
	OperatorAddressOf
	OperatorStructureDereference
	OperatorPointerToMember
	OperatorFunctionCall
	OperatorComma
	OperatorNew
	OperatorNewArray
	OperatorDelete
	OperatorDeleteArray
)

type operatorInfo struct {
	symbol string
	token  string
}

// Tokens are part of exported symbol names and must never change.
var operators = map[OperatorKind]operatorInfo{
	OperatorConversion:                  {"", "convert"},
	OperatorAssignment:                  {"=", "assign"},
	OperatorAddition:                    {"+", "add"},
	OperatorSubtraction:                 {"-", "sub"},
	OperatorUnaryPlus:                   {"+", "unary_plus"},
	OperatorUnaryMinus:                  {"-", "neg"},
	OperatorMultiplication:              {"*", "mul"},
	OperatorDivision:                    {"/", "div"},
	OperatorModulo:                      {"%", "rem"},
	OperatorPrefixIncrement:             {"++", "inc"},
	OperatorPostfixIncrement:            {"++", "inc_postfix"},
	OperatorPrefixDecrement:             {"--", "dec"},
	OperatorPostfixDecrement:            {"--", "dec_postfix"},
	OperatorEqualTo:                     {"==", "eq"},
	OperatorNotEqualTo:                  {"!=", "neq"},
	OperatorGreaterThan:                 {">", "gt"},
	OperatorLessThan:                    {"<", "lt"},
	OperatorGreaterThanOrEqualTo:        {">=", "ge"},
	OperatorLessThanOrEqualTo:           {"<=", "le"},
	OperatorLogicalNot:                  {"!", "not"},
	OperatorLogicalAnd:                  {"&&", "and"},
	OperatorLogicalOr:                   {"||", "or"},
	OperatorBitwiseNot:                  {"~", "bit_not"},
	OperatorBitwiseAnd:                  {"&", "bit_and"},
	OperatorBitwiseOr:                   {"|", "bit_or"},
	OperatorBitwiseXor:                  {"^", "bit_xor"},
	OperatorBitwiseLeftShift:            {"<<", "shl"},
	OperatorBitwiseRightShift:           {">>", "shr"},
	OperatorAdditionAssignment:          {"+=", "add_assign"},
	OperatorSubtractionAssignment:       {"-=", "sub_assign"},
	OperatorMultiplicationAssignment:    {"*=", "mul_assign"},
	OperatorDivisionAssignment:          {"/=", "div_assign"},
	OperatorModuloAssignment:            {"%=", "rem_assign"},
	OperatorBitwiseAndAssignment:        {"&=", "bit_and_assign"},
	OperatorBitwiseOrAssignment:         {"|=", "bit_or_assign"},
	OperatorBitwiseXorAssignment:        {"^=", "bit_xor_assign"},
	OperatorBitwiseLeftShiftAssignment:  {"<<=", "shl_assign"},
	OperatorBitwiseRightShiftAssignment: {">>=", "shr_assign"},
	OperatorSubscript:                   {"[]", "index"},
	OperatorIndirection:                 {"*", "indirection"},
	OperatorAddressOf:                   {"&", "address_of"},
	OperatorStructureDereference:        {"->", "struct_deref"},
	OperatorPointerToMember:             {"->*", "ptr_to_member"},
	OperatorFunctionCall:                {"()", "call"},
	OperatorComma:                       {",", "comma"},
	OperatorNew:                         {"new", "new"},
	OperatorNewArray:                    {"new[]", "new_array"},
	OperatorDelete:                      {"delete", "delete"},
	OperatorDeleteArray:                 {"delete[]", "delete_array"},
}

// Operator tags a function as an operator overload. ConversionType is set
// only for OperatorConversion.
type Operator struct {
	Kind           OperatorKind
	ConversionType *Type
}

// NewOperator returns a non-conversion operator.
func NewOperator(kind OperatorKind) *Operator {
	return &Operator{Kind: kind}
}

// NewConversionOperator returns a conversion operator to target.
func NewConversionOperator(target Type) *Operator {
	return &Operator{Kind: OperatorConversion, ConversionType: &target}
}

// IsConversion reports whether op is a conversion operator.
func (op *Operator) IsConversion() bool {
	return op != nil && op.Kind == OperatorConversion
}

// Token returns the identifier token of the operator ("gt" for >).
func (k OperatorKind) Token() (string, error) {
	info, ok := operators[k]
	if !ok {
		return "", errors.AssertionFailedf("unknown operator kind %d", int(k))
	}
	return info.token, nil
}

// Symbol returns the C++ symbol of the operator. Conversion has none.
func (k OperatorKind) Symbol() string {
	return operators[k].symbol
}

// OperatorKindByToken looks up an operator by its identifier token.
func OperatorKindByToken(token string) (OperatorKind, bool) {
	for kind, info := range operators {
		if info.token == token {
			return kind, true
		}
	}
	return 0, false
}
