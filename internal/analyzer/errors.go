package analyzer

// Diagnostic codes (§7 error taxonomy). Stable strings so the development
// server and any downstream tooling can switch on them.
const (
	codeInvalidExpression = "E0100"
	codeInvalidOperation  = "E0101"

	codeUndefinedSymbol = "E0200"
	codeDuplicateSymbol = "E0201"
	codeNotCallable     = "E0202"

	codeTypeMismatch         = "E0300"
	codeTypeInferenceFailed  = "E0301"
	codeInvalidType          = "E0302"
	codeInvalidCast          = "E0303"
	codeUnknownField         = "E0304"
	codeMissingField         = "E0305"
	codeDuplicateField       = "E0306"
	codeNonExhaustiveMatch   = "E0307"
	codeWrongAwaitOperand    = "E0308"
	codeBreakOutsideLoop     = "E0309"
	codeContinueOutsideLoop  = "E0310"
	codeReturnTypeMismatch   = "E0311"

	codeInvalidArguments = "E0400"

	codeUnsafeOperation = "E0500"

	codeImmutableAssignment = "E0600"

	codeDivisionByZero      = "E0700"
	codeNonConstantArraySize = "E0701"
	codeNonPositiveArraySize = "E0702"
	codeConstOverflow        = "E0703"

	codeUnknownAnnotation    = "E0801"
	codeAnnotationContext    = "E0802"
	codeAnnotationConflict   = "E0803"
	codeAnnotationDuplicate  = "E0804"
	codeAnnotationCategory   = "E0805"
	codeAnnotationParam      = "E0806"

	codeWarnUnusedVariable = "W0900"

	codeInternal = "E0999"
)
