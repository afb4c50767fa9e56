// Global object bootstrap and shared builtin helpers, ES5.1 §15.
package interp

import (
	"fmt"
	"math"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

func nan() float64    { return math.NaN() }
func posInf() float64 { return math.Inf(1) }
func negInf() float64 { return math.Inf(-1) }

// arg returns args[i], or Undefined when the call supplied fewer
// arguments than the built-in declares (ES5.1 §10.6's "missing argument
// is Undefined" rule, which every native implicitly relies on).
func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}

// toNum is ES5.1 §9.3 ToNumber, usable from a native whose only handle
// is the VM (package interp's evaluator has the richer in.toNumber, but
// a runtime.NativeFunc is a free function with no *Interpreter).
func toNum(vm *runtime.VM, v value.Value) float64 {
	h := vm.Heap
	switch {
	case value.IsNumber(v):
		return value.NumberToFloat64(v)
	case value.IsBoolean(v):
		if value.ToBool(v) {
			return 1
		}
		return 0
	case value.IsUndefined(v):
		return nan()
	case value.IsNull(v):
		return 0
	case types.IsStringValue(h, v):
		return types.ParseNumericLiteral(types.StringValue(h, v))
	default:
		prim := vm.ToPrimitive(v, "number")
		if vm.HasException() {
			return nan()
		}
		return toNum(vm, prim)
	}
}

// toStr is ES5.1 §9.8 ToString, returning an interned String Value.
func toStr(vm *runtime.VM, v value.Value) value.Value {
	h := vm.Heap
	switch {
	case types.IsStringValue(h, v):
		return v
	case types.IsObject(h, v):
		prim := vm.ToPrimitive(v, "string")
		if vm.HasException() {
			return value.Undefined
		}
		return toStr(vm, prim)
	default:
		return types.NewString(h, vm.ToDisplayString(v))
	}
}

func toGoStr(vm *runtime.VM, v value.Value) string {
	s := toStr(vm, v)
	if vm.HasException() {
		return ""
	}
	return vm.ToDisplayString(s)
}

func toInt32Arg(vm *runtime.VM, v value.Value) int32 { return value.ToInt32(toNum(vm, v)) }
func toUint32Arg(vm *runtime.VM, v value.Value) uint32 { return value.ToUint32(toNum(vm, v)) }

// method installs a non-enumerable, writable, configurable native method
// on obj, the property attributes ES5.1 §15 uses throughout for every
// built-in function property.
func method(vm *runtime.VM, obj value.Value, name string, length int, fn runtime.NativeFunc) {
	f := vm.NewNativeFunction(name, length, fn, false)
	vm.DefineOwnProp(obj, name, types.DataDescriptor(f, true, false, true), false)
}

// accessor installs a non-enumerable, configurable getter-only property,
// the shape String.prototype.length and similar derived properties use.
func accessor(vm *runtime.VM, obj value.Value, name string, getter runtime.NativeFunc) {
	g := vm.NewNativeFunction("get "+name, 0, getter, false)
	vm.DefineOwnProp(obj, name, types.AccessorDescriptorView(g, value.Undefined, false, true), false)
}

// dataConst installs a non-writable, non-enumerable, non-configurable
// value property, the attributes ES5.1 §15 gives NaN, Infinity, and
// every built-in constructor's .prototype-adjacent constants.
func dataConst(vm *runtime.VM, obj value.Value, name string, v value.Value) {
	vm.DefineOwnProp(obj, name, types.DataDescriptor(v, false, false, false), false)
}

// registerConstructor builds a Function object for a built-in
// constructor, wiring it to a prototype object built ahead of time
// (rather than the fresh Object.prototype-parented one
// VM.NewNativeFunction would auto-create), since every built-in
// prototype except Object.prototype itself needs its own [[Class]] and
// sometimes its own internal [[PrimitiveValue]] slot.
func registerConstructor(vm *runtime.VM, name string, length int, fn runtime.NativeFunc, proto value.Value) value.Value {
	idx := vm.RegisterNative(fn)
	props := types.NewHashMap(vm.Heap, 4)
	f := types.NewFunctionObject(vm.Heap, props, vm.Protos.Function, idx, true, value.Undefined, true)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "length", value.FromInt32(int32(length)), false, false, false)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "name", types.NewString(vm.Heap, name), false, false, false)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, proto, "constructor", f, true, false, true)
	types.SetFunctionPrototypeProperty(vm.Heap, vm.Strings, f, proto)
	return f
}

// globalConst installs a global binding with the attributes ES5.1 §15.1.1
// gives NaN/Infinity/undefined: immutable and invisible to for-in.
func globalConst(vm *runtime.VM, name string, v value.Value) {
	vm.DefineOwnProp(vm.GlobalObject, name, types.DataDescriptor(v, false, false, false), false)
}

// globalVar installs a global binding with the attributes every built-in
// constructor and namespace object (Math) gets: reassignable, invisible
// to for-in, deletable.
func globalVar(vm *runtime.VM, name string, v value.Value) {
	vm.DefineOwnProp(vm.GlobalObject, name, types.DataDescriptor(v, true, false, true), false)
}

// bootstrapGlobals builds Object/Function/Array/String/Boolean/Number/
// Error(+6 native subtypes)/Math per ES5.1 §15, then the global object
// itself, installing every constructor and the NaN/Infinity/undefined/
// print bindings §6 names.
func bootstrapGlobals(vm *runtime.VM) {
	h := vm.Heap

	// Object.prototype has no [[Prototype]] of its own; every other
	// prototype chains to it, so it must exist before anything else.
	objProto := types.NewObject(h, types.NewHashMap(h, 16), value.Null)
	vm.Protos.Object = objProto

	// Function.prototype is itself a (no-op) callable object.
	funcProtoIdx := vm.RegisterNative(func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		return value.Undefined
	})
	funcProto := types.NewFunctionObject(h, types.NewHashMap(h, 4), objProto, funcProtoIdx, true, value.Undefined, false)
	vm.Protos.Function = funcProto

	arrProto := types.NewArray(h, vm.Strings, objProto)
	vm.Protos.Array = arrProto

	strProto := types.NewWrapperObject(h, types.ClassString, types.NewHashMap(h, 8), objProto, types.NewString(h, ""))
	vm.Protos.String = strProto

	boolProto := types.NewWrapperObject(h, types.ClassBoolean, types.NewHashMap(h, 4), objProto, value.False)
	vm.Protos.Boolean = boolProto

	numProto := types.NewWrapperObject(h, types.ClassNumber, types.NewHashMap(h, 4), objProto, value.FromInt32(0))
	vm.Protos.Number = numProto

	errProto := types.NewErrorObject(h, types.ErrorPlain, types.NewHashMap(h, 8), objProto)
	vm.Protos.Error = errProto

	for _, subtype := range []types.ErrorSubtype{
		types.ErrorEval, types.ErrorRange, types.ErrorReference,
		types.ErrorSyntax, types.ErrorType, types.ErrorURI,
	} {
		vm.Protos.Sub[subtype] = types.NewErrorObject(h, subtype, types.NewHashMap(h, 4), errProto)
	}

	installObjectPrototype(vm, objProto)
	installFunctionPrototype(vm, funcProto)
	installArrayPrototype(vm, arrProto)
	installStringPrototype(vm, strProto)
	installNumberPrototype(vm, numProto)
	installBooleanPrototype(vm, boolProto)
	installErrorPrototype(vm, errProto, "Error")
	for name, subtype := range map[string]types.ErrorSubtype{
		"EvalError": types.ErrorEval, "RangeError": types.ErrorRange,
		"ReferenceError": types.ErrorReference, "SyntaxError": types.ErrorSyntax,
		"TypeError": types.ErrorType, "URIError": types.ErrorURI,
	} {
		installErrorPrototype(vm, vm.Protos.Sub[subtype], name)
	}

	objectCtor := registerConstructor(vm, "Object", 1, builtinObjectCall, objProto)
	installObjectStatics(vm, objectCtor)

	functionCtor := registerConstructor(vm, "Function", 1, builtinFunctionCall, funcProto)

	arrayCtor := registerConstructor(vm, "Array", 1, builtinArrayCall, arrProto)
	installArrayStatics(vm, arrayCtor)

	stringCtor := registerConstructor(vm, "String", 1, builtinStringCall, strProto)
	installStringStatics(vm, stringCtor)

	numberCtor := registerConstructor(vm, "Number", 1, builtinNumberCall, numProto)
	installNumberStatics(vm, numberCtor)

	booleanCtor := registerConstructor(vm, "Boolean", 1, builtinBooleanCall, boolProto)

	errorCtor := registerConstructor(vm, "Error", 1, builtinErrorCallFor(types.ErrorPlain, errProto), errProto)

	subCtors := map[types.ErrorSubtype]value.Value{}
	for name, subtype := range map[string]types.ErrorSubtype{
		"EvalError": types.ErrorEval, "RangeError": types.ErrorRange,
		"ReferenceError": types.ErrorReference, "SyntaxError": types.ErrorSyntax,
		"TypeError": types.ErrorType, "URIError": types.ErrorURI,
	} {
		subCtors[subtype] = registerConstructor(vm, name, 1, builtinErrorCallFor(subtype, vm.Protos.Sub[subtype]), vm.Protos.Sub[subtype])
	}

	mathObj := newMathObject(vm, objProto)

	// The global object, §15.1: NaN, Infinity and undefined are read-only
	// constants; every other built-in it carries here is a plain
	// writable/configurable/non-enumerable data property.
	vm.GlobalObject = types.NewObjectOfClass(h, types.ClassGlobalObject, types.NewHashMap(h, 32), objProto)

	globalConst(vm, "NaN", value.FromFloat64(nan()))
	globalConst(vm, "Infinity", value.FromFloat64(posInf()))
	globalConst(vm, "undefined", value.Undefined)

	globalVar(vm, "Object", objectCtor)
	globalVar(vm, "Function", functionCtor)
	globalVar(vm, "Array", arrayCtor)
	globalVar(vm, "String", stringCtor)
	globalVar(vm, "Number", numberCtor)
	globalVar(vm, "Boolean", booleanCtor)
	globalVar(vm, "Error", errorCtor)
	for name, subtype := range map[string]types.ErrorSubtype{
		"EvalError": types.ErrorEval, "RangeError": types.ErrorRange,
		"ReferenceError": types.ErrorReference, "SyntaxError": types.ErrorSyntax,
		"TypeError": types.ErrorType, "URIError": types.ErrorURI,
	} {
		globalVar(vm, name, subCtors[subtype])
	}
	globalVar(vm, "Math", mathObj)
	globalVar(vm, "print", vm.NewNativeFunction("print", 1, builtinPrint, false))
	globalVar(vm, "isNaN", vm.NewNativeFunction("isNaN", 1, builtinIsNaN, false))
	globalVar(vm, "isFinite", vm.NewNativeFunction("isFinite", 1, builtinIsFinite, false))
	globalVar(vm, "parseInt", vm.NewNativeFunction("parseInt", 2, builtinParseInt, false))
	globalVar(vm, "parseFloat", vm.NewNativeFunction("parseFloat", 1, builtinParseFloat, false))
}

// builtinPrint is this evaluator's host-facing output hook, an
// extension beyond ES5.1 proper (ES5.1 itself defines no I/O): it writes
// every argument's display string space-separated to stdout, terminated
// by a newline.
func builtinPrint(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(vm.Output, " ")
		}
		fmt.Fprint(vm.Output, vm.ToDisplayString(a))
	}
	fmt.Fprintln(vm.Output)
	return value.Undefined
}

// builtinIsNaN implements ES5.1 §15.1.2.4.
func builtinIsNaN(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	return value.FromBool(math.IsNaN(toNum(vm, arg(args, 0))))
}

// builtinIsFinite implements ES5.1 §15.1.2.5.
func builtinIsFinite(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := toNum(vm, arg(args, 0))
	return value.FromBool(!math.IsNaN(n) && !math.IsInf(n, 0))
}

// builtinParseInt implements ES5.1 §15.1.2.2, delegating the actual
// digit-scan and radix-inference to strconv via types.ParseNumericLiteral
// would be wrong (that function implements the distinct grammar of a
// NumericLiteral token, not parseInt's permissive prefix scan), so this
// walks the string by hand.
func builtinParseInt(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := trimLeadingWhitespace(toGoStr(vm, arg(args, 0)))
	radix := int(toInt32Arg(vm, arg(args, 1)))

	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if radix == 0 {
		if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			radix, s = 16, s[2:]
		} else {
			radix = 10
		}
	} else if radix == 16 && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if radix < 2 || radix > 36 {
		return value.FromFloat64(nan())
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return value.FromFloat64(nan())
	}
	var result float64
	for i := 0; i < end; i++ {
		result = result*float64(radix) + float64(digitValue(s[i]))
	}
	if neg {
		result = -result
	}
	return numberValue(result)
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 36
	}
}

func trimLeadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}
	return s[i:]
}

// builtinParseFloat implements ES5.1 §15.1.2.3 by scanning the longest
// valid prefix and handing it to strconv through the shared float64
// ToNumber path (types.ParseNumericLiteral already wants the whole
// string to be numeric, so it is unusable for parseFloat's prefix rule).
func builtinParseFloat(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := trimLeadingWhitespace(toGoStr(vm, arg(args, 0)))
	switch {
	case len(s) >= 9 && s[:9] == "+Infinity", len(s) >= 8 && s[:8] == "Infinity":
		return value.FromFloat64(posInf())
	case len(s) >= 9 && s[:9] == "-Infinity":
		return value.FromFloat64(negInf())
	}
	end := 0
	sawDigit, sawDot, sawExp := false, false, false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == 'e' || c == 'E') && sawDigit && !sawExp:
			sawExp = true
			if end+1 < len(s) && (s[end+1] == '+' || s[end+1] == '-') {
				end++
			}
		default:
			goto scanned
		}
		end++
	}
scanned:
	if !sawDigit {
		return value.FromFloat64(nan())
	}
	return value.FromFloat64(types.ParseNumericLiteral(s[:end]))
}
