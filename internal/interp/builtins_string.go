// The String constructor and String.prototype, ES5.1 §15.5.
package interp

import (
	"strings"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinStringCall implements ES5.1 §15.5.1/§15.5.2: called as a
// function it's ToString; under `new`, constructHook passes a freshly
// allocated plain object as `this` (always an object, whereas a direct
// call's `this` is Undefined per evalCallExpression's no-base-reference
// case), which this body takes as the signal to build a String wrapper
// instead of returning the bare primitive.
func builtinStringCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := types.NewString(vm.Heap, "")
	if len(args) > 0 {
		s = toStr(vm, args[0])
		if vm.HasException() {
			return value.Undefined
		}
	}
	if types.IsObject(vm.Heap, this) {
		return types.NewWrapperObject(vm.Heap, types.ClassString, types.NewHashMap(vm.Heap, 4), vm.Protos.String, s)
	}
	return s
}

func installStringStatics(vm *runtime.VM, ctor value.Value) {
	method(vm, ctor, "fromCharCode", 1, builtinStringFromCharCode)
}

// builtinStringFromCharCode implements ES5.1 §15.5.3.2.
func builtinStringFromCharCode(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	units := make([]uint16, len(args))
	for i, a := range args {
		units[i] = value.ToUint16(toNum(vm, a))
	}
	return types.NewString(vm.Heap, utf16ToGoString(units))
}

func utf16ToGoString(units []uint16) string {
	runes := make([]rune, 0, len(units))
	for _, u := range units {
		runes = append(runes, rune(u))
	}
	return string(runes)
}

// thisStringValue implements ES5.1 §15.5.4's CHECK_OBJECT_COERCIBLE plus
// this-value extraction shared by every String.prototype method: a
// primitive string passes through, a String wrapper object yields its
// [[PrimitiveValue]], anything else is a TypeError.
func thisStringValue(vm *runtime.VM, this value.Value) string {
	h := vm.Heap
	switch {
	case types.IsStringValue(h, this):
		return types.StringValue(h, this)
	case types.IsObject(h, this) && types.Class(h, this) == types.ClassString:
		return types.StringValue(h, types.PrimitiveValue(h, this))
	default:
		vm.ThrowTypeError("String.prototype method called on incompatible receiver")
		return ""
	}
}

func installStringPrototype(vm *runtime.VM, proto value.Value) {
	accessor(vm, proto, "length", builtinStringLength)
	method(vm, proto, "toString", 0, builtinStringToString)
	method(vm, proto, "valueOf", 0, builtinStringToString)
	method(vm, proto, "charAt", 1, builtinStringCharAt)
	method(vm, proto, "charCodeAt", 1, builtinStringCharCodeAt)
	method(vm, proto, "indexOf", 1, builtinStringIndexOf)
	method(vm, proto, "lastIndexOf", 1, builtinStringLastIndexOf)
	method(vm, proto, "slice", 2, builtinStringSlice)
	method(vm, proto, "substring", 2, builtinStringSubstring)
	method(vm, proto, "toUpperCase", 0, builtinStringToUpperCase)
	method(vm, proto, "toLowerCase", 0, builtinStringToLowerCase)
	method(vm, proto, "split", 2, builtinStringSplit)
	method(vm, proto, "concat", 1, builtinStringConcat)
	method(vm, proto, "replace", 2, builtinStringReplace)
	method(vm, proto, "trim", 0, builtinStringTrim)
}

func builtinStringLength(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return value.FromInt32(int32(len([]rune(s))))
}

func builtinStringToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return types.NewString(vm.Heap, s)
}

// builtinStringCharAt implements ES5.1 §15.5.4.4.
func builtinStringCharAt(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := []rune(thisStringValue(vm, this))
	if vm.HasException() {
		return value.Undefined
	}
	i := int(value.ToInteger(toNum(vm, arg(args, 0))))
	if i < 0 || i >= len(s) {
		return types.NewString(vm.Heap, "")
	}
	return types.NewString(vm.Heap, string(s[i]))
}

// builtinStringCharCodeAt implements ES5.1 §15.5.4.5.
func builtinStringCharCodeAt(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := []rune(thisStringValue(vm, this))
	if vm.HasException() {
		return value.Undefined
	}
	i := int(value.ToInteger(toNum(vm, arg(args, 0))))
	if i < 0 || i >= len(s) {
		return value.FromFloat64(nan())
	}
	return value.FromInt32(int32(s[i]))
}

// builtinStringIndexOf implements ES5.1 §15.5.4.7, indexing by rune
// (Unicode code point) position like every other String.prototype method
// here; a character outside the Basic Multilingual Plane counts as one
// position, not as two UTF-16 code units.
func builtinStringIndexOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := []rune(thisStringValue(vm, this))
	if vm.HasException() {
		return value.Undefined
	}
	search := []rune(toGoStr(vm, arg(args, 0)))
	start := 0
	if len(args) > 1 {
		start = int(value.ToInteger(toNum(vm, args[1])))
	}
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	for i := start; i+len(search) <= len(s); i++ {
		if string(s[i:i+len(search)]) == string(search) {
			return value.FromInt32(int32(i))
		}
	}
	return value.FromInt32(-1)
}

// builtinStringLastIndexOf implements ES5.1 §15.5.4.8.
func builtinStringLastIndexOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	search := toGoStr(vm, arg(args, 0))
	idx := strings.LastIndex(s, search)
	if idx < 0 {
		return value.FromInt32(-1)
	}
	return value.FromInt32(int32(len([]rune(s[:idx]))))
}

// builtinStringSlice implements ES5.1 §15.5.4.13.
func builtinStringSlice(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := []rune(thisStringValue(vm, this))
	if vm.HasException() {
		return value.Undefined
	}
	n := len(s)
	start := relativeIndex(vm, arg(args, 0), n, 0)
	end := relativeIndex(vm, arg(args, 1), n, n)
	if start >= end {
		return types.NewString(vm.Heap, "")
	}
	return types.NewString(vm.Heap, string(s[start:end]))
}

// builtinStringSubstring implements ES5.1 §15.5.4.15: unlike slice,
// negative/out-of-range arguments clamp rather than count from the end,
// and a start past end swaps the two.
func builtinStringSubstring(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := []rune(thisStringValue(vm, this))
	if vm.HasException() {
		return value.Undefined
	}
	n := len(s)
	clamp := func(v value.Value, def int) int {
		if value.IsUndefined(v) {
			return def
		}
		i := int(value.ToInteger(toNum(vm, v)))
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	start := clamp(arg(args, 0), 0)
	end := clamp(arg(args, 1), n)
	if start > end {
		start, end = end, start
	}
	return types.NewString(vm.Heap, string(s[start:end]))
}

func builtinStringToUpperCase(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return types.NewString(vm.Heap, strings.ToUpper(s))
}

func builtinStringToLowerCase(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return types.NewString(vm.Heap, strings.ToLower(s))
}

// builtinStringSplit implements ES5.1 §15.5.4.14, regular-expression
// separators excluded (§4.3 Non-goals: no RegExp object).
func builtinStringSplit(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	sepArg := arg(args, 0)
	var parts []string
	if value.IsUndefined(sepArg) {
		parts = []string{s}
	} else {
		sep := toGoStr(vm, sepArg)
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
	}
	limit := len(parts)
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		if l := int(toUint32Arg(vm, args[1])); l < limit {
			limit = l
		}
	}
	for i := 0; i < limit; i++ {
		vm.DefineOwnProp(result, itoa(i), types.DataDescriptor(types.NewString(vm.Heap, parts[i]), true, true, true), false)
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(limit)), true, false, false), false)
	return result
}

// builtinStringConcat implements ES5.1 §15.5.4.6.
func builtinStringConcat(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	var b strings.Builder
	b.WriteString(s)
	for _, a := range args {
		b.WriteString(toGoStr(vm, a))
	}
	return types.NewString(vm.Heap, b.String())
}

// builtinStringReplace implements a literal-substring subset of
// ES5.1 §15.5.4.11 (no RegExp, no "$&"-style replacement patterns: both
// are out of scope per §4.3 Non-goals' "no RegExp object").
func builtinStringReplace(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	search := toGoStr(vm, arg(args, 0))
	replacement := arg(args, 1)
	if types.IsCallable(vm.Heap, replacement) {
		idx := strings.Index(s, search)
		if idx < 0 {
			return types.NewString(vm.Heap, s)
		}
		r := vm.Call(replacement, value.Undefined, []value.Value{types.NewString(vm.Heap, search), value.FromInt32(int32(idx)), types.NewString(vm.Heap, s)})
		if vm.HasException() {
			return value.Undefined
		}
		return types.NewString(vm.Heap, s[:idx]+toGoStr(vm, r)+s[idx+len(search):])
	}
	repl := toGoStr(vm, replacement)
	return types.NewString(vm.Heap, strings.Replace(s, search, repl, 1))
}

// builtinStringTrim implements ES5.1 §15.5.4.20.
func builtinStringTrim(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	s := thisStringValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return types.NewString(vm.Heap, strings.TrimSpace(s))
}
