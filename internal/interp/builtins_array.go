// The Array constructor and Array.prototype, ES5.1 §15.4.
package interp

import (
	"sort"
	"strings"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinArrayCall implements ES5.1 §15.4.1/§15.4.2: a single numeric
// argument sets the new array's length (still sparse, no elements
// materialized); any other argument list becomes the initial elements.
func builtinArrayCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	arr := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	if len(args) == 1 && value.IsNumber(args[0]) {
		n := value.NumberToFloat64(args[0])
		u := uint32(n)
		if float64(u) != n {
			vm.ThrowRangeError("Invalid array length")
			return value.Undefined
		}
		vm.DefineOwnProp(arr, "length", types.DataDescriptor(value.FromFloat64(n), true, false, false), false)
		return arr
	}
	for i, a := range args {
		vm.DefineOwnProp(arr, itoa(i), types.DataDescriptor(a, true, true, true), false)
	}
	return arr
}

func installArrayStatics(vm *runtime.VM, ctor value.Value) {
	method(vm, ctor, "isArray", 1, builtinArrayIsArray)
}

// builtinArrayIsArray implements ES5.1 §15.4.3.2.
func builtinArrayIsArray(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	v := arg(args, 0)
	return value.FromBool(types.IsObject(vm.Heap, v) && types.Class(vm.Heap, v) == types.ClassArray)
}

func arrLen(vm *runtime.VM, o value.Value) uint32 {
	return uint32(toUint32Arg(vm, vm.GetProp(o, "length")))
}

// putOrThrow writes v to o's name property in throwing mode, raising a
// TypeError when [[Put]] rejects the write (e.g. a non-writable length or
// a non-configurable element blocking a truncation).
func putOrThrow(vm *runtime.VM, o value.Value, name string, v value.Value) bool {
	if !vm.PutProp(o, name, v, true) {
		vm.ThrowTypeError("Cannot assign to read only property '" + name + "' of array")
		return false
	}
	return true
}

func installArrayPrototype(vm *runtime.VM, proto value.Value) {
	method(vm, proto, "toString", 0, builtinArrayToString)
	method(vm, proto, "join", 1, builtinArrayJoin)
	method(vm, proto, "push", 1, builtinArrayPush)
	method(vm, proto, "pop", 0, builtinArrayPop)
	method(vm, proto, "shift", 0, builtinArrayShift)
	method(vm, proto, "unshift", 1, builtinArrayUnshift)
	method(vm, proto, "slice", 2, builtinArraySlice)
	method(vm, proto, "splice", 2, builtinArraySplice)
	method(vm, proto, "concat", 1, builtinArrayConcat)
	method(vm, proto, "reverse", 0, builtinArrayReverse)
	method(vm, proto, "indexOf", 1, builtinArrayIndexOf)
	method(vm, proto, "lastIndexOf", 1, builtinArrayLastIndexOf)
	method(vm, proto, "forEach", 1, builtinArrayForEach)
	method(vm, proto, "map", 1, builtinArrayMap)
	method(vm, proto, "filter", 1, builtinArrayFilter)
	method(vm, proto, "every", 1, builtinArrayEvery)
	method(vm, proto, "some", 1, builtinArraySome)
	method(vm, proto, "reduce", 1, builtinArrayReduce)
	method(vm, proto, "sort", 1, builtinArraySort)
}

// builtinArrayToString implements ES5.1 §15.4.4.2.
func builtinArrayToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	join := vm.GetProp(this, "join")
	if types.IsCallable(vm.Heap, join) {
		return vm.Call(join, this, nil)
	}
	return builtinObjectToString(vm, this, nil)
}

// builtinArrayJoin implements ES5.1 §15.4.4.5: elements that are
// undefined or null contribute the empty string, a special-case carved
// out of the general ToString conversion.
func builtinArrayJoin(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	sep := ","
	if s := arg(args, 0); !value.IsUndefined(s) {
		sep = toGoStr(vm, s)
	}
	n := arrLen(vm, this)
	var b strings.Builder
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		elem := vm.GetProp(this, itoa(int(i)))
		if value.IsUndefined(elem) || value.IsNull(elem) {
			continue
		}
		b.WriteString(toGoStr(vm, elem))
	}
	return types.NewString(vm.Heap, b.String())
}

// builtinArrayPush implements ES5.1 §15.4.4.7.
func builtinArrayPush(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := arrLen(vm, this)
	for _, a := range args {
		if !putOrThrow(vm, this, itoa(int(n)), a) {
			return value.Undefined
		}
		n++
	}
	if !putOrThrow(vm, this, "length", value.FromFloat64(float64(n))) {
		return value.Undefined
	}
	return value.FromFloat64(float64(n))
}

// builtinArrayPop implements ES5.1 §15.4.4.6.
func builtinArrayPop(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := arrLen(vm, this)
	if n == 0 {
		if !putOrThrow(vm, this, "length", value.FromInt32(0)) {
			return value.Undefined
		}
		return value.Undefined
	}
	last := n - 1
	v := vm.GetProp(this, itoa(int(last)))
	vm.DeleteProp(this, itoa(int(last)), true)
	if !putOrThrow(vm, this, "length", value.FromFloat64(float64(last))) {
		return value.Undefined
	}
	return v
}

// builtinArrayShift implements ES5.1 §15.4.4.9.
func builtinArrayShift(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := arrLen(vm, this)
	if n == 0 {
		if !putOrThrow(vm, this, "length", value.FromInt32(0)) {
			return value.Undefined
		}
		return value.Undefined
	}
	first := vm.GetProp(this, "0")
	for i := uint32(1); i < n; i++ {
		if !putOrThrow(vm, this, itoa(int(i-1)), vm.GetProp(this, itoa(int(i)))) {
			return value.Undefined
		}
	}
	vm.DeleteProp(this, itoa(int(n-1)), true)
	if !putOrThrow(vm, this, "length", value.FromFloat64(float64(n-1))) {
		return value.Undefined
	}
	return first
}

// builtinArrayUnshift implements ES5.1 §15.4.4.13.
func builtinArrayUnshift(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := arrLen(vm, this)
	shift := uint32(len(args))
	for i := n; i > 0; i-- {
		if !putOrThrow(vm, this, itoa(int(i-1+shift)), vm.GetProp(this, itoa(int(i-1)))) {
			return value.Undefined
		}
	}
	for i, a := range args {
		if !putOrThrow(vm, this, itoa(i), a) {
			return value.Undefined
		}
	}
	newLen := n + shift
	if !putOrThrow(vm, this, "length", value.FromFloat64(float64(newLen))) {
		return value.Undefined
	}
	return value.FromFloat64(float64(newLen))
}

// relativeIndex resolves a start/end argument per the "negative counts
// from the end, clamp to [0,len]" rule shared by slice/splice/indexOf.
func relativeIndex(vm *runtime.VM, v value.Value, length int, defaultVal int) int {
	if value.IsUndefined(v) {
		return defaultVal
	}
	n := int(value.ToInteger(toNum(vm, v)))
	if n < 0 {
		n += length
	}
	if n < 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

// builtinArraySlice implements ES5.1 §15.4.4.10.
func builtinArraySlice(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := int(arrLen(vm, this))
	start := relativeIndex(vm, arg(args, 0), n, 0)
	end := relativeIndex(vm, arg(args, 1), n, n)
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	idx := 0
	for i := start; i < end; i++ {
		vm.DefineOwnProp(result, itoa(idx), types.DataDescriptor(vm.GetProp(this, itoa(i)), true, true, true), false)
		idx++
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(idx)), true, false, false), false)
	return result
}

// builtinArraySplice implements ES5.1 §15.4.4.12.
func builtinArraySplice(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := int(arrLen(vm, this))
	start := relativeIndex(vm, arg(args, 0), n, 0)
	deleteCount := n - start
	if len(args) > 1 {
		dc := int(value.ToInteger(toNum(vm, args[1])))
		if dc < 0 {
			dc = 0
		}
		if dc > n-start {
			dc = n - start
		}
		deleteCount = dc
	}
	var inserted []value.Value
	if len(args) > 2 {
		inserted = args[2:]
	}

	removed := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	for i := 0; i < deleteCount; i++ {
		vm.DefineOwnProp(removed, itoa(i), types.DataDescriptor(vm.GetProp(this, itoa(start+i)), true, true, true), false)
	}
	vm.DefineOwnProp(removed, "length", types.DataDescriptor(value.FromInt32(int32(deleteCount)), true, false, false), false)

	tail := make([]value.Value, 0, n-start-deleteCount)
	for i := start + deleteCount; i < n; i++ {
		tail = append(tail, vm.GetProp(this, itoa(i)))
	}

	idx := start
	for _, v := range inserted {
		if !putOrThrow(vm, this, itoa(idx), v) {
			return value.Undefined
		}
		idx++
	}
	for _, v := range tail {
		if !putOrThrow(vm, this, itoa(idx), v) {
			return value.Undefined
		}
		idx++
	}
	newLen := idx
	for i := newLen; i < n; i++ {
		vm.DeleteProp(this, itoa(i), true)
	}
	if !putOrThrow(vm, this, "length", value.FromFloat64(float64(newLen))) {
		return value.Undefined
	}
	return removed
}

// builtinArrayConcat implements ES5.1 §15.4.4.4.
func builtinArrayConcat(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	idx := 0
	appendOne := func(v value.Value) {
		if types.IsObject(vm.Heap, v) && types.Class(vm.Heap, v) == types.ClassArray {
			n := arrLen(vm, v)
			for i := uint32(0); i < n; i++ {
				vm.DefineOwnProp(result, itoa(idx), types.DataDescriptor(vm.GetProp(v, itoa(int(i))), true, true, true), false)
				idx++
			}
			return
		}
		vm.DefineOwnProp(result, itoa(idx), types.DataDescriptor(v, true, true, true), false)
		idx++
	}
	appendOne(this)
	for _, a := range args {
		appendOne(a)
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(idx)), true, false, false), false)
	return result
}

// builtinArrayReverse implements ES5.1 §15.4.4.8.
func builtinArrayReverse(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := int(arrLen(vm, this))
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a, b := vm.GetProp(this, itoa(i)), vm.GetProp(this, itoa(j))
		if !putOrThrow(vm, this, itoa(i), b) {
			return value.Undefined
		}
		if !putOrThrow(vm, this, itoa(j), a) {
			return value.Undefined
		}
	}
	return this
}

// builtinArrayIndexOf implements ES5.1 §15.4.4.14.
func builtinArrayIndexOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := int(arrLen(vm, this))
	target := arg(args, 0)
	start := 0
	if len(args) > 1 {
		start = relativeIndex(vm, args[1], n, 0)
	}
	for i := start; i < n; i++ {
		if types.StrictEquals(vm.Heap, vm.GetProp(this, itoa(i)), target) {
			return value.FromInt32(int32(i))
		}
	}
	return value.FromInt32(-1)
}

// builtinArrayLastIndexOf implements ES5.1 §15.4.4.15.
func builtinArrayLastIndexOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := int(arrLen(vm, this))
	target := arg(args, 0)
	for i := n - 1; i >= 0; i-- {
		if types.StrictEquals(vm.Heap, vm.GetProp(this, itoa(i)), target) {
			return value.FromInt32(int32(i))
		}
	}
	return value.FromInt32(-1)
}

// builtinArrayForEach implements ES5.1 §15.4.4.18.
func builtinArrayForEach(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	thisArg := arg(args, 1)
	n := arrLen(vm, this)
	for i := uint32(0); i < n; i++ {
		vm.Call(fn, thisArg, []value.Value{vm.GetProp(this, itoa(int(i))), value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
	}
	return value.Undefined
}

// builtinArrayMap implements ES5.1 §15.4.4.19.
func builtinArrayMap(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	thisArg := arg(args, 1)
	n := arrLen(vm, this)
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	for i := uint32(0); i < n; i++ {
		v := vm.Call(fn, thisArg, []value.Value{vm.GetProp(this, itoa(int(i))), value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
		vm.DefineOwnProp(result, itoa(int(i)), types.DataDescriptor(v, true, true, true), false)
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromFloat64(float64(n)), true, false, false), false)
	return result
}

// builtinArrayFilter implements ES5.1 §15.4.4.20.
func builtinArrayFilter(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	thisArg := arg(args, 1)
	n := arrLen(vm, this)
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	idx := 0
	for i := uint32(0); i < n; i++ {
		elem := vm.GetProp(this, itoa(int(i)))
		keep := vm.Call(fn, thisArg, []value.Value{elem, value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
		if types.ToBoolean(vm.Heap, keep) {
			vm.DefineOwnProp(result, itoa(idx), types.DataDescriptor(elem, true, true, true), false)
			idx++
		}
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(idx)), true, false, false), false)
	return result
}

// builtinArrayEvery implements ES5.1 §15.4.4.16.
func builtinArrayEvery(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	thisArg := arg(args, 1)
	n := arrLen(vm, this)
	for i := uint32(0); i < n; i++ {
		ok := vm.Call(fn, thisArg, []value.Value{vm.GetProp(this, itoa(int(i))), value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
		if !types.ToBoolean(vm.Heap, ok) {
			return value.FromBool(false)
		}
	}
	return value.FromBool(true)
}

// builtinArraySome implements ES5.1 §15.4.4.17.
func builtinArraySome(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	thisArg := arg(args, 1)
	n := arrLen(vm, this)
	for i := uint32(0); i < n; i++ {
		ok := vm.Call(fn, thisArg, []value.Value{vm.GetProp(this, itoa(int(i))), value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
		if types.ToBoolean(vm.Heap, ok) {
			return value.FromBool(true)
		}
	}
	return value.FromBool(false)
}

// builtinArrayReduce implements ES5.1 §15.4.4.21.
func builtinArrayReduce(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	fn := arg(args, 0)
	if !types.IsCallable(vm.Heap, fn) {
		vm.ThrowTypeError("callback is not a function")
		return value.Undefined
	}
	n := arrLen(vm, this)
	i := uint32(0)
	var acc value.Value
	if len(args) > 1 {
		acc = args[1]
	} else {
		if n == 0 {
			vm.ThrowTypeError("Reduce of empty array with no initial value")
			return value.Undefined
		}
		acc = vm.GetProp(this, "0")
		i = 1
	}
	for ; i < n; i++ {
		acc = vm.Call(fn, value.Undefined, []value.Value{acc, vm.GetProp(this, itoa(int(i))), value.FromInt32(int32(i)), this})
		if vm.HasException() {
			return value.Undefined
		}
	}
	return acc
}

// builtinArraySort implements ES5.1 §15.4.4.11's default (lexicographic)
// and comparator-function comparison paths. It materializes the whole
// array in a Go slice before sorting, foregoing the in-place exchange
// algorithm's specific comparator-call-count guarantee (ES5.1 leaves the
// exact sort algorithm implementation-defined).
func builtinArraySort(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	cmp := arg(args, 0)
	useCmp := types.IsCallable(vm.Heap, cmp)
	n := int(arrLen(vm, this))
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elems[i] = vm.GetProp(this, itoa(i))
	}
	var sortErr bool
	sort.SliceStable(elems, func(i, j int) bool {
		if sortErr {
			return false
		}
		a, b := elems[i], elems[j]
		if value.IsUndefined(a) {
			return false
		}
		if value.IsUndefined(b) {
			return true
		}
		if useCmp {
			r := vm.Call(cmp, value.Undefined, []value.Value{a, b})
			if vm.HasException() {
				sortErr = true
				return false
			}
			return toNum(vm, r) < 0
		}
		return toGoStr(vm, a) < toGoStr(vm, b)
	})
	if sortErr {
		return value.Undefined
	}
	for i, v := range elems {
		if !putOrThrow(vm, this, itoa(i), v) {
			return value.Undefined
		}
	}
	return this
}
