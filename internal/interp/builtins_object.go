// The Object constructor and Object.prototype, ES5.1 §15.2.
package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinObjectCall implements ES5.1 §15.2.1/§15.2.2: called as a
// function or with `new`, Object(value) wraps a primitive and passes an
// existing object through, while Object()/Object(undefined|null)
// allocates a fresh plain object. [[Call]] and [[Construct]] are
// identical for this constructor, so one native body serves both (the
// evaluator's [[Construct]] already discards the freshly-allocated `new`
// object whenever the called function returns an object of its own, see
// constructHook).
func builtinObjectCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	v := arg(args, 0)
	if value.IsUndefined(v) || value.IsNull(v) {
		return types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 4), vm.Protos.Object)
	}
	return vm.ToObject(v)
}

func installObjectStatics(vm *runtime.VM, ctor value.Value) {
	method(vm, ctor, "keys", 1, builtinObjectKeys)
	method(vm, ctor, "getPrototypeOf", 1, builtinObjectGetPrototypeOf)
	method(vm, ctor, "create", 2, builtinObjectCreate)
	method(vm, ctor, "defineProperty", 3, builtinObjectDefineProperty)
	method(vm, ctor, "getOwnPropertyNames", 1, builtinObjectGetOwnPropertyNames)
}

// builtinObjectKeys implements ES5.1 §15.2.3.14.
func builtinObjectKeys(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := arg(args, 0)
	if !types.IsObject(vm.Heap, o) {
		vm.ThrowTypeError("Object.keys called on non-object")
		return value.Undefined
	}
	names := types.OwnEnumerablePropertyNames(vm.Heap, o)
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	for i, name := range names {
		vm.DefineOwnProp(result, itoa(i), types.DataDescriptor(name, true, true, true), false)
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(len(names))), true, false, false), false)
	return result
}

// builtinObjectGetOwnPropertyNames implements ES5.1 §15.2.3.4.
func builtinObjectGetOwnPropertyNames(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := arg(args, 0)
	if !types.IsObject(vm.Heap, o) {
		vm.ThrowTypeError("Object.getOwnPropertyNames called on non-object")
		return value.Undefined
	}
	names := types.OwnPropertyNames(vm.Heap, o)
	result := types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array)
	for i, name := range names {
		vm.DefineOwnProp(result, itoa(i), types.DataDescriptor(name, true, true, true), false)
	}
	vm.DefineOwnProp(result, "length", types.DataDescriptor(value.FromInt32(int32(len(names))), true, false, false), false)
	return result
}

// builtinObjectGetPrototypeOf implements ES5.1 §15.2.3.2.
func builtinObjectGetPrototypeOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := arg(args, 0)
	if !types.IsObject(vm.Heap, o) {
		vm.ThrowTypeError("Object.getPrototypeOf called on non-object")
		return value.Undefined
	}
	proto := types.Prototype(vm.Heap, o)
	if value.IsNull(proto) || !types.IsObject(vm.Heap, proto) {
		return value.Null
	}
	return proto
}

// builtinObjectCreate implements ES5.1 §15.2.3.5 (without the
// properties-descriptor-map second argument, which no program this
// evaluator expects to run needs, §4.3 Non-goals).
func builtinObjectCreate(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	proto := arg(args, 0)
	if !value.IsNull(proto) && !types.IsObject(vm.Heap, proto) {
		vm.ThrowTypeError("Object prototype may only be an Object or null")
		return value.Undefined
	}
	return types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 4), proto)
}

// builtinObjectDefineProperty implements ES5.1 §15.2.3.6.
func builtinObjectDefineProperty(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := arg(args, 0)
	if !types.IsObject(vm.Heap, o) {
		vm.ThrowTypeError("Object.defineProperty called on non-object")
		return value.Undefined
	}
	name := toGoStr(vm, arg(args, 1))
	descObj := arg(args, 2)
	desc := descriptorFromObject(vm, descObj)
	vm.DefineOwnProp(o, name, desc, true)
	return o
}

// descriptorFromObject reads a property-descriptor-shaped plain object
// (value/writable/get/set/enumerable/configurable own properties) into
// the transient PropertyDescriptor view ES5.1 §8.10.5 describes.
func descriptorFromObject(vm *runtime.VM, o value.Value) types.PropertyDescriptor {
	var d types.PropertyDescriptor
	if !types.IsObject(vm.Heap, o) {
		return d
	}
	if vm.HasProp(o, "value") {
		d.HasValue, d.Value = true, vm.GetProp(o, "value")
	}
	if vm.HasProp(o, "get") {
		d.HasGetter, d.Getter = true, vm.GetProp(o, "get")
	}
	if vm.HasProp(o, "set") {
		d.HasSetter, d.Setter = true, vm.GetProp(o, "set")
	}
	if vm.HasProp(o, "writable") {
		d.HasWritable, d.Writable = true, types.ToBoolean(vm.Heap, vm.GetProp(o, "writable"))
	}
	if vm.HasProp(o, "enumerable") {
		d.HasEnumerable, d.Enumerable = true, types.ToBoolean(vm.Heap, vm.GetProp(o, "enumerable"))
	}
	if vm.HasProp(o, "configurable") {
		d.HasConfigurable, d.Configurable = true, types.ToBoolean(vm.Heap, vm.GetProp(o, "configurable"))
	}
	return d
}

func installObjectPrototype(vm *runtime.VM, proto value.Value) {
	method(vm, proto, "toString", 0, builtinObjectToString)
	method(vm, proto, "toLocaleString", 0, builtinObjectToString)
	method(vm, proto, "valueOf", 0, builtinObjectValueOf)
	method(vm, proto, "hasOwnProperty", 1, builtinObjectHasOwnProperty)
	method(vm, proto, "isPrototypeOf", 1, builtinObjectIsPrototypeOf)
	method(vm, proto, "propertyIsEnumerable", 1, builtinObjectPropertyIsEnumerable)
}

// builtinObjectToString implements ES5.1 §15.2.4.2.
func builtinObjectToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	var className string
	switch {
	case value.IsUndefined(this):
		className = "Undefined"
	case value.IsNull(this):
		className = "Null"
	default:
		className = types.Class(vm.Heap, vm.ToObject(this)).String()
	}
	return types.NewString(vm.Heap, "[object "+className+"]")
}

func builtinObjectValueOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	return vm.ToObject(this)
}

// builtinObjectHasOwnProperty implements ES5.1 §15.2.4.5.
func builtinObjectHasOwnProperty(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := vm.ToObject(this)
	if vm.HasException() {
		return value.Undefined
	}
	name := toGoStr(vm, arg(args, 0))
	_, ok := types.GetOwnProperty(vm.Heap, vm.Strings, o, vm.Strings.Intern(name))
	return value.FromBool(ok)
}

// builtinObjectIsPrototypeOf implements ES5.1 §15.2.4.6.
func builtinObjectIsPrototypeOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	v := arg(args, 0)
	if !types.IsObject(vm.Heap, v) {
		return value.FromBool(false)
	}
	o := vm.ToObject(this)
	for cur := types.Prototype(vm.Heap, v); types.IsObject(vm.Heap, cur); cur = types.Prototype(vm.Heap, cur) {
		if cur == o {
			return value.FromBool(true)
		}
	}
	return value.FromBool(false)
}

// builtinObjectPropertyIsEnumerable implements ES5.1 §15.2.4.7.
func builtinObjectPropertyIsEnumerable(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	o := vm.ToObject(this)
	if vm.HasException() {
		return value.Undefined
	}
	name := toGoStr(vm, arg(args, 0))
	desc, ok := types.GetOwnProperty(vm.Heap, vm.Strings, o, vm.Strings.Intern(name))
	return value.FromBool(ok && desc.Enumerable)
}
