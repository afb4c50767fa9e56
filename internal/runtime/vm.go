// The VM: the single mutable context a running program executes within,
// §5. It owns the heap, the string table, the execution context
// stack, the pending-exception slot, and the table mapping a JSFunction's
// opaque scope word back to its Go-native LexicalEnvironment.
//
// Package runtime cannot itself run interpreted code ([[Call]] and
// [[Construct]] require tree-walking a function body, which is package
// interp's job). Instead interp calls SetHooks once at startup to give
// the VM everything it needs to invoke a function value without
// importing interp back.
package runtime

import (
	"io"
	"os"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// CallFunc performs ES5.1 §13.2.1 [[Call]]: invoke fn (a Function object)
// with the given this-binding and arguments, returning its result.
type CallFunc func(vm *VM, fn, this value.Value, args []value.Value) value.Value

// ConstructFunc performs ES5.1 §13.2.2 [[Construct]].
type ConstructFunc func(vm *VM, fn value.Value, args []value.Value) value.Value

// ToObjectFunc performs ES5.1 §9.9 ToObject.
type ToObjectFunc func(vm *VM, v value.Value) value.Value

// ToPrimitiveFunc performs ES5.1 §9.1 ToPrimitive (hint is "" for no
// preference, or "string"/"number").
type ToPrimitiveFunc func(vm *VM, v value.Value, hint string) value.Value

// ToStringFunc performs ES5.1 §9.8 ToString for values that may require
// invoking a user-defined toString/valueOf.
type ToStringFunc func(vm *VM, v value.Value) string

// Prototypes collects the built-in prototype objects the VM needs to
// construct Error instances and primitive wrappers on its own behalf
// (thrown TypeErrors, ToObject on a primitive reference base). Populated
// once by the builtins bootstrap after the VM is created.
type Prototypes struct {
	Object   value.Value
	Function value.Value
	Array    value.Value
	String   value.Value
	Boolean  value.Value
	Number   value.Value
	Error    value.Value
	Sub      map[types.ErrorSubtype]value.Value
}

// VM is the single runtime instance a program executes within. Nothing
// in this evaluator is safe for concurrent use from multiple goroutines,
// matching the single-threaded execution model of §5.
type VM struct {
	Heap    *heap.Heap
	Strings *heap.StringTable
	Storage *heap.Storage

	GlobalObject value.Value
	GlobalEnv    *LexicalEnvironment

	Protos Prototypes

	// Output is where the `print` built-in writes; defaults to os.Stdout,
	// overridable so tests and embedders can capture a program's output.
	Output io.Writer

	contexts []*ExecutionContext

	exception    value.Value
	hasException bool

	// envTable lets a heap-resident JSFunction name its captured
	// LexicalEnvironment with a plain FromInt32 index (types.FunctionScope)
	// instead of an unsafe Go pointer smuggled through a Value.
	envTable []*LexicalEnvironment

	callHook        CallFunc
	constructHook   ConstructFunc
	toObjectHook    ToObjectFunc
	toPrimitiveHook ToPrimitiveFunc
	toStringHook    ToStringFunc

	funcLiterals []*ast.FunctionLiteral
	natives      []NativeFunc
}

// NativeFunc is a built-in function body implemented directly in Go
// rather than by tree-walking an ast.FunctionLiteral.
type NativeFunc func(vm *VM, this value.Value, args []value.Value) value.Value

// RegisterFunctionLiteral records lit in the interpreted-function table,
// returning the index a JSFunction's funcIndex word encodes.
func (vm *VM) RegisterFunctionLiteral(lit *ast.FunctionLiteral) int {
	vm.funcLiterals = append(vm.funcLiterals, lit)
	return len(vm.funcLiterals) - 1
}

// FunctionLiteralAt returns the literal registered at idx.
func (vm *VM) FunctionLiteralAt(idx int) *ast.FunctionLiteral { return vm.funcLiterals[idx] }

// RegisterNative records fn in the native-function table.
func (vm *VM) RegisterNative(fn NativeFunc) int {
	vm.natives = append(vm.natives, fn)
	return len(vm.natives) - 1
}

// NativeAt returns the native function registered at idx.
func (vm *VM) NativeAt(idx int) NativeFunc { return vm.natives[idx] }

// NewVM creates a VM with a fresh heap, string table, and handle storage.
// The caller (package interp's bootstrap) still needs to call SetHooks
// and populate GlobalObject/GlobalEnv/Protos before running any code.
func NewVM() *VM {
	vm := &VM{exception: value.Undefined, GlobalObject: value.Undefined, Output: os.Stdout}
	vm.Storage = heap.NewStorage()
	vm.Heap = heap.New(heap.DefaultSemispaceSize, vm.roots)
	vm.Strings = heap.NewStringTable()
	types.InstallStringInterning(vm.Heap, vm.Strings)
	vm.Protos.Sub = make(map[types.ErrorSubtype]value.Value)
	return vm
}

// SetHooks wires the operations only package interp can implement.
func (vm *VM) SetHooks(call CallFunc, construct ConstructFunc, toObject ToObjectFunc, toPrimitive ToPrimitiveFunc, toString ToStringFunc) {
	vm.callHook = call
	vm.constructHook = construct
	vm.toObjectHook = toObject
	vm.toPrimitiveHook = toPrimitive
	vm.toStringHook = toString
}

// Call invokes [[Call]] through the registered hook.
func (vm *VM) Call(fn, this value.Value, args []value.Value) value.Value {
	return vm.callHook(vm, fn, this, args)
}

// Construct invokes [[Construct]] through the registered hook.
func (vm *VM) Construct(fn value.Value, args []value.Value) value.Value {
	return vm.constructHook(vm, fn, args)
}

// ToObject performs ES5.1 §9.9 via the registered hook.
func (vm *VM) ToObject(v value.Value) value.Value { return vm.toObjectHook(vm, v) }

// ToPrimitive performs ES5.1 §9.1 via the registered hook.
func (vm *VM) ToPrimitive(v value.Value, hint string) value.Value {
	if !types.IsObject(vm.Heap, v) {
		return v
	}
	return vm.toPrimitiveHook(vm, v, hint)
}

// ToDisplayString renders v for diagnostic messages (thrown-error text,
// --trace output). It never invokes a user toString/valueOf on its own
// primitives fast path; only the object case defers to the registered
// hook, so this stays safe to call before hooks are wired (e.g. from
// VM construction).
func (vm *VM) ToDisplayString(v value.Value) string {
	switch {
	case value.IsUndefined(v):
		return "undefined"
	case value.IsNull(v):
		return "null"
	case value.IsBoolean(v):
		if value.ToBool(v) {
			return "true"
		}
		return "false"
	case value.IsNumber(v):
		return types.NumberToString(value.NumberToFloat64(v))
	case types.IsStringValue(vm.Heap, v):
		return types.StringValue(vm.Heap, v)
	default:
		if vm.toStringHook != nil {
			return vm.toStringHook(vm, v)
		}
		return "[object Object]"
	}
}

// registerEnv assigns env a stable opaque index for use as a JSFunction's
// scope word, registering it only once per distinct LexicalEnvironment
// instance is not required: callers may call this once per function
// object creation, duplicating entries, since the index is only ever
// looked up through resolveEnv and never compared for identity.
func (vm *VM) registerEnv(env *LexicalEnvironment) value.Value {
	idx := len(vm.envTable)
	vm.envTable = append(vm.envTable, env)
	return value.FromInt32(int32(idx))
}

// RegisterEnv is the exported form registerEnv, used by interp when it
// allocates a JSFunction's heap object and needs to pack its captured
// scope into a Value.
func (vm *VM) RegisterEnv(env *LexicalEnvironment) value.Value { return vm.registerEnv(env) }

// ResolveEnv decodes a JSFunction's scope word back into the
// LexicalEnvironment it was registered with.
func (vm *VM) ResolveEnv(scope value.Value) *LexicalEnvironment {
	if value.IsUndefined(scope) {
		return nil
	}
	return vm.envTable[value.Int32(scope)]
}

// accessorGetter adapts the call hook to the types.Getter shape package
// types' [[Get]] needs to invoke an accessor's getter function.
func (vm *VM) accessorGetter() types.Getter {
	return func(fn value.Value, this value.Value) value.Value {
		return vm.callHook(vm, fn, this, nil)
	}
}

// accessorSetter is the setter counterpart of accessorGetter.
func (vm *VM) accessorSetter() types.Setter {
	return func(fn value.Value, this value.Value, arg value.Value) {
		vm.callHook(vm, fn, this, []value.Value{arg})
	}
}

// GetProp performs ES5.1 §8.12.3 [[Get]] for name on o.
func (vm *VM) GetProp(o value.Value, name string) value.Value {
	return types.Get(vm.Heap, vm.Strings, o, vm.Strings.Intern(name), vm.accessorGetter())
}

// PutProp performs ES5.1 §8.12.5 [[Put]] for name on o.
func (vm *VM) PutProp(o value.Value, name string, v value.Value, throwFlag bool) bool {
	return types.Put(vm.Heap, vm.Strings, o, vm.Strings.Intern(name), v, throwFlag, vm.accessorGetter(), vm.accessorSetter())
}

// HasProp performs ES5.1 §8.12.6 [[HasProperty]] for name on o.
func (vm *VM) HasProp(o value.Value, name string) bool {
	return types.HasProperty(vm.Heap, vm.Strings, o, vm.Strings.Intern(name))
}

// DeleteProp performs ES5.1 §8.12.7 [[Delete]] for name on o.
func (vm *VM) DeleteProp(o value.Value, name string, throwFlag bool) bool {
	return types.DeleteProperty(vm.Heap, o, vm.Strings.Intern(name), throwFlag)
}

// DefineOwnProp performs ES5.1 §8.12.9 [[DefineOwnProperty]] for name on o.
func (vm *VM) DefineOwnProp(o value.Value, name string, desc types.PropertyDescriptor, throwFlag bool) bool {
	return types.DefineOwnProperty(vm.Heap, vm.Strings, o, vm.Strings.Intern(name), desc, throwFlag, vm.accessorGetter(), vm.accessorSetter())
}

// HasException reports whether a throw completion is pending.
func (vm *VM) HasException() bool { return vm.hasException }

// Exception returns the pending exception's value; Undefined if none.
func (vm *VM) Exception() value.Value { return vm.exception }

// ClearException drops the pending exception, used after a catch clause
// binds it.
func (vm *VM) ClearException() { vm.hasException = false; vm.exception = value.Undefined }

// SetException records v as the pending exception, used by the `throw`
// statement.
func (vm *VM) SetException(v value.Value) { vm.exception = v; vm.hasException = true }

func (vm *VM) throwError(subtype types.ErrorSubtype, message string) {
	proto, ok := vm.Protos.Sub[subtype]
	if !ok || value.IsUndefined(proto) {
		proto = vm.Protos.Error
	}
	props := types.NewHashMap(vm.Heap, 4)
	errObj := types.NewErrorObject(vm.Heap, subtype, props, proto)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, errObj, "message", types.NewString(vm.Heap, message), true, false, true)
	vm.SetException(errObj)
}

// ThrowTypeError raises a native TypeError, §4.7.
func (vm *VM) ThrowTypeError(message string) { vm.throwError(types.ErrorType, message) }

// ThrowReferenceError raises a native ReferenceError.
func (vm *VM) ThrowReferenceError(message string) { vm.throwError(types.ErrorReference, message) }

// ThrowRangeError raises a native RangeError.
func (vm *VM) ThrowRangeError(message string) { vm.throwError(types.ErrorRange, message) }

// ThrowSyntaxError raises a native SyntaxError (used for runtime-detected
// syntax violations such as malformed eval input, not parse errors, which
// the parser reports through package errors before the VM ever runs).
func (vm *VM) ThrowSyntaxError(message string) { vm.throwError(types.ErrorSyntax, message) }

// roots is the heap.Heap garbage-collection roots callback: every Value
// slot the collector must treat as alive, beyond what it already reaches
// by tracing from a root through registered heap objects. Handle scopes
// and the global object are typical heap roots; the context stack's
// this-bindings and the chains of Go-native LexicalEnvironments hanging
// off envTable are roots only because this evaluator keeps environments
// outside the heap (see environment.go's package comment) — the
// generic object-model scan never visits a Go map.
func (vm *VM) roots() []*value.Value {
	out := vm.Storage.Roots()
	out = append(out, &vm.GlobalObject, &vm.exception)
	for _, ctx := range vm.contexts {
		out = append(out, &ctx.ThisBinding)
	}
	seen := make(map[*LexicalEnvironment]bool)
	if vm.GlobalEnv != nil {
		out = envChainRoots(vm.GlobalEnv, out, seen)
	}
	for _, env := range vm.envTable {
		out = envChainRoots(env, out, seen)
	}
	return out
}

func envChainRoots(env *LexicalEnvironment, out []*value.Value, seen map[*LexicalEnvironment]bool) []*value.Value {
	for e := env; e != nil && !seen[e]; e = e.Outer {
		seen[e] = true
		switch r := e.Record.(type) {
		case *DeclarativeEnvironmentRecord:
			for _, b := range r.bindings {
				out = append(out, &b.Value)
			}
		case *ObjectEnvironmentRecord:
			out = append(out, &r.Bindings)
		}
	}
	return out
}
