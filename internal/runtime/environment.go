// Environment records and the lexical environment chain, §3.6 /
// §4.4. These are plain Go structs managed by the host garbage collector,
// not heap.Heap allocations: unlike language-level objects, they are
// never observed as ECMAScript values, so there is nothing for the
// NaN-boxed Value encoding to gain by moving them into the copying
// collector. A JSFunction's captured scope is still reachable from a
// heap.Heap object (see types.FunctionScope), via an opaque index into
// VM.envTable rather than a raw Go pointer — see VM.registerEnv.
package runtime

import (
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// Binding is a single declarative-environment slot, §3.3.
type Binding struct {
	Value     value.Value
	Mutable   bool
	Deletable bool
	// initialized is false for a binding created by CreateMutableBinding
	// before its first SetMutableBinding; GetBindingValue on an
	// uninitialized binding throws a ReferenceError. `var` hoisting and
	// function parameters initialize their bindings when they create them,
	// so ordinary programs never read an uninitialized one.
	initialized bool
}

// EnvironmentRecord is the common interface of the two kinds described in
// §3.6.
type EnvironmentRecord interface {
	HasBinding(name string) bool
	CreateMutableBinding(name string, deletable bool)
	SetMutableBinding(vm *VM, name string, v value.Value, strict bool)
	GetBindingValue(vm *VM, name string, strict bool) value.Value
	DeleteBinding(name string) bool
	ImplicitThisValue() value.Value
}

// DeclarativeEnvironmentRecord implements ES5.1 §10.2.1: an identifier ->
// Binding map, used for function call frames, catch clauses, and named
// function expression scopes.
type DeclarativeEnvironmentRecord struct {
	bindings map[string]*Binding
}

// NewDeclarativeEnvironmentRecord creates an empty record.
func NewDeclarativeEnvironmentRecord() *DeclarativeEnvironmentRecord {
	return &DeclarativeEnvironmentRecord{bindings: make(map[string]*Binding)}
}

func (d *DeclarativeEnvironmentRecord) HasBinding(name string) bool {
	_, ok := d.bindings[name]
	return ok
}

func (d *DeclarativeEnvironmentRecord) CreateMutableBinding(name string, deletable bool) {
	if _, ok := d.bindings[name]; ok {
		return
	}
	d.bindings[name] = &Binding{Value: value.Undefined, Mutable: true, Deletable: deletable}
}

// CreateImmutableBinding installs a non-configurable, non-mutable slot,
// used for a named function expression's own binding to itself.
func (d *DeclarativeEnvironmentRecord) CreateImmutableBinding(name string) {
	d.bindings[name] = &Binding{Mutable: false, Deletable: false}
}

func (d *DeclarativeEnvironmentRecord) SetMutableBinding(vm *VM, name string, v value.Value, strict bool) {
	b, ok := d.bindings[name]
	if !ok {
		d.CreateMutableBinding(name, true)
		b = d.bindings[name]
	}
	if !b.Mutable {
		if strict {
			vm.ThrowTypeError("Assignment to constant variable.")
		}
		return
	}
	b.Value = v
	b.initialized = true
}

// InitializeImmutableBinding assigns an immutable binding's value for the
// first (and only) time, e.g. a named function expression's self-binding.
func (d *DeclarativeEnvironmentRecord) InitializeImmutableBinding(name string, v value.Value) {
	if b, ok := d.bindings[name]; ok {
		b.Value = v
		b.initialized = true
	}
}

func (d *DeclarativeEnvironmentRecord) GetBindingValue(vm *VM, name string, strict bool) value.Value {
	b, ok := d.bindings[name]
	if !ok || !b.initialized {
		vm.ThrowReferenceError(name + " is not defined")
		return value.Undefined
	}
	return b.Value
}

func (d *DeclarativeEnvironmentRecord) DeleteBinding(name string) bool {
	b, ok := d.bindings[name]
	if !ok {
		return true
	}
	if !b.Deletable {
		return false
	}
	delete(d.bindings, name)
	return true
}

func (d *DeclarativeEnvironmentRecord) ImplicitThisValue() value.Value { return value.Undefined }

// ObjectEnvironmentRecord implements ES5.1 §10.2.1.2: identifiers bind to
// properties of a backing object, used for the global environment and for
// `with` statement bodies. It needs the VM's property machinery for every
// operation, so (unlike DeclarativeEnvironmentRecord) it carries a VM
// reference from construction rather than accepting one per call; the
// vm parameter threaded through the EnvironmentRecord interface is
// ignored here, since a single-VM program (§5) never sees a second
// one to disagree with.
type ObjectEnvironmentRecord struct {
	vm          *VM
	Bindings    value.Value // an Object
	ProvideThis bool
}

// NewObjectEnvironmentRecord wraps obj. provideThis is true only for the
// transient environment a `with` statement pushes.
func NewObjectEnvironmentRecord(vm *VM, obj value.Value, provideThis bool) *ObjectEnvironmentRecord {
	return &ObjectEnvironmentRecord{vm: vm, Bindings: obj, ProvideThis: provideThis}
}

func (o *ObjectEnvironmentRecord) HasBinding(name string) bool {
	return types.HasProperty(o.vm.Heap, o.vm.Strings, o.Bindings, o.vm.Strings.Intern(name))
}

func (o *ObjectEnvironmentRecord) CreateMutableBinding(name string, deletable bool) {
	key := o.vm.Strings.Intern(name)
	types.DefineOwnProperty(o.vm.Heap, o.vm.Strings, o.Bindings, key,
		types.DataDescriptor(value.Undefined, true, true, deletable), true, o.vm.accessorGetter(), o.vm.accessorSetter())
}

func (o *ObjectEnvironmentRecord) SetMutableBinding(vm *VM, name string, v value.Value, strict bool) {
	key := o.vm.Strings.Intern(name)
	if ok := types.Put(o.vm.Heap, o.vm.Strings, o.Bindings, key, v, strict, o.vm.accessorGetter(), o.vm.accessorSetter()); !ok && strict {
		o.vm.ThrowTypeError("Cannot assign to read only property '" + name + "'")
	}
}

func (o *ObjectEnvironmentRecord) GetBindingValue(vm *VM, name string, strict bool) value.Value {
	key := o.vm.Strings.Intern(name)
	if !types.HasProperty(o.vm.Heap, o.vm.Strings, o.Bindings, key) {
		if strict {
			o.vm.ThrowReferenceError(name + " is not defined")
		}
		return value.Undefined
	}
	return types.Get(o.vm.Heap, o.vm.Strings, o.Bindings, key, o.vm.accessorGetter())
}

func (o *ObjectEnvironmentRecord) DeleteBinding(name string) bool {
	key := o.vm.Strings.Intern(name)
	return types.DeleteProperty(o.vm.Heap, o.Bindings, key, false)
}

func (o *ObjectEnvironmentRecord) ImplicitThisValue() value.Value {
	if o.ProvideThis {
		return o.Bindings
	}
	return value.Undefined
}

// LexicalEnvironment is the record + outer-chain pair of §3.6.
type LexicalEnvironment struct {
	Record EnvironmentRecord
	Outer  *LexicalEnvironment
}

// NewLexicalEnvironment wraps rec with the given outer (nil for the
// outermost/global environment).
func NewLexicalEnvironment(rec EnvironmentRecord, outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: rec, Outer: outer}
}

// GetIdentifierReference implements ES5.1 §10.2.2.1: walk the lexical
// environment chain looking for a binding, returning a Reference rooted
// at whichever environment record (or the unresolvable environment, base
// Undefined) holds it.
func GetIdentifierReference(vm *VM, lex *LexicalEnvironment, name string, strict bool) Reference {
	for env := lex; env != nil; env = env.Outer {
		if env.Record.HasBinding(name) {
			return Reference{BaseEnv: env.Record, Name: name, Strict: strict, HasEnv: true}
		}
	}
	return Reference{Name: name, Strict: strict, Unresolved: true}
}

// NewDeclarativeEnvironment allocates a fresh declarative lexical
// environment chained onto outer — the shape every function call and
// catch clause uses.
func NewDeclarativeEnvironment(outer *LexicalEnvironment) *LexicalEnvironment {
	return NewLexicalEnvironment(NewDeclarativeEnvironmentRecord(), outer)
}

// NewObjectEnvironment allocates a fresh object lexical environment
// chained onto outer, used by `with` (§4.3.1).
func NewObjectEnvironment(vm *VM, obj value.Value, outer *LexicalEnvironment, provideThis bool) *LexicalEnvironment {
	return NewLexicalEnvironment(NewObjectEnvironmentRecord(vm, obj, provideThis), outer)
}
