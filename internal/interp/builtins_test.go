package interp

import "testing"

func TestStringPrototypeMethods(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print('hello'.length);", "5\n"},
		{"print('hello'.charAt(1));", "e\n"},
		{"print('hello'.indexOf('l'));", "2\n"},
		{"print('hello'.indexOf('z'));", "-1\n"},
		{"print('Hello'.toUpperCase());", "HELLO\n"},
		{"print('Hello'.toLowerCase());", "hello\n"},
		{"print('  hi  '.trim());", "hi\n"},
		{"print('a,b,c'.split(',').join('-'));", "a-b-c\n"},
		{"print('hello'.substring(1, 3));", "el\n"},
		{"print('hello'.slice(-3));", "llo\n"},
		{"print('ab' + 'cd');", "abcd\n"},
		{"print(String(42));", "42\n"},
		{"print(String.fromCharCode(65, 66, 67));", "ABC\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestNumberPrototypeMethods(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print((255).toString(16));", "ff\n"},
		{"print((3.14159).toFixed(2));", "3.14\n"},
		{"print(Number('42'));", "42\n"},
		{"print(Number('abc'));", "NaN\n"},
		{"print(Number.MAX_VALUE > 0);", "true\n"},
		{"print(parseInt('42px'));", "42\n"},
		{"print(parseFloat('3.14abc'));", "3.14\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestArrayPrototypeMethods(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print([1,2,3].length);", "3\n"},
		{"print([1,2,3].join('-'));", "1-2-3\n"},
		{"var a=[1,2,3]; a.push(4); print(a.join(','));", "1,2,3,4\n"},
		{"var a=[1,2,3]; print(a.pop(), a.join(','));", "3 1,2\n"},
		{"print([3,1,2].sort().join(','));", "1,2,3\n"},
		{"print([1,2,3].reverse().join(','));", "3,2,1\n"},
		{"print([1,2,3].map(function(x){return x*2;}).join(','));", "2,4,6\n"},
		{"print([1,2,3,4].filter(function(x){return x%2===0;}).join(','));", "2,4\n"},
		{"print([1,2,3].reduce(function(a,b){return a+b;}, 0));", "6\n"},
		{"print([1,2,3].indexOf(2));", "1\n"},
		{"print(Array.isArray([1,2]), Array.isArray({}));", "true false\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestMathNamespace(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print(Math.abs(-5));", "5\n"},
		{"print(Math.floor(3.7));", "3\n"},
		{"print(Math.ceil(3.2));", "4\n"},
		{"print(Math.round(-0.5));", "0\n"},
		{"print(Math.max(1, 5, 3));", "5\n"},
		{"print(Math.min(1, 5, 3));", "1\n"},
		{"print(Math.pow(2, 10));", "1024\n"},
		{"print(Math.sqrt(16));", "4\n"},
		{"var r = Math.random(); print(r >= 0 && r < 1);", "true\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestObjectReflection(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print(Object.keys({a:1, b:2}).sort().join(','));", "a,b\n"},
		{"var o = {}; Object.defineProperty(o, 'x', {value: 1, enumerable: false}); print(o.x, Object.keys(o).length);", "1 0\n"},
		{"print({}.hasOwnProperty('toString'));", "false\n"},
		{"print(Object.prototype.hasOwnProperty.call({}, 'toString'));", "false\n"},
		{"var p = {greet: function(){return 'hi';}}; var o = Object.create(p); print(o.greet());", "hi\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestBooleanAndErrorBuiltins(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print(Boolean(0), Boolean(1), Boolean(''), Boolean('a'));", "false true false true\n"},
		{"print(new Boolean(true).valueOf());", "true\n"},
		{"print(new Error('oops').message);", "oops\n"},
		{"print(new TypeError('bad').name);", "TypeError\n"},
		{"print(new Error('oops').toString());", "Error: oops\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestStrictAssignmentToNonConfigurableArrayElementThrows(t *testing.T) {
	script := `
"use strict";
var a = [1, 2, 3];
Object.defineProperty(a, '2', {value: 3, configurable: false});
var threw = false;
try {
	a.length = 0;
} catch (e) {
	threw = (e.name === 'TypeError');
}
print(threw, a.length);
`
	if got := runSource(t, script); got != "true 3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestArrayPushPastNonWritableLengthThrows(t *testing.T) {
	script := `
var a = [];
Object.defineProperty(a, 'length', {writable: false});
var threw = false;
try {
	a.push(1);
} catch (e) {
	threw = (e.name === 'TypeError');
}
print(threw, a.length);
`
	if got := runSource(t, script); got != "true 0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSloppyAssignmentToNonWritablePropertyIsSilentlyIgnored(t *testing.T) {
	script := `
var o = {};
Object.defineProperty(o, 'x', {value: 1, writable: false, configurable: false});
o.x = 2;
print(o.x);
`
	if got := runSource(t, script); got != "1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestThrowAndCatchNativeErrors(t *testing.T) {
	script := `
var caught = null;
try {
	null.foo;
} catch (e) {
	caught = e.name;
}
print(caught);
`
	if got := runSource(t, script); got != "TypeError\n" {
		t.Fatalf("got %q", got)
	}
}
