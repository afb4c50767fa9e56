package interp

import (
	"bytes"
	"testing"
)

// runSource runs source to completion and returns its stdout, failing the
// test on a parse error or an uncaught exception.
func runSource(t *testing.T, source string) string {
	t.Helper()
	in := New()
	var buf bytes.Buffer
	in.VM.Output = &buf
	if _, err := in.RunSource(source, "<test>"); err != nil {
		t.Fatalf("running %q: %v", source, err)
	}
	return buf.String()
}

// runSourceErr runs source and returns the error RunSource produced,
// failing the test if none was produced.
func runSourceErr(t *testing.T, source string) error {
	t.Helper()
	in := New()
	var buf bytes.Buffer
	in.VM.Output = &buf
	_, err := in.RunSource(source, "<test>")
	if err == nil {
		t.Fatalf("expected an error running %q, got none (output: %q)", source, buf.String())
	}
	return err
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		script   string
		expected string
	}{
		{"print(1 + 2);", "3\n"},
		{"print(10 - 3 * 2);", "4\n"},
		{"print(10 / 4);", "2.5\n"},
		{"print(10 % 3);", "1\n"},
		{"print(2 + '2');", "22\n"},
		{"print('a' + 'b');", "ab\n"},
		{"print(1 == '1');", "true\n"},
		{"print(1 === '1');", "false\n"},
		{"print(-5 + 3);", "-2\n"},
		{"print(~5);", "-6\n"},
		{"print(1 << 3);", "8\n"},
		{"print(!0);", "true\n"},
	}
	for _, tt := range tests {
		if got := runSource(t, tt.script); got != tt.expected {
			t.Errorf("script %q: expected %q, got %q", tt.script, tt.expected, got)
		}
	}
}

func TestVariablesAndAssignment(t *testing.T) {
	script := `
var x = 1;
x = x + 1;
var y = x;
print(x, y);
`
	if got := runSource(t, script); got != "2 2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestIfElse(t *testing.T) {
	script := `
var x = 5;
if (x > 3) {
	print('big');
} else {
	print('small');
}
`
	if got := runSource(t, script); got != "big\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWhileLoopWithBreakContinue(t *testing.T) {
	script := `
var i = 0;
var sum = 0;
while (i < 10) {
	i = i + 1;
	if (i % 2 === 0) continue;
	if (i > 7) break;
	sum = sum + i;
}
print(sum);
`
	// 1 + 3 + 5 + 7 = 16
	if got := runSource(t, script); got != "16\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForLoop(t *testing.T) {
	script := `
var sum = 0;
for (var i = 0; i < 5; i = i + 1) {
	sum = sum + i;
}
print(sum);
`
	if got := runSource(t, script); got != "10\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForInOverOwnAndInheritedProperties(t *testing.T) {
	script := `
function Base() {}
Base.prototype.inherited = 1;
var o = new Base();
o.own = 2;
var keys = [];
for (var k in o) {
	keys.push(k);
}
print(keys.sort().join(','));
`
	if got := runSource(t, script); got != "inherited,own\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForInSkipsPropertyShadowedByNonEnumerableOwnProperty(t *testing.T) {
	script := `
var b = {x: 3};
var a = Object.create(b);
Object.defineProperty(a, 'x', {value: 1, enumerable: false});
var keys = [];
for (var k in a) {
	keys.push(k);
}
print(keys.indexOf('x'));
`
	if got := runSource(t, script); got != "-1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLabeledBreak(t *testing.T) {
	script := `
var found = '';
outer:
for (var i = 0; i < 3; i = i + 1) {
	for (var j = 0; j < 3; j = j + 1) {
		if (i === 1 && j === 1) {
			found = i + ',' + j;
			break outer;
		}
	}
}
print(found);
`
	if got := runSource(t, script); got != "1,1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSwitchFallthrough(t *testing.T) {
	script := `
function classify(n) {
	var out = '';
	switch (n) {
	case 1:
	case 2:
		out = out + 'low';
		break;
	case 3:
		out = out + 'mid';
	default:
		out = out + 'default';
	}
	return out;
}
print(classify(1));
print(classify(2));
print(classify(3));
print(classify(9));
`
	if got := runSource(t, script); got != "low\nlow\nmiddefault\ndefault\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFunctionClosures(t *testing.T) {
	script := `
function makeCounter() {
	var count = 0;
	return function() {
		count = count + 1;
		return count;
	};
}
var c1 = makeCounter();
var c2 = makeCounter();
print(c1(), c1(), c1(), c2());
`
	if got := runSource(t, script); got != "1 2 3 1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRecursion(t *testing.T) {
	script := `
function fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
print(fib(10));
`
	if got := runSource(t, script); got != "55\n" {
		t.Fatalf("got %q", got)
	}
}

func TestConstructorsAndPrototypes(t *testing.T) {
	script := `
function Point(x, y) {
	this.x = x;
	this.y = y;
}
Point.prototype.sum = function() {
	return this.x + this.y;
};
var p = new Point(3, 4);
print(p.sum(), p instanceof Point);
`
	if got := runSource(t, script); got != "7 true\n" {
		t.Fatalf("got %q", got)
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	script := `
var o = { a: 1, b: 2 };
var arr = [1, 2, 3];
print(o.a + o.b, arr.length, arr[1]);
`
	if got := runSource(t, script); got != "3 3 2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTryCatchFinallyOrdering(t *testing.T) {
	script := `
var log = [];
function run() {
	try {
		log.push('try');
		throw 'boom';
	} catch (e) {
		log.push('catch:' + e);
		return 'from-catch';
	} finally {
		log.push('finally');
	}
}
var result = run();
log.push('result:' + result);
print(log.join(','));
`
	if got := runSource(t, script); got != "try,catch:boom,finally,result:from-catch\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFinallyRunsBeforeReturnCompletes(t *testing.T) {
	script := `
function run() {
	try {
		return 'try';
	} finally {
		print('cleanup');
	}
}
print(run());
`
	if got := runSource(t, script); got != "cleanup\ntry\n" {
		t.Fatalf("got %q", got)
	}
}

func TestUncaughtThrowIsReportedAsError(t *testing.T) {
	err := runSourceErr(t, "throw new Error('boom');")
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestTypeofAndVoid(t *testing.T) {
	script := `
print(typeof 1, typeof 'a', typeof true, typeof undefined, typeof {}, typeof print);
print(void 0);
`
	if got := runSource(t, script); got != "number string boolean undefined object function\nundefined\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEqualityCoercion(t *testing.T) {
	script := `
print(null == undefined);
print(null === undefined);
print(NaN === NaN);
print(0 === -0);
`
	if got := runSource(t, script); got != "true\nfalse\nfalse\ntrue\n" {
		t.Fatalf("got %q", got)
	}
}
