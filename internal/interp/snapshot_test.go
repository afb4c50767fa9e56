package interp

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestProgramOutputSnapshots runs a handful of representative programs and
// snapshots their stdout, catching incidental output-format regressions
// that exact string comparisons in interp_test.go would need updating by
// hand for every wording change.
func TestProgramOutputSnapshots(t *testing.T) {
	programs := map[string]string{
		"fibonacci": `
function fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
for (var i = 0; i < 10; i = i + 1) {
	print(fib(i));
}
`,
		"prototype_chain": `
function Animal(name) {
	this.name = name;
}
Animal.prototype.speak = function() {
	return this.name + ' makes a sound.';
};
function Dog(name) {
	Animal.call(this, name);
}
Dog.prototype = Object.create(Animal.prototype);
Dog.prototype.speak = function() {
	return this.name + ' barks.';
};
var pets = [new Animal('Cat'), new Dog('Rex')];
for (var i = 0; i < pets.length; i = i + 1) {
	print(pets[i].speak());
}
`,
		"array_pipeline": `
var nums = [1, 2, 3, 4, 5, 6, 7, 8, 9, 10];
var evens = nums.filter(function(n) { return n % 2 === 0; });
var squares = evens.map(function(n) { return n * n; });
var total = squares.reduce(function(a, b) { return a + b; }, 0);
print(squares.join(','));
print(total);
`,
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			out := runSource(t, src)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", name), out)
		})
	}
}
