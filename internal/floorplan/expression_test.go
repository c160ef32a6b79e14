package floorplan

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// parse builds an expression from "0 1 * 2 +" style tokens.
func parse(t *testing.T, tokens ...string) Expression {
	t.Helper()

	var e Expression
	for _, tok := range tokens {
		switch tok {
		case "+":
			e = append(e, Operator(Horizontal))
		case "*":
			e = append(e, Operator(Vertical))
		default:
			if len(tok) != 1 || tok[0] < '0' || tok[0] > '9' {
				t.Fatalf("bad token %q", tok)
			}
			e = append(e, Operand(int(tok[0]-'0')))
		}
	}
	return e
}

func TestInitial(t *testing.T) {
	for n := 1; n <= 10; n++ {
		e := Initial(n)
		if err := e.Validate(n); err != nil {
			t.Errorf("Initial(%d) = %s, Validate() error = %v", n, e, err)
		}
	}

	if got := Initial(4).String(); got != "0 1 * 2 * 3 *" {
		t.Errorf("Initial(4) = %q, want %q", got, "0 1 * 2 * 3 *")
	}
	if e := Initial(0); e != nil {
		t.Errorf("Initial(0) = %v, want nil", e)
	}
}

func TestExpression_Validate(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		n      int
		valid  bool
	}{
		{"single module", []string{"0"}, 1, true},
		{"chain", []string{"0", "1", "*", "2", "+"}, 3, true},
		{"alternating run", []string{"0", "1", "2", "*", "+"}, 3, true},
		{"repeated operator", []string{"0", "1", "2", "*", "*"}, 3, false},
		{"balloting", []string{"0", "*", "1", "2", "+"}, 3, false},
		{"duplicate operand", []string{"0", "0", "*"}, 2, false},
		{"operand out of range", []string{"0", "2", "*"}, 2, false},
		{"too short", []string{"0", "1"}, 2, false},
		{"no modules", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parse(t, tt.tokens...).Validate(tt.n)
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("Validate() error = %v, want ErrInvalidExpression", err)
			}
		})
	}
}

func TestExpression_Validate_UnknownOperator(t *testing.T) {
	e := Expression{Operand(0), Operand(1), Operator('/')}
	if err := e.Validate(2); !errors.Is(err, ErrInvalidExpression) {
		t.Errorf("Validate() error = %v, want ErrInvalidExpression", err)
	}
}

func TestExpression_Format(t *testing.T) {
	modules := []Module{{Name: 10}, {Name: 20}, {Name: 30}}
	e := parse(t, "2", "0", "+", "1", "*")

	if got, want := e.Format(modules), "30 10 + 20 *"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got, want := e.String(), "2 0 + 1 *"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// operatorLayout returns the operator positions of e.
func operatorLayout(e Expression) []bool {
	layout := make([]bool, len(e))
	for i, el := range e {
		layout[i] = el.IsOperator()
	}
	return layout
}

func equalLayout(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpression_SwapOperands(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	e := parse(t, "0", "1", "*", "2", "+", "3", "*")
	before := e.Clone()

	if !e.SwapOperands(rng) {
		t.Fatal("SwapOperands() = false, want true")
	}
	if err := e.Validate(4); err != nil {
		t.Fatalf("after SwapOperands %s: %v", e, err)
	}
	if !equalLayout(operatorLayout(e), operatorLayout(before)) {
		t.Errorf("SwapOperands moved operators: %s -> %s", before, e)
	}
	for i := range e {
		if e[i].IsOperator() && e[i] != before[i] {
			t.Errorf("SwapOperands changed operator at %d: %s -> %s", i, before, e)
		}
	}
	if e.String() == before.String() {
		t.Errorf("SwapOperands left %s unchanged", e)
	}
}

func TestExpression_SwapOperands_SingleModule(t *testing.T) {
	e := Initial(1)
	if e.SwapOperands(rand.New(rand.NewPCG(1, 1))) {
		t.Error("SwapOperands() = true for one module, want false")
	}
}

func TestExpression_ComplementChain(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	e := parse(t, "0", "1", "2", "*", "+", "3", "*")
	before := e.Clone()

	if !e.ComplementChain(rng) {
		t.Fatal("ComplementChain() = false, want true")
	}
	if err := e.Validate(4); err != nil {
		t.Fatalf("after ComplementChain %s: %v", e, err)
	}

	// Either the "* +" run or the trailing "*" flips, and nothing else
	got := e.String()
	if got != "0 1 2 + * 3 *" && got != "0 1 2 * + 3 +" {
		t.Errorf("ComplementChain(%s) = %s, want one chain flipped", before, got)
	}
}

func TestExpression_SwapOperandOperator(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	e := parse(t, "0", "1", "*", "2", "+")
	before := e.Clone()

	if !e.SwapOperandOperator(rng) {
		t.Fatal("SwapOperandOperator() = false, want true")
	}
	if err := e.Validate(3); err != nil {
		t.Fatalf("after SwapOperandOperator %s: %v", e, err)
	}
	if equalLayout(operatorLayout(e), operatorLayout(before)) {
		t.Errorf("SwapOperandOperator(%s) = %s, want operator moved", before, e)
	}
}

func TestExpression_SwapOperandOperator_NoLegalMove(t *testing.T) {
	// Every operand/operator swap breaks balloting or normalization
	e := parse(t, "0", "1", "*")
	if e.SwapOperandOperator(rand.New(rand.NewPCG(1, 1))) {
		t.Errorf("SwapOperandOperator() = true, expression now %s", e)
	}
	if got := e.String(); got != "0 1 *" {
		t.Errorf("expression = %q after failed move, want unchanged", got)
	}
}

func TestExpression_Perturb_StaysNormalized(t *testing.T) {
	rng := rand.New(rand.NewPCG(12345, 67890))

	for _, n := range []int{2, 3, 8, 20} {
		e := Initial(n)
		for i := 0; i < 2000; i++ {
			next := e.Perturb(rng)
			if err := next.Validate(n); err != nil {
				t.Fatalf("n=%d move %d: %s -> %s: %v", n, i, e, next, err)
			}
			e = next
		}
	}
}

func TestExpression_Perturb_CopiesInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	e := Initial(6)
	before := e.String()

	for i := 0; i < 100; i++ {
		_ = e.Perturb(rng)
	}
	if e.String() != before {
		t.Errorf("Perturb modified its receiver: %s -> %s", before, e)
	}
}
