package factor

import (
	"context"
	"testing"

	"github.com/cespare/satdag"
	"github.com/cespare/satdag/cnf"
)

func TestFactorizeComposite(t *testing.T) {
	result, ok, err := Factorize(context.Background(), 15, satdag.Options{Mode: cnf.FLO})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected 15 to factor")
	}
	if result.A*result.B != 15 {
		t.Fatalf("got %d*%d, want product 15", result.A, result.B)
	}
	if result.A <= 1 || result.B <= 1 {
		t.Fatalf("got trivial factor in %+v", result)
	}
}

func TestFactorizePrimeIsUnsat(t *testing.T) {
	_, ok, err := Factorize(context.Background(), 13, satdag.Options{Mode: cnf.FLO})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected prime 13 to have no nontrivial factorization")
	}
}

func TestFactorizeSmallIsUnsat(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3} {
		_, ok, err := Factorize(context.Background(), n, satdag.Options{Mode: cnf.FLO})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if ok {
			t.Errorf("n=%d: expected no nontrivial factorization", n)
		}
	}
}
