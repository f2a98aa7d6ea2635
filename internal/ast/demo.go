package ast

// Demo assembles a small sample program using the fluent builders above:
// a global integer array, a sum function taking an array reference and its
// length, and a main that fills the array from input and prints the sum.
// It exists to give the CLI and the test suites a nontrivial, hand-built
// tree to drive through both compiler passes without a parser.
//
//	int x[10];
//
//	int sum(int a[], int n) {
//	    int i;
//	    int total;
//	    i = 0;
//	    total = 0;
//	    while (i < n) {
//	        total = total + a[i];
//	        i = i + 1;
//	    }
//	    return total;
//	}
//
//	void main(void) {
//	    int i;
//	    i = 0;
//	    while (i < 10) {
//	        x[i] = input();
//	        i = i + 1;
//	    }
//	    output(sum(x, 10));
//	}
func Demo() *Node {
	arrayDecl := Array(1, Integer, "x", 10)

	sumParams := Append(
		ParamArray(3, Integer, "a"),
		Param(3, Integer, "n"),
	)
	sumLocals := Append(Var(4, Integer, "i"), Var(5, Integer, "total"))
	sumBody := CompoundOf(4, sumLocals,
		Append(
			Assign(6, IdUse(6, "i"), NewConst(6, 0)),
			Append(
				Assign(7, IdUse(7, "total"), NewConst(7, 0)),
				Append(
					While(8, BinOp(8, "<", IdUse(8, "i"), IdUse(8, "n")),
						CompoundOf(8, nil,
							Append(
								Assign(9, IdUse(9, "total"), BinOp(9, "+", IdUse(9, "total"), Index(9, "a", IdUse(9, "i")))),
								Assign(10, IdUse(10, "i"), BinOp(10, "+", IdUse(10, "i"), NewConst(10, 1))),
							),
						),
					),
					ReturnExpr(12, IdUse(12, "total")),
				),
			),
		),
	)
	sumFunc := Func(3, Integer, "sum", sumParams, sumBody)

	mainLocals := Var(15, Integer, "i")
	mainBody := CompoundOf(15, mainLocals,
		Append(
			Assign(16, IdUse(16, "i"), NewConst(16, 0)),
			Append(
				While(17, BinOp(17, "<", IdUse(17, "i"), NewConst(17, 10)),
					CompoundOf(17, nil,
						Append(
							Assign(18, Index(18, "x", IdUse(18, "i")), Call(18, "input", nil)),
							Assign(19, IdUse(19, "i"), BinOp(19, "+", IdUse(19, "i"), NewConst(19, 1))),
						),
					),
				),
				Call(21, "output", Call(21, "sum", Append(IdUse(21, "x"), NewConst(21, 10)))),
			),
		),
	)
	mainFunc := Func(15, Void, "main", nil, mainBody)

	return Append(arrayDecl, Append(sumFunc, mainFunc))
}

// DemoBroken builds a program with two intentional semantic errors — a Void
// local and a reference to an undeclared variable — so the CLI and test
// suites have something to exercise the diagnostic path against. The type
// checker adds a third diagnostic, a type inconsistance on the assignment
// (Void target, Integer recovery type for the undeclared name).
//
//	void main(void) {
//	    void v;
//	    v = missing;
//	}
func DemoBroken() *Node {
	body := CompoundOf(1, Var(1, Void, "v"),
		Assign(2, IdUse(2, "v"), IdUse(2, "missing")),
	)
	return Func(1, Void, "main", nil, body)
}
