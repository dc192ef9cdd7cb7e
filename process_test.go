package thirdvm

import "testing"

func mustFind(t *testing.T, vm *VM, name string) uint32 {
	t.Helper()
	id, ok := vm.Dictionary().Find(name)
	if !ok {
		t.Fatalf("primitive %q not registered", name)
	}
	return id
}

// TestProcessLiteralRoundTrip covers the "a literal pushed by the compiler
// comes back out unchanged" invariant: a word whose body is just [0, n,
// return] pushes exactly n when called.
func TestProcessLiteralRoundTrip(t *testing.T) {
	vm := New()
	retID := mustFind(t, vm, "return")

	start := vm.Code().Size()
	vm.Code().Emit(0)
	vm.Code().Emit(0xCAFEBABE)
	vm.Code().Emit(retID)
	id := vm.Dictionary().AddInterpreted("lit-test", start)

	p := vm.NewProcess()
	p.runCall(id)

	if p.Signal().Kind != SignalNone {
		t.Fatalf("unexpected signal: %v", p.Signal())
	}
	if got := p.Pop(); got.U32() != 0xCAFEBABE {
		t.Errorf("Pop() = %#x, want %#x", got.U32(), uint32(0xCAFEBABE))
	}
}

// TestProcessStackBalanceAfterCompletedCall: calling a word whose body is
// dup + (one value in, one value out) leaves the value stack depth
// unchanged, with no leftover return frames.
func TestProcessStackBalanceAfterCompletedCall(t *testing.T) {
	vm := New()
	retID := mustFind(t, vm, "return")
	dupID := mustFind(t, vm, "dup")
	addID := mustFind(t, vm, "+")

	start := vm.Code().Size()
	vm.Code().Emit(dupID)
	vm.Code().Emit(addID)
	vm.Code().Emit(retID)
	id := vm.Dictionary().AddInterpreted("double", start)

	p := vm.NewProcess()
	p.Push(I32Value(21))
	p.runCall(id)

	if p.ReturnStackDepth() != 0 {
		t.Fatalf("ReturnStackDepth() = %d, want 0 after completed call", p.ReturnStackDepth())
	}
	if p.ValueStackDepth() != 1 {
		t.Fatalf("ValueStackDepth() = %d, want 1", p.ValueStackDepth())
	}
	if got := p.Pop().I32(); got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
}

// TestProcessLocalFrameBalance: a word declaring two locals returns the
// local stack to its pre-call depth once it returns.
func TestProcessLocalFrameBalance(t *testing.T) {
	vm := New()
	retID := mustFind(t, vm, "return")

	start := vm.Code().Size()
	vm.Code().Emit(retID)
	id := vm.Dictionary().AddInterpreted("locals-test", start)
	vm.Dictionary().SetLocalCount(id, 2)

	p := vm.NewProcess()
	before := len(p.localStack)
	p.runCall(id)
	if after := len(p.localStack); after != before {
		t.Errorf("local stack depth = %d after return, want %d", after, before)
	}
}

// TestProcessSignalIdempotence: step is a no-op once a signal is set, per
// the signal-idempotence invariant.
func TestProcessSignalIdempotence(t *testing.T) {
	vm := New()
	p := vm.NewProcess()
	p.emitSignal(Signal{Kind: SignalException, Code: ExcDivideByZero})

	wpBefore, depthBefore := p.wp, p.ValueStackDepth()
	p.step()
	if p.wp != wpBefore {
		t.Errorf("wp changed from %d to %d across a no-op step", wpBefore, p.wp)
	}
	if p.ValueStackDepth() != depthBefore {
		t.Errorf("value stack depth changed across a no-op step")
	}
	if p.Signal().Kind != SignalException {
		t.Errorf("signal was cleared by step(): %v", p.Signal())
	}
}

// TestProcessBranchIfPositioning exercises ?branch's wp-after-step contract
// for both polarities: jump-taken lands exactly on the target cell, and
// fallthrough lands on the cell right after the branch instruction.
func TestProcessBranchIfPositioning(t *testing.T) {
	vm := New()
	branchIfID := mustFind(t, vm, "?branch")

	run := func(cond int32) (wp, start uint32) {
		p := vm.NewProcess()
		start = vm.Code().Size()
		vm.Code().Emit(branchIfID)
		vm.Code().Emit(0xFEED) // sentinel fallthrough cell, never dispatched
		p.wp = start
		p.Push(I32Value(cond))
		p.Push(I32Value(999)) // target address
		p.step()
		return p.wp, start
	}

	if got, _ := run(1); got != 999 {
		t.Errorf("cond!=0: wp = %d, want 999 (branch taken)", got)
	}
	if got, start := run(0); got != start+1 {
		t.Errorf("cond==0: wp = %d, want %d (fallthrough)", got, start+1)
	}
}

// TestProcessStackManipOnEmptyStack covers the boundary behavior of dup,
// drop, and swap against an empty value stack: each raises
// ValueStackUnderflow without panicking or corrupting the (empty) stack.
func TestProcessStackManipOnEmptyStack(t *testing.T) {
	vm := New()
	for _, name := range []string{"dup", "drop", "swap"} {
		t.Run(name, func(t *testing.T) {
			p := vm.NewProcess()
			id := mustFind(t, vm, name)
			p.runCall(id)
			if p.Signal().Kind != SignalValueStackUnderflow {
				t.Errorf("%s on empty stack: signal = %v, want ValueStackUnderflow", name, p.Signal())
			}
			if p.ValueStackDepth() != 0 {
				t.Errorf("%s on empty stack left depth %d, want 0", name, p.ValueStackDepth())
			}
		})
	}
}
