package thirdvm

import (
	"fmt"

	"github.com/thirdvm/thirdvm/internal/runeio"
)

// registerPrimitives binds every non-terminal primitive from spec §4.6.
// return must be added first so it receives id 1 (Dictionary.AddNative
// assigns ids sequentially); lit.i32 is added next so id 2 is stable but is
// not otherwise load-bearing.
func registerPrimitives(vm *VM) {
	d := &vm.dict

	d.AddNative("return", primReturn, false)
	d.AddNative("lit.i32", primLitI32, false)

	d.AddNative("#", primCallIndirect, false)
	d.AddNative("branch", primBranch, false)
	d.AddNative("?branch", primBranchIf, false)

	d.AddNative("+", primAdd, false)
	d.AddNative("-", primSub, false)
	d.AddNative("*", primMul, false)
	d.AddNative("/", primDiv, false)
	d.AddNative("%", primMod, false)

	d.AddNative("==", primEq, false)
	d.AddNative("=/=", primNeq, false)
	d.AddNative(">", primGt, false)
	d.AddNative("<", primLt, false)
	d.AddNative(">=", primGe, false)
	d.AddNative("<=", primLe, false)

	d.AddNative("not", primNot, false)
	d.AddNative("and", primAnd, false)
	d.AddNative("or", primOr, false)

	d.AddNative("dup", primDup, false)
	d.AddNative("drop", primDrop, false)
	d.AddNative("swap", primSwap, false)

	d.AddNative(".", primPrintI32, false)
	d.AddNative(".c", primPrintChar, false)

	d.AddNative("v&", primVPtr, false)
	d.AddNative("r&", primRPtr, false)
	d.AddNative("w&", primWPtr, false)
	d.AddNative("cd&", primCDPtr, false)

	d.AddNative("v@", primVFetch, false)
	d.AddNative("r@", primRFetch, false)
	d.AddNative("w@", primWFetch, false)
	d.AddNative("cd@", primCDFetch, false)
	d.AddNative("l@", primLFetch, false)

	d.AddNative("v!", primVStore, false)
	d.AddNative("r!", primRStore, false)
	d.AddNative("w!", primWStore, false)
	d.AddNative("cd!", primCDStore, false)
	d.AddNative("l!", primLStore, false)

	d.AddNative("code.size", primCodeSize, false)
	d.AddNative("w>", primEmitWord, false)
	d.AddNative("cd>", primEmitConstData, false)
	d.AddNative("e>", primEmitException, false)

	d.AddNative("bye", primBye, false)
	d.AddNative("exit", primExit, false)
	d.AddNative(".s", primShowStack, false)
	d.AddNative("deb.set", primSetDebug, false)

	d.AddNative("catch", primCatch, false)
}

func boolNeg1(b bool) int32 {
	if b {
		return -1
	}
	return 0
}

// Control & literals.

func primReturn(p *Process) { p.setRet() }

func primLitI32(p *Process) {
	v := p.fetch()
	p.Push(I32Value(int32(v)))
}

func primCallIndirect(p *Process) {
	idv, ok := p.pop1()
	if !ok {
		return
	}
	id := idv.U32()
	if id >= p.vm.dict.Len() {
		p.emitSignal(Signal{Kind: SignalWordIDOutOfRange, Code: id})
		return
	}
	fn := p.vm.dict.At(id)
	if fn.IsNative() {
		fn.Native(p)
		return
	}
	if fn.Start < 0 {
		p.emitSignal(Signal{Kind: SignalWordNotImplemented, Code: id})
		return
	}
	p.setCall(id)
	p.wp--
}

func primBranch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.setBranch(addr.U32() - 1)
}

func primBranchIf(p *Process) {
	// (cond addr --): addr is pushed last (on top, popped first).
	cond, addr, ok := p.popPair()
	if !ok {
		return
	}
	if cond.I32() != 0 {
		p.setBranch(addr.U32() - 1)
	}
}

// Arithmetic & logic.

func primAdd(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(a.I32() + b.I32()))
}

func primSub(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(a.I32() - b.I32()))
}

func primMul(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(a.I32() * b.I32()))
}

func primDiv(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	if b.I32() == 0 {
		p.emitSignal(Signal{Kind: SignalException, Code: ExcDivideByZero})
		return
	}
	p.Push(I32Value(a.I32() / b.I32()))
}

func primMod(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	if b.I32() == 0 {
		p.emitSignal(Signal{Kind: SignalException, Code: ExcDivideByZero})
		return
	}
	p.Push(I32Value(a.I32() % b.I32()))
}

func primEq(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() == b.I32())))
}

func primNeq(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() != b.I32())))
}

func primGt(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() > b.I32())))
}

func primLt(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() < b.I32())))
}

func primGe(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() >= b.I32())))
}

func primLe(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(I32Value(boolNeg1(a.I32() <= b.I32())))
}

func primNot(p *Process) {
	a, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(U32Value(^a.U32()))
}

func primAnd(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(U32Value(a.U32() & b.U32()))
}

func primOr(p *Process) {
	a, b, ok := p.popPair()
	if !ok {
		return
	}
	p.Push(U32Value(a.U32() | b.U32()))
}

// Stack manipulation.

func primDup(p *Process) {
	n := len(p.valueStack)
	if n == 0 {
		p.emitSignal(Signal{Kind: SignalValueStackUnderflow})
		return
	}
	p.Push(p.valueStack[n-1])
}

func primDrop(p *Process) {
	p.Pop()
}

func primSwap(p *Process) {
	b, ok := p.pop1()
	if !ok {
		return
	}
	a, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(b)
	p.Push(a)
}

// I/O.

func primPrintI32(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	fmt.Fprintf(p.vm.stdout, "%d\n", v.I32())
}

func primPrintChar(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	runeio.WriteANSIRune(p.vm.stdout, rune(v.I32()))
}

// Introspection/mutation of the five conceptual arrays: value stack (V),
// return stack (R, addressing the caller-IP field of each frame), code
// segment (W), const-data segment (CD), local stack (L, relative to lp).

func primVPtr(p *Process) { p.Push(I32Value(int32(len(p.valueStack)) - 1)) }

func primVFetch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(p.valueStack[addr.I32()])
}

func primVStore(p *Process) {
	// (value addr --): addr is popped first (on top).
	val, addr, ok := p.popPair()
	if !ok {
		return
	}
	p.valueStack[addr.I32()] = val
}

func primRPtr(p *Process) { p.Push(I32Value(int32(len(p.returnStack)) - 1)) }

func primRFetch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(I32Value(int32(p.returnStack[addr.I32()].IP)))
}

func primRStore(p *Process) {
	val, addr, ok := p.popPair()
	if !ok {
		return
	}
	p.returnStack[addr.I32()].IP = val.U32()
}

func primWPtr(p *Process) { p.Push(I32Value(int32(p.vm.code.Size()) - 1)) }

func primWFetch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(U32Value(p.vm.code.Fetch(addr.U32())))
}

func primWStore(p *Process) {
	val, addr, ok := p.popPair()
	if !ok {
		return
	}
	p.vm.code.Store(addr.U32(), val.U32())
}

func primCDPtr(p *Process) { p.Push(I32Value(int32(p.vm.constData.Size()) - 1)) }

func primCDFetch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(p.vm.constData.Fetch(addr.U32()))
}

func primCDStore(p *Process) {
	val, addr, ok := p.popPair()
	if !ok {
		return
	}
	p.vm.constData.Store(addr.U32(), val)
}

func primLFetch(p *Process) {
	addr, ok := p.pop1()
	if !ok {
		return
	}
	p.Push(p.localStack[int32(p.lp)+addr.I32()])
}

func primLStore(p *Process) {
	val, addr, ok := p.popPair()
	if !ok {
		return
	}
	p.localStack[int32(p.lp)+addr.I32()] = val
}

// Code-emission primitives used by the compiler.

func primCodeSize(p *Process) { p.Push(I32Value(int32(p.vm.code.Size()))) }

func primEmitWord(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	p.vm.code.Emit(v.U32())
}

func primEmitConstData(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	p.vm.constData.Emit(v)
}

func primEmitException(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	p.emitSignal(Signal{Kind: SignalException, Code: v.U32()})
}

// Miscellaneous.

func primBye(p *Process) { p.emitSignal(Signal{Kind: SignalExit}) }

func primExit(p *Process) {
	n, ok := p.pop1()
	if !ok {
		return
	}
	p.emitSignal(Signal{Kind: SignalExit, Code: n.U32()})
}

func primShowStack(p *Process) {
	for i, v := range p.valueStack {
		fmt.Fprintf(p.vm.stdout, "s@%d -- %#x\n", i, v.U32())
	}
}

func primSetDebug(p *Process) {
	v, ok := p.pop1()
	if !ok {
		return
	}
	p.vm.debug = v.U32() != 0
}

// catch runs a word via run_call and reports whether it raised an
// Exception, clearing the signal if so. (id -- ok), ok is -1 on a clean
// return and 0 if an Exception was caught. Other signal kinds (Exit,
// WordIdOutOfRange, WordNotImplemented, ValueStackUnderflow) propagate
// uncaught, since they are not "exceptional results" a word can be
// expected to guard against the way it guards against its own raised
// Exceptions.
func primCatch(p *Process) {
	idv, ok := p.pop1()
	if !ok {
		return
	}
	rsPos, wp, lp, lsPos := len(p.returnStack), p.wp, p.lp, len(p.localStack)
	p.runCall(idv.U32())
	if p.sig.Kind == SignalException {
		p.ClearSignal()
		p.returnStack = p.returnStack[:rsPos]
		p.wp, p.lp, p.localStack = wp, lp, p.localStack[:lsPos]
		p.Push(I32Value(0))
		return
	}
	if p.sig.Kind == SignalNone {
		p.Push(I32Value(-1))
	}
}
