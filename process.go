package thirdvm

import "fmt"

// RetEntry is one return-stack frame: the caller's word id, the caller's
// instruction pointer to resume at, the caller's saved local-stack base,
// and an optional catch marker. Nothing in this package sets or reads
// Catch; the catch primitive restores the caller's state on its own.
type RetEntry struct {
	Word  uint32
	IP    uint32
	LP    uint32
	Catch bool
}

// Process is an execution context over the VM's dictionary and segments: an
// instruction pointer, a local-frame base, its own value/return/local
// stacks, and a current signal. Primitives run with a *Process receiver;
// Terminal embeds one and layers reader state on top.
type Process struct {
	vm  *VM
	pid uint32

	wp uint32
	lp uint32

	valueStack  []Value
	returnStack []RetEntry
	localStack  []Value

	sig Signal

	// onSignal, if set, runs after every emitSignal call. Terminal uses it
	// to force its current input stream back to Eval mode.
	onSignal func(Signal)
}

// Signal returns the process's current signal.
func (p *Process) Signal() Signal { return p.sig }

// ClearSignal resets the process's signal to None, letting step/runCall
// make progress again.
func (p *Process) ClearSignal() { p.sig = Signal{} }

// Push pushes v onto the value stack.
func (p *Process) Push(v Value) { p.valueStack = append(p.valueStack, v) }

// Pop pops and returns the top of the value stack. On an empty stack it
// raises ValueStackUnderflow, leaves the stack untouched, and returns the
// zero Value; callers must check Signal() after calling Pop in sequences of
// more than one pop.
func (p *Process) Pop() Value {
	n := len(p.valueStack)
	if n == 0 {
		p.emitSignal(Signal{Kind: SignalValueStackUnderflow})
		return Value(0)
	}
	v := p.valueStack[n-1]
	p.valueStack = p.valueStack[:n-1]
	return v
}

// pop1 pops one value, reporting whether the pop succeeded (no underflow).
func (p *Process) pop1() (Value, bool) {
	v := p.Pop()
	return v, p.sig.Kind == SignalNone
}

// popPair pops b then a (b was pushed last), reporting success.
func (p *Process) popPair() (a, b Value, ok bool) {
	b, ok = p.pop1()
	if !ok {
		return
	}
	a, ok = p.pop1()
	return
}

// ValueStackDepth returns the number of values on the value stack.
func (p *Process) ValueStackDepth() int { return len(p.valueStack) }

// ReturnStackDepth returns the number of frames on the return stack.
func (p *Process) ReturnStackDepth() int { return len(p.returnStack) }

// WP returns the process's current word pointer.
func (p *Process) WP() uint32 { return p.wp }

// emitSignal records sig, prints a backtrace to the VM's stderr, and runs
// the onSignal hook if set.
func (p *Process) emitSignal(sig Signal) {
	p.sig = sig
	p.printBacktrace()
	if p.onSignal != nil {
		p.onSignal(sig)
	}
}

func (p *Process) printBacktrace() {
	for i := len(p.returnStack) - 1; i >= 0; i-- {
		frame := p.returnStack[i]
		name := ""
		if frame.Word < p.vm.dict.Len() {
			name = p.vm.dict.At(frame.Word).Name
		}
		fmt.Fprintf(p.vm.stderr, "\t@%d - %s\n", frame.Word, name)
	}
}

// setCall pushes a return frame for word, jumps wp to its body, and grows
// the local stack by its frame size.
func (p *Process) setCall(word uint32) {
	fn := p.vm.dict.At(word)
	p.returnStack = append(p.returnStack, RetEntry{Word: word, IP: p.wp, LP: p.lp})
	p.wp = uint32(fn.Start)
	p.lp = uint32(len(p.localStack))
	for i := uint32(0); i < fn.LocalCount; i++ {
		p.localStack = append(p.localStack, Value(0))
	}
}

// setRet pops the top return frame, shrinks the local stack by the
// returning function's frame size, and restores wp/lp.
func (p *Process) setRet() {
	n := len(p.returnStack)
	if n == 0 {
		return
	}
	top := p.returnStack[n-1]
	fn := p.vm.dict.At(top.Word)
	p.localStack = p.localStack[:len(p.localStack)-int(fn.LocalCount)]
	p.wp = top.IP
	p.lp = top.LP
	p.returnStack = p.returnStack[:n-1]
}

// setBranch sets wp directly; callers pre-decrement by one so the trailing
// wp += 1 after a primitive returns lands on the intended target.
func (p *Process) setBranch(addr uint32) { p.wp = addr }

// fetch advances wp and returns the cell it now points to, used to consume
// an inline literal immediately following a 0 marker or a lit.i32 call.
func (p *Process) fetch() uint32 {
	p.wp++
	return p.vm.code.Fetch(p.wp)
}

// step executes one word at wp. A signal already set makes step a no-op
// (the signal-idempotence invariant).
func (p *Process) step() {
	if p.sig.Kind != SignalNone {
		return
	}

	word := p.vm.code.Fetch(p.wp)
	if p.vm.debug {
		p.vm.logf("step", "pid=%d wp=%d word=%d", p.pid, p.wp, word)
	}

	switch {
	case word == 0: // inline literal marker: never a dictionary id.
		lit := p.fetch()
		p.Push(Value(lit))
		p.wp++

	case word >= p.vm.dict.Len():
		p.emitSignal(Signal{Kind: SignalWordIDOutOfRange, Code: word})

	default:
		fn := p.vm.dict.At(word)
		if fn.IsNative() {
			fn.Native(p)
			p.wp++
		} else if fn.Start < 0 {
			p.emitSignal(Signal{Kind: SignalWordNotImplemented, Code: word})
		} else {
			p.setCall(word)
		}
	}
}

// runCall executes word to completion: directly if native, or by pushing a
// call frame and stepping until the return stack unwinds back past its
// pre-call depth (or a signal is raised).
func (p *Process) runCall(word uint32) {
	if word >= p.vm.dict.Len() {
		p.emitSignal(Signal{Kind: SignalWordIDOutOfRange, Code: word})
		return
	}
	fn := p.vm.dict.At(word)
	if fn.IsNative() {
		fn.Native(p)
		return
	}
	if fn.Start < 0 {
		p.emitSignal(Signal{Kind: SignalWordNotImplemented, Code: word})
		return
	}
	rsPos := len(p.returnStack)
	p.setCall(word)
	for len(p.returnStack) > rsPos && p.sig.Kind == SignalNone {
		p.step()
	}
}
