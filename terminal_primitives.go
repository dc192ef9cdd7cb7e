package thirdvm

import "fmt"

// registerPrimitives binds the terminal-only reader/compiler primitives.
// Each is a closure capturing the concrete *Terminal: Go has no virtual
// dispatch through an embedded Process, so this replaces the original
// implementation's downcast from a bare Process pointer.
func (t *Terminal) registerPrimitives() {
	d := &t.vm.dict
	d.AddNative(":", func(*Process) { t.opDefine() }, false)
	d.AddNative(";", func(*Process) { t.opEndWord() }, true)
	d.AddNative("immediate", func(*Process) { t.opImmediate() }, true)
	d.AddNative("locals", func(*Process) { t.opLocals() }, true)
	d.AddNative("'", func(*Process) { t.opTick() }, true)
	d.AddNative("see", func(*Process) { t.opSee() }, false)
	d.AddNative("stream.peek", func(*Process) { t.opStreamPeek() }, false)
	d.AddNative("stream.getch", func(*Process) { t.opStreamGetch() }, false)
}

// : reads the next token as a name, creates an interpreted dictionary entry
// starting at the current code-segment length, and switches to Compile
// mode.
func (t *Terminal) opDefine() {
	name := t.getToken()
	if isInt(name) {
		t.emitSignal(Signal{Kind: SignalException, Code: ExcIntIsNoWord})
		return
	}
	t.vm.dict.AddInterpreted(name, t.vm.code.Size())
	t.stream().SetMode(ModeCompile)
}

// ; emits return and switches back to Eval mode.
func (t *Terminal) opEndWord() {
	t.vm.code.Emit(1) // id 1 is always return
	t.stream().SetMode(ModeEval)
}

// immediate marks the most recently defined function as immediate.
func (t *Terminal) opImmediate() {
	t.vm.dict.SetImmediate(t.vm.dict.Len() - 1)
}

// locals reads the next token as a non-negative integer and sets the most
// recently defined function's local frame size.
func (t *Terminal) opLocals() {
	tok := t.getToken()
	if !isInt(tok) {
		t.emitSignal(Signal{Kind: SignalException, Code: ExcLocalIsNotInt})
		return
	}
	t.vm.dict.SetLocalCount(t.vm.dict.Len()-1, toUint32(tok))
}

// ' reads the next token and emits [0, id], a literal carrying the target
// word's id for later indirect call (e.g. via #).
func (t *Terminal) opTick() {
	name := t.getToken()
	if isInt(name) {
		t.emitSignal(Signal{Kind: SignalException, Code: ExcIntIsNoWord})
		return
	}
	id, ok := t.vm.dict.Find(name)
	if !ok {
		t.reportWordNotFound(name)
		return
	}
	t.vm.code.Emit(0)
	t.vm.code.Emit(id)
}

// stream.peek/stream.getch push the current stream's next char without/
// with consuming it.
func (t *Terminal) opStreamPeek()  { t.Push(U32Value(t.stream().PeekChar())) }
func (t *Terminal) opStreamGetch() { t.Push(U32Value(t.stream().GetChar())) }

// see reads the next token and disassembles its dictionary entry: id,
// name, decoded body cells, and an immediate suffix if applicable.
func (t *Terminal) opSee() {
	name := t.getToken()
	id, ok := t.vm.dict.Find(name)
	if !ok {
		t.reportWordNotFound(name)
		return
	}
	fmt.Fprint(t.vm.stdout, disassemble(t.vm, id))
}
