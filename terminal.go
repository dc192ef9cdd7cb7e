package thirdvm

import (
	"context"
	"fmt"
	"strings"
)

// Terminal is a Process with an added stack of input streams and the
// reader/compiler primitives that drive definition and evaluation.
type Terminal struct {
	Process
	streams []InputStream
}

// NewTerminal builds a Terminal over vm and registers its reader
// primitives (:  ;  immediate  locals  '  see  stream.peek  stream.getch).
func (vm *VM) NewTerminal() *Terminal {
	vm.nextPID++
	t := &Terminal{Process: Process{vm: vm, pid: vm.nextPID}}
	t.Process.onSignal = t.handleSignal
	t.registerPrimitives()
	return t
}

func (t *Terminal) handleSignal(sig Signal) {
	if sig.Kind != SignalNone && len(t.streams) > 0 {
		t.stream().SetMode(ModeEval)
	}
}

func (t *Terminal) stream() InputStream { return t.streams[len(t.streams)-1] }

func (t *Terminal) pushStream(s InputStream) { t.streams = append(t.streams, s) }

func (t *Terminal) popStream() { t.streams = t.streams[:len(t.streams)-1] }

// getToken skips leading whitespace then returns a maximal run of
// non-whitespace characters from the current stream, consuming it.
func (t *Terminal) getToken() string {
	s := t.stream()
	for isWhitespace(s.PeekChar()) {
		s.GetChar()
	}
	var sb strings.Builder
	for c := s.PeekChar(); c != 0 && !isWhitespace(c); c = s.PeekChar() {
		sb.WriteByte(byte(s.GetChar()))
	}
	return sb.String()
}

func (t *Terminal) reportWordNotFound(tok string) {
	fmt.Fprintf(t.vm.stderr, "ERROR: word not found (%s)\n", tok)
	t.emitSignal(Signal{Kind: SignalException, Code: ExcWordNotFound})
}

// loadStream pushes s, reads and dispatches tokens from it according to its
// current mode until it runs out of characters or a signal is raised, then
// pops s.
func (t *Terminal) loadStream(s InputStream) {
	t.pushStream(s)
	for t.stream().PeekChar() != 0 && t.sig.Kind == SignalNone {
		tok := t.getToken()
		if tok == "" {
			break
		}
		switch t.stream().Mode() {
		case ModeEval:
			t.evalToken(tok)
		case ModeCompile:
			t.compileToken(tok)
		}
	}
	t.popStream()
}

func (t *Terminal) evalToken(tok string) {
	if isInt(tok) {
		t.Push(U32Value(toUint32(tok)))
		return
	}
	id, ok := t.vm.dict.Find(tok)
	if !ok {
		t.reportWordNotFound(tok)
		return
	}
	t.runCall(id)
}

func (t *Terminal) compileToken(tok string) {
	if isInt(tok) {
		t.vm.code.Emit(0)
		t.vm.code.Emit(toUint32(tok))
		return
	}
	id, ok := t.vm.dict.Find(tok)
	if !ok {
		t.reportWordNotFound(tok)
		return
	}
	if t.vm.dict.At(id).IsImmediate {
		t.runCall(id)
		return
	}
	t.vm.code.Emit(id)
}

// Load runs loadStream against s, and for any signal other than Exit,
// resets the signal and the stream's mode to Eval and resumes reading from
// the same (still-positioned) stream, letting an interactive session
// recover from an error. It returns once s is exhausted with no signal
// (exited == false) or an Exit signal is raised (exited == true, code is
// its carried status).
func (t *Terminal) Load(ctx context.Context, s InputStream) (code int, exited bool) {
	for {
		t.loadStream(s)
		switch t.sig.Kind {
		case SignalNone:
			return 0, false
		case SignalExit:
			return int(int32(t.sig.Code)), true
		default:
			t.ClearSignal()
			if ctx != nil && ctx.Err() != nil {
				return 1, true
			}
		}
	}
}
