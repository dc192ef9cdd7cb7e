package thirdvm

import (
	"context"
	"io"
	"io/ioutil"

	"github.com/thirdvm/thirdvm/internal/flushio"
	"github.com/thirdvm/thirdvm/internal/panicerr"
)

// VM owns the dictionary, the code segment, and the const-data segment for
// the lifetime of the program, and hosts any number of Processes against
// them. It never owns a Process: execution is Process.step/runCall and
// Terminal.Load's job, and RunTerminal only drives a Terminal the caller
// supplies.
type VM struct {
	dict      Dictionary
	code      CodeSegment
	constData ConstDataSegment

	debug bool
	logging

	stdout flushio.WriteFlusher
	stderr io.Writer

	nextPID uint32
}

// New builds a VM with return/lit.i32 and the full primitive set
// registered, applying opts over the defaults (discarded stdout/stderr).
func New(opts ...VMOption) *VM {
	vm := &VM{}
	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)
	if vm.stdout == nil {
		vm.stdout = flushio.NewWriteFlusher(ioutil.Discard)
	}
	if vm.stderr == nil {
		vm.stderr = ioutil.Discard
	}
	vm.dict = newDictionary()
	registerPrimitives(vm)
	return vm
}

// Dictionary exposes the VM's dictionary for introspection (see, dump).
func (vm *VM) Dictionary() *Dictionary { return &vm.dict }

// Code exposes the VM's code segment for introspection (see, dump).
func (vm *VM) Code() *CodeSegment { return &vm.code }

// ConstData exposes the VM's const-data segment for introspection.
func (vm *VM) ConstData() *ConstDataSegment { return &vm.constData }

// Debug reports whether step tracing is currently enabled (deb.set).
func (vm *VM) Debug() bool { return vm.debug }

// NewProcess creates a bare Process over vm, suitable for running
// individual words without a terminal attached (e.g. from tests or from a
// host embedding the VM directly).
func (vm *VM) NewProcess() *Process {
	vm.nextPID++
	return &Process{vm: vm, pid: vm.nextPID}
}

// haltError wraps an unrecoverable internal fault (not a VM-defined
// Signal) that unwinds RunTerminal.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return "halted: " + err.error.Error()
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

func (vm *VM) halt(err error) {
	func() {
		defer func() { recover() }()
		if vm.stdout != nil {
			if ferr := vm.stdout.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	func() {
		defer func() { recover() }()
		vm.logf("#", "halt error: %v", err)
	}()
	panic(haltError{err})
}

// RunTerminal runs term against the bootstrap file (if present) and then
// stdin, recovering any internal fault into a returned error. See
// Terminal.Load for the per-stream recovery/exit-status contract.
func (vm *VM) RunTerminal(ctx context.Context, term *Terminal, bootstrap, stdin InputStream) (exitCode int, err error) {
	rerr := panicerr.Recover("VM", func() error {
		defer vm.stdout.Flush()
		if bootstrap != nil {
			if code, exited := term.Load(ctx, bootstrap); exited {
				exitCode = code
				return nil
			}
		}
		if stdin != nil {
			if code, exited := term.Load(ctx, stdin); exited {
				exitCode = code
			}
		}
		return nil
	})
	if rerr != nil {
		var he haltError
		if ok := asHaltError(rerr, &he); ok {
			rerr = he.error
		}
		return 1, rerr
	}
	return exitCode, nil
}

func asHaltError(err error, target *haltError) bool {
	he, ok := err.(haltError)
	if ok {
		*target = he
	}
	return ok
}

// logging is a small leveled trace-logging facility: a nil logfn disables
// it entirely so step tracing costs nothing when not requested.
type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		log.logfn(mark+" "+mess, args...)
	} else {
		log.logfn(mark + " " + mess)
	}
}
