package thirdvm

import (
	"io"
	"io/ioutil"

	"github.com/thirdvm/thirdvm/internal/flushio"
)

// VMOption configures a VM at construction time.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withStdout(ioutil.Discard),
	withStderr(ioutil.Discard),
)

// VMOptions flattens a list of options (possibly themselves the result of
// VMOptions) into a single applicable option.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*VM) {}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithStdout sets the VM's primitive output stream (used by . and .c).
func WithStdout(w io.Writer) VMOption { return withStdout(w) }

// WithStderr sets the VM's diagnostic output stream (backtraces, ERROR
// lines).
func WithStderr(w io.Writer) VMOption { return withStderr(w) }

// WithLogf sets a trace-logging hook, invoked around each step when debug
// tracing is enabled (see deb.set and -trace).
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithDebug enables step tracing from construction, equivalent to the
// bootstrap language running "1 deb.set".
func WithDebug(debug bool) VMOption { return withDebug(debug) }

type stdoutOption struct{ io.Writer }
type stderrOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})
type withDebug bool

func withStdout(w io.Writer) stdoutOption { return stdoutOption{w} }
func withStderr(w io.Writer) stderrOption { return stderrOption{w} }

func (o stdoutOption) apply(vm *VM) { vm.stdout = flushio.NewWriteFlusher(o.Writer) }
func (o stderrOption) apply(vm *VM) { vm.stderr = o.Writer }
func (logfn withLogfn) apply(vm *VM) { vm.logging.logfn = logfn }
func (d withDebug) apply(vm *VM)     { vm.debug = bool(d) }
