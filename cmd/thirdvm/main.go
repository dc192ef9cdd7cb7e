// Command thirdvm runs the indirect-threaded stack VM: it loads the
// embedded kernel, an optional bootstrap.f from the working directory, and
// then stdin as an interactive session.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/thirdvm/thirdvm"
	"github.com/thirdvm/thirdvm/internal/logio"
)

func main() {
	var (
		timeout time.Duration
		trace   bool
		dump    bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a dictionary dump after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	opts := []thirdvm.VMOption{
		thirdvm.WithStdout(os.Stdout),
		thirdvm.WithStderr(os.Stderr),
	}
	if trace {
		opts = append(opts, thirdvm.WithLogf(log.Leveledf("TRACE")), thirdvm.WithDebug(true))
	}
	vm := thirdvm.New(opts...)
	term := vm.NewTerminal()

	defer log.Unwrap()

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	bootstrap := thirdvm.KernelSource()
	if buf, rerr := os.ReadFile("bootstrap.f"); rerr == nil {
		bootstrap += "\n" + string(buf)
	} else if !os.IsNotExist(rerr) {
		log.Errorf("reading bootstrap.f: %v", rerr)
	}

	code, err := vm.RunTerminal(ctx, term,
		thirdvm.NewStringStream("<bootstrap>", bootstrap),
		thirdvm.NewStdInStream(os.Stdin, "<stdin>"))
	log.ErrorIf(err)
	if dump {
		thirdvm.DumpDictionary(vm, &logio.Writer{Logf: log.Leveledf("DUMP")})
	}
	os.Exit(code)
}
