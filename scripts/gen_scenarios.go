// Command gen_scenarios regenerates golden output fixtures (stdout and
// stderr together) under testdata/ for end-to-end scenarios like those in
// scenarios_test.go, running them concurrently on in-process VMs under one
// shared deadline and exiting with an error if any run fails.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thirdvm/thirdvm"
)

type scenario struct {
	name   string
	source string
}

var scenarios = []scenario{
	{"literal_and_print", `5 3 + .`},
	{"conditional_true", `: s1 1 if 9 . then 8 . ; s1`},
	{"conditional_false", `: s1 0 if 9 . then 8 . ; s1`},
	{"conditional_else", `: s2 0 if 1 . else 2 . then ; s2`},
	{"loop_countdown", `: down begin dup . 1- dup until drop ; 3 down`},
	{"word_not_found_recovers", "bogusword\n5 5 + .\n"},
}

func main() {
	var outDir string
	var timeout time.Duration
	flag.StringVar(&outDir, "out", "testdata", "directory to write golden files into")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "deadline shared by all runs")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", outDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, sc := range scenarios {
		sc := sc
		eg.Go(func() error {
			got, err := runScenario(ctx, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", sc.name, err)
			}
			path := filepath.Join(outDir, sc.name+".golden")
			if werr := os.WriteFile(path, got, 0o644); werr != nil {
				return fmt.Errorf("%s: writing %s: %w", sc.name, path, werr)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func runScenario(ctx context.Context, sc scenario) ([]byte, error) {
	var out bytes.Buffer
	vm := thirdvm.New(thirdvm.WithStdout(&out), thirdvm.WithStderr(&out))
	term := vm.NewTerminal()
	if _, exited := term.Load(ctx, thirdvm.KernelStream()); exited {
		return nil, fmt.Errorf("kernel load exited unexpectedly")
	}
	if _, err := vm.RunTerminal(ctx, term, nil, thirdvm.NewStringStream(sc.name, sc.source)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
