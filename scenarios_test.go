package thirdvm

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scenario describes one end-to-end run for runScenario: the embedded
// kernel (control flow, comments, arithmetic helpers) is always loaded
// first, then source, and stdout/stderr are captured for assertion.
type scenario struct {
	name          string
	source        string
	wantOut       string
	wantErrSubstr string
}

func runScenario(t *testing.T, sc scenario) {
	t.Helper()
	var out, errOut bytes.Buffer
	vm := New(WithStdout(&out), WithStderr(&errOut))
	term := vm.NewTerminal()

	ctx := context.Background()
	if _, exited := term.Load(ctx, KernelStream()); exited {
		t.Fatalf("kernel load exited unexpectedly")
	}
	if _, exited := term.Load(ctx, NewStringStream(sc.name, sc.source)); exited {
		t.Fatalf("scenario load exited unexpectedly")
	}

	assert.Equal(t, sc.wantOut, out.String(), "stdout")
	if sc.wantErrSubstr != "" {
		assert.True(t, strings.Contains(errOut.String(), sc.wantErrSubstr),
			"stderr %q does not contain %q", errOut.String(), sc.wantErrSubstr)
	}
}

func TestScenarioLiteralArithmeticAndPrint(t *testing.T) {
	runScenario(t, scenario{
		name:    "s1",
		source:  `5 3 + .`,
		wantOut: "8\n",
	})
}

func TestScenarioIfThenNoElse(t *testing.T) {
	runScenario(t, scenario{
		name:    "s2-true",
		source:  `: s 1 if 9 . then 8 . ; s`,
		wantOut: "9\n8\n",
	})
	runScenario(t, scenario{
		name:    "s2-false",
		source:  `: s 0 if 9 . then 8 . ; s`,
		wantOut: "8\n",
	})
}

func TestScenarioIfElseThen(t *testing.T) {
	runScenario(t, scenario{
		name:    "s3-true",
		source:  `: s 1 if 1 . else 2 . then ; s`,
		wantOut: "1\n",
	})
	runScenario(t, scenario{
		name:    "s3-false",
		source:  `: s 0 if 1 . else 2 . then ; s`,
		wantOut: "2\n",
	})
}

func TestScenarioCommentsAreSkipped(t *testing.T) {
	runScenario(t, scenario{
		name:    "s4",
		source:  "( this whole clause is ignored ) 42 .",
		wantOut: "42\n",
	})
	runScenario(t, scenario{
		name:    "s4-line",
		source:  "\\ this line is ignored\n7 .",
		wantOut: "7\n",
	})
}

func TestScenarioCountdownLoop(t *testing.T) {
	runScenario(t, scenario{
		name:    "s5",
		source:  `: down begin dup . 1- dup until drop ; 3 down`,
		wantOut: "3\n2\n1\n",
	})
}

func TestScenarioWordNotFoundRecovers(t *testing.T) {
	runScenario(t, scenario{
		name:          "s6",
		source:        "bogusword\n5 5 + .\n",
		wantOut:       "10\n",
		wantErrSubstr: "bogusword",
	})
}

func TestScenarioArithmeticHelpers(t *testing.T) {
	runScenario(t, scenario{
		name:    "helpers",
		source:  `5 1+ . 5 1- . 5 negate . 5 *2 . 10 /2 .`,
		wantOut: "6\n4\n-5\n10\n5\n",
	})
}

func TestScenarioCatchHandlesARaisedException(t *testing.T) {
	runScenario(t, scenario{
		name:    "catch",
		source:  `: boom 99 e> ; : run-catch ' boom catch . ; run-catch`,
		wantOut: "0\n",
	})
}
