package thirdvm

import _ "embed"

// kernelSource is the baseline bootstrap language: control flow, comment
// readers, and arithmetic helpers, built from the primitive set alone and
// loaded ahead of any user-supplied bootstrap.f or stdin. Mirrors the
// teacher's pattern of shipping its FIRST/THIRD kernel as a string baked
// into the binary rather than requiring it on disk.
//
//go:embed bootstrap.f
var kernelSource string

// KernelStream returns a fresh input stream over the embedded kernel
// source, suitable for passing to Terminal.Load or VM.RunTerminal.
func KernelStream() *StringStream {
	return NewStringStream("<kernel>", kernelSource)
}

// KernelSource returns the embedded kernel source text, for callers that
// want to concatenate it with a further bootstrap source before loading.
func KernelSource() string { return kernelSource }
