// Package cgra implements the VWR2A coarse-grained reconfigurable array:
// its instruction encoding, per-cycle execution engine, and the
// assembler that translates mnemonics into packed words (there is no
// translation from packed words back into mnemonics).
package cgra

// Fixed machine parameters. These mirror the Python reference's params
// module and are not configurable at runtime.
const (
	Columns   = 2
	Rows      = 4
	SRFRegs   = 8
	SPMLines  = 64
	SPMWords  = 128
	VWRsPerCol  = 3
	ElemsPerVWR = 128
	IMEMLines   = 512
	KernelSlots = 16

	Max32 int32 = 0x7FFFFFFF
	Min32 int32 = -0x80000000 // 0x80000000 as a signed 32-bit value

	// Instruction word widths, in bits.
	LCUWidth  = 20
	LSUWidth  = 20
	MXCUWidth = 27
	RCWidth   = 18
	KMEMWidth = 21
)

// lastSlice and halfSlice are the two VWR-offset constants the MXCU
// uses for its HALF/LAST mux sources, derived exactly as the source
// derives them rather than hardcoded.
const (
	lastSlice = SPMWords/Rows - 1     // 31
	halfSlice = SPMWords/Rows/2 - 1   // 15
)
