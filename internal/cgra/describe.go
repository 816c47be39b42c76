package cgra

import "fmt"

// sprintfKernel renders a KernelDescriptor for diagnostics, matching
// the original source's get_kernel_info helper.
func sprintfKernel(k KernelDescriptor) string {
	return fmt.Sprintf(
		"srf_spm_addr=%d column_usage=%d imem_start=%d num_instr=%d",
		k.SRFSPMAddr, k.ColumnUsage, k.IMEMStart, k.NumInstr,
	)
}
