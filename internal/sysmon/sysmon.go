// Package sysmon samples host load around each timing scenario so a slow
// parallel run can be told apart from a busy machine.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/tancalc/internal/logging"
)

// Stats is one host snapshot. Fields the platform cannot report stay zero.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0, delta since the previous Sample
	MemPercent  float64 // 0.0 .. 100.0
	Load1       float64 // 1-minute load average; zero on Windows
	LogicalCPUs int
}

// Sample collects a host snapshot without blocking: the CPU percentage uses
// interval 0, so the first call in a process reports the average since boot.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}

// Oversubscribed reports whether workers exceeds the logical core count.
// It returns false when the core count is unknown.
func (s Stats) Oversubscribed(workers int) bool {
	return s.LogicalCPUs > 0 && workers > s.LogicalCPUs
}

// Fields renders the snapshot as log fields.
func (s Stats) Fields() []logging.Field {
	return []logging.Field{
		logging.Float64("host_cpu_pct", s.CPUPercent),
		logging.Float64("host_mem_pct", s.MemPercent),
		logging.Float64("host_load1", s.Load1),
		logging.Int("host_cpus", s.LogicalCPUs),
	}
}
