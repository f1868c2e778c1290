package service

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerStatus is the host snapshot shown on the panel status endpoint.
type ServerStatus struct {
	Cpu float64 `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime uint64    `json:"uptime"`
	Loads  []float64 `json:"loads"`
}

type ServerService struct{}

// GetStatus collects a best-effort host snapshot; probes that fail leave
// their fields zeroed.
func (s *ServerService) GetStatus() *ServerStatus {
	status := &ServerStatus{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.Cpu = percents[0]
	}
	if upTime, err := host.Uptime(); err == nil {
		status.Uptime = upTime
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}
	if avgState, err := load.Avg(); err == nil {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}
	return status
}
