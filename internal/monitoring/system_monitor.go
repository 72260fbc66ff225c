package monitoring

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/statushub/profiles-be/internal/services"
)

const (
	sampleInterval   = 30 * time.Second
	highCPUThreshold = 90.0
	alertCooldown    = 15 * time.Minute
)

// SystemMonitor periodically samples host CPU and memory usage and records
// an alert event when CPU stays above the threshold.
type SystemMonitor struct {
	eventSvc     services.EventServiceProvider
	ticker       *time.Ticker
	done         chan bool
	lastCPUAlert time.Time
}

// NewSystemMonitor creates a new SystemMonitor.
func NewSystemMonitor(eventSvc services.EventServiceProvider) *SystemMonitor {
	return &SystemMonitor{
		eventSvc: eventSvc,
		done:     make(chan bool),
	}
}

// Run starts the periodic sampling loop.
func (m *SystemMonitor) Run() {
	log.Info().Msg("Starting background system monitor...")
	m.ticker = time.NewTicker(sampleInterval)
	defer m.ticker.Stop()

	// Run once immediately on start
	m.sample()

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping background system monitor.")
			return
		case <-m.ticker.C:
			m.sample()
		}
	}
}

// Stop halts the sampling loop.
func (m *SystemMonitor) Stop() {
	m.done <- true
}

// Snapshot holds a point-in-time view of host resource usage.
type Snapshot struct {
	CPUPercent float64 `json:"cpuPercent"`
	MemPercent float64 `json:"memPercent"`
}

// CurrentSnapshot samples host CPU and memory usage once.
func CurrentSnapshot() (Snapshot, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return Snapshot{}, fmt.Errorf("sampling cpu: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, fmt.Errorf("sampling memory: %w", err)
	}

	return Snapshot{CPUPercent: percents[0], MemPercent: vm.UsedPercent}, nil
}

func (m *SystemMonitor) sample() {
	snap, err := CurrentSnapshot()
	if err != nil {
		log.Warn().Err(err).Msg("SystemMonitor: failed to sample host stats")
		return
	}

	log.Debug().Float64("cpu_percent", snap.CPUPercent).Float64("mem_percent", snap.MemPercent).Msg("Host stats sampled")

	if snap.CPUPercent > highCPUThreshold && time.Since(m.lastCPUAlert) > alertCooldown {
		msg := fmt.Sprintf("High CPU usage (%.1f%%) detected on the host.", snap.CPUPercent)
		if err := m.eventSvc.RecordEvent("system.alert.cpu", "warn", msg, nil); err != nil {
			log.Error().Err(err).Msg("SystemMonitor: failed to record high CPU event")
			return
		}
		m.lastCPUAlert = time.Now()
	}
}
