package cmd

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
)

type SystemMetrics struct {
	CPUUsage     prometheus.Gauge
	MemoryUsed   prometheus.Gauge
	DiskUsed     prometheus.Gauge
	DiskRead     prometheus.Counter
	DiskWrite    prometheus.Counter
	NetworkRecv  prometheus.Counter
	NetworkTrans prometheus.Counter
	FreeWorkers  prometheus.GaugeFunc
}

func newSystemMetrics(reg prometheus.Registerer, runner Runner) *SystemMetrics {
	factory := promauto.With(reg)
	return &SystemMetrics{
		CPUUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Total CPU usage percentage across all cores",
		}),
		MemoryUsed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_used_bytes",
			Help: "Total used memory in bytes",
		}),
		DiskUsed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_disk_used_bytes",
			Help: "Total disk usage in bytes for root filesystem",
		}),
		DiskRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_disk_read_bytes_total",
			Help: "Total disk read bytes since the daemon started",
		}),
		DiskWrite: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_disk_write_bytes_total",
			Help: "Total disk write bytes since the daemon started",
		}),
		NetworkRecv: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_network_receive_bytes_total",
			Help: "Total received bytes across all interfaces",
		}),
		NetworkTrans: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_network_transmit_bytes_total",
			Help: "Total transmitted bytes across all interfaces",
		}),
		FreeWorkers: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "judge_free_workers",
			Help: "Sandboxes waiting for a submission",
		}, func() float64 {
			return float64(len(runner.Workers()))
		}),
	}
}

// delta treats a counter that went backwards (reboot, device removal) as a
// fresh baseline.
func delta(curr, prev uint64) float64 {
	if curr < prev {
		return 0
	}
	return float64(curr - prev)
}

func (m *SystemMetrics) sample(prev *ioTotals) {
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		m.CPUUsage.Set(cpuPercent[0])
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		m.MemoryUsed.Set(float64(vmStat.Used))
	}

	if diskStat, err := disk.Usage("/"); err == nil {
		m.DiskUsed.Set(float64(diskStat.Used))
	}

	if ioStats, err := disk.IOCounters(); err == nil {
		var read, write uint64
		for _, io := range ioStats {
			read += io.ReadBytes
			write += io.WriteBytes
		}
		if prev.sampled {
			m.DiskRead.Add(delta(read, prev.diskRead))
			m.DiskWrite.Add(delta(write, prev.diskWrite))
		}
		prev.diskRead, prev.diskWrite = read, write
	}

	if netStats, err := gnet.IOCounters(false); err == nil && len(netStats) > 0 {
		recv, sent := netStats[0].BytesRecv, netStats[0].BytesSent
		if prev.sampled {
			m.NetworkRecv.Add(delta(recv, prev.netRecv))
			m.NetworkTrans.Add(delta(sent, prev.netSent))
		}
		prev.netRecv, prev.netSent = recv, sent
	}

	prev.sampled = true
}

type ioTotals struct {
	sampled             bool
	diskRead, diskWrite uint64
	netRecv, netSent    uint64
}

// Collect samples host statistics every interval until ctx is done.
func (m *SystemMetrics) Collect(ctx context.Context, interval time.Duration) {
	var prev ioTotals
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.sample(&prev)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RegisterMetrics announces the node to the server and starts the host
// metrics collector.
func (s *Server) RegisterMetrics(ctx context.Context) {
	if node := s.RegisterNode(ctx); node != "" {
		log.Printf("Registered node with ID: %s", node)
	}
	sysMetrics := newSystemMetrics(prometheus.DefaultRegisterer, s.runner)
	go sysMetrics.Collect(ctx, 5*time.Second)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
