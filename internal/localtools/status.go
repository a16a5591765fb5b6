package localtools

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/procfs"
)

// SystemStatus is one host sample.
type SystemStatus struct {
	CPUPercent float64
	MemPercent float64
	MemUsedGB  float64
	MemTotalGB float64
	Load1      float64
	Load5      float64
	Load15     float64
	Uptime     time.Duration
}

// ProcStatus samples a Linux host through procfs.
type ProcStatus struct {
	fs       procfs.FS
	interval time.Duration
	now      func() time.Time
}

var _ StatusSource = (*ProcStatus)(nil)

// NewProcStatus reads from mountPoint (normally /proc). CPU usage is measured
// over interval.
func NewProcStatus(mountPoint string, interval time.Duration) (*ProcStatus, error) {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("localtools: open procfs: %w", err)
	}
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &ProcStatus{fs: fs, interval: interval, now: time.Now}, nil
}

// Sample takes two CPU readings interval apart and reads memory and load once.
func (p *ProcStatus) Sample(ctx context.Context) (SystemStatus, error) {
	first, err := p.fs.Stat()
	if err != nil {
		return SystemStatus{}, fmt.Errorf("read stat: %w", err)
	}

	select {
	case <-ctx.Done():
		return SystemStatus{}, ctx.Err()
	case <-time.After(p.interval):
	}

	second, err := p.fs.Stat()
	if err != nil {
		return SystemStatus{}, fmt.Errorf("read stat: %w", err)
	}

	mem, err := p.fs.Meminfo()
	if err != nil {
		return SystemStatus{}, fmt.Errorf("read meminfo: %w", err)
	}
	load, err := p.fs.LoadAvg()
	if err != nil {
		return SystemStatus{}, fmt.Errorf("read loadavg: %w", err)
	}

	st := SystemStatus{
		CPUPercent: cpuPercent(first.CPUTotal, second.CPUTotal),
		Load1:      load.Load1,
		Load5:      load.Load5,
		Load15:     load.Load15,
	}
	if second.BootTime > 0 {
		st.Uptime = p.now().Sub(time.Unix(int64(second.BootTime), 0))
	}
	if mem.MemTotal != nil && mem.MemAvailable != nil && *mem.MemTotal > 0 {
		total := float64(*mem.MemTotal)
		used := total - float64(*mem.MemAvailable)
		st.MemPercent = round1(used / total * 100)
		st.MemUsedGB = round1(used / (1024 * 1024))
		st.MemTotalGB = round1(total / (1024 * 1024))
	}
	return st, nil
}

func cpuPercent(a, b procfs.CPUStat) float64 {
	idle := (b.Idle + b.Iowait) - (a.Idle + a.Iowait)
	total := cpuTotal(b) - cpuTotal(a)
	if total <= 0 {
		return 0
	}
	return round1((total - idle) / total * 100)
}

func cpuTotal(c procfs.CPUStat) float64 {
	return c.User + c.Nice + c.System + c.Idle + c.Iowait + c.IRQ + c.SoftIRQ + c.Steal
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

type systemStatusTool struct{ t *Tools }

func (systemStatusTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolSystemStatus,
		mcp.WithDescription("Get CPU, RAM, load and uptime of this machine."),
	)
}

func (s systemStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, ok := s.t.sample(ctx)
	if !ok {
		return mcp.NewToolResultError(MsgStatusUnavailable), nil
	}
	return mcp.NewToolResultText(formatStatus(st)), nil
}

// Status is the full spoken status report.
func (t *Tools) Status(ctx context.Context) string {
	st, ok := t.sample(ctx)
	if !ok {
		return MsgStatusUnavailable
	}
	return formatStatus(st)
}

// Stats is the one-line CPU and RAM summary.
func (t *Tools) Stats(ctx context.Context) string {
	st, ok := t.sample(ctx)
	if !ok {
		return MsgStatusUnavailable
	}
	return formatStats(st)
}

func (t *Tools) sample(ctx context.Context) (SystemStatus, bool) {
	if t.deps.Status == nil {
		return SystemStatus{}, false
	}
	st, err := t.deps.Status.Sample(ctx)
	if err != nil {
		t.l.Warnf(ctx, "%s: sample failed: %v", LogPrefixStatus, err)
		return SystemStatus{}, false
	}
	return st, true
}

func formatStatus(st SystemStatus) string {
	return fmt.Sprintf("System Status:\n• CPU: %s%%\n• RAM: %s%% (%s/%s GB)\n• Load: %s %s %s\n• %s",
		num(st.CPUPercent),
		num(st.MemPercent), num(st.MemUsedGB), num(st.MemTotalGB),
		num(st.Load1), num(st.Load5), num(st.Load15),
		formatUptime(st.Uptime),
	)
}

// formatStats is the one-line summary used in briefings.
func formatStats(st SystemStatus) string {
	return fmt.Sprintf("CPU: %s%%, RAM: %s%%.", num(st.CPUPercent), num(st.MemPercent))
}
