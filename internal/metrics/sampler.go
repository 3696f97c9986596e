package metrics

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/patchtools/patchmon/internal/errors"
	"github.com/patchtools/patchmon/internal/logger"
)

// netCounter stores a cumulative byte reading for rate calculation.
type netCounter struct {
	bytes int64
	at    time.Time
}

// Sampler gathers host metrics by shelling out to OS utilities.
// Each metric is parsed independently; a missing tool or unparsable
// section degrades that one gauge to unavailable without failing the
// sample. Only a failure to execute the shell at all is an error.
type Sampler struct {
	platform Platform
	shell    string
	timeout  time.Duration
	log      logger.Logger

	mu      sync.Mutex  // Protects prevNet
	prevNet *netCounter // Previous network counter for delta calculation
}

// NewSampler creates a sampler for the current platform.
func NewSampler() *Sampler {
	return &Sampler{
		platform: DetectPlatform(),
		shell:    "/bin/sh",
		timeout:  10 * time.Second,
		log:      logger.NewEnvLogger("[metrics]"),
	}
}

// SetLogger replaces the sampler's logger.
func (s *Sampler) SetLogger(l logger.Logger) {
	s.log = l
}

// SetTimeout sets the per-tick collection timeout.
func (s *Sampler) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Platform returns the platform the sampler collects for.
func (s *Sampler) Platform() Platform {
	return s.platform
}

// Sample collects one metrics sample. A partial sample with some gauges
// marked unavailable is normal; an error means the batched command could
// not run at all and the caller should skip this tick.
func (s *Sampler) Sample(ctx context.Context) (*Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.shell, "-c", BuildSampleCommand(s.platform))
	output, err := cmd.Output()
	if err != nil && len(output) == 0 {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Couldn't run the metrics collection command",
			"Make sure /bin/sh and the basic OS utilities (top, free) are on PATH.")
	}

	return s.parseOutput(string(output)), nil
}

// parseOutput splits the batched command output into sections and parses
// each one, tolerating individual failures.
func (s *Sampler) parseOutput(output string) *Sample {
	sample := &Sample{Timestamp: time.Now()}

	sections := strings.Split(output, OutputSeparator+"\n")
	for i := range sections {
		sections[i] = strings.TrimSpace(sections[i])
	}

	get := func(i int) string {
		if i < len(sections) {
			return sections[i]
		}
		return ""
	}

	var cpu, mem, disk float64
	var net int64
	var cpuErr, memErr, diskErr, netErr error

	switch s.platform {
	case PlatformDarwin:
		cpu, cpuErr = parseDarwinCPU(get(0))
		mem, memErr = parseDarwinMemory(get(1))
		disk, diskErr = parseDarwinDisk(get(2))
		net, netErr = parseDarwinNet(get(3))
	default:
		cpu, cpuErr = parseLinuxCPU(get(0))
		mem, memErr = parseFreeMemory(get(1))
		disk, diskErr = parseLinuxDisk(get(2))
		net, netErr = parseNetCounters(get(3))
	}

	sample.CPU = s.gauge("cpu", cpu, cpuErr)
	sample.Memory = s.gauge("memory", mem, memErr)
	sample.DiskIO = s.gauge("disk", disk, diskErr)
	sample.NetworkIO = s.netRate(net, netErr, sample.Timestamp)

	return sample
}

// gauge converts a parse result into a Gauge, logging failures at debug
// level only: a missing optional tool every 5 seconds is not news.
func (s *Sampler) gauge(name string, value float64, err error) Gauge {
	if err != nil {
		s.log.Debug("%s metric unavailable: %v", name, err)
		return Unavailable()
	}
	return Ok(value)
}

// netRate converts a cumulative byte counter into a bytes-per-second rate
// using the previous reading. The first successful read has no baseline
// and yields an unavailable gauge; the next tick reports a real rate.
func (s *Sampler) netRate(counter int64, err error, at time.Time) Gauge {
	if err != nil {
		s.log.Debug("network metric unavailable: %v", err)
		return Unavailable()
	}

	s.mu.Lock()
	prev := s.prevNet
	s.prevNet = &netCounter{bytes: counter, at: at}
	s.mu.Unlock()

	if prev == nil {
		return Unavailable()
	}

	elapsed := at.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return Unavailable()
	}

	delta := counter - prev.bytes
	// Counter reset (interface bounce, reboot)
	if delta < 0 {
		delta = 0
	}

	return Ok(float64(delta) / elapsed)
}
