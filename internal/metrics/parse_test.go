package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLinuxTop = `top - 14:32:01 up 12 days,  3:44,  2 users,  load average: 0.52, 0.58, 0.59
Tasks: 312 total,   1 running, 311 sleeping,   0 stopped,   0 zombie
%Cpu(s):  5.9 us,  2.0 sy,  0.0 ni, 91.2 id,  0.7 wa,  0.0 hi,  0.2 si,  0.0 st
MiB Mem :  15897.4 total,   1234.0 free,   8456.2 used,   6207.2 buff/cache
MiB Swap:   2048.0 total,   2048.0 free,      0.0 used.   6897.9 avail Mem`

const sampleFree = `              total        used        free      shared  buff/cache   available
Mem:       16278948     8659192     1263564      524288     6356192     6723108
Swap:       2097148           0     2097148`

const sampleIostat = `Linux 6.1.0 (host) 	01/15/25 	_x86_64_	(8 CPU)

avg-cpu:  %user   %nice %system %iowait  %steal   %idle
           5.91    0.00    2.04    0.68    0.00   91.37

Device            r/s     w/s     rkB/s     wkB/s   %util
sda              1.20   14.80     48.00    512.00    1.52
nvme0n1          8.40   22.10    336.00    884.00    4.80

avg-cpu:  %user   %nice %system %iowait  %steal   %idle
           4.12    0.00    1.88    0.40    0.00   93.60

Device            r/s     w/s     rkB/s     wkB/s   %util
sda              0.00    2.00      0.00     64.00    0.40
nvme0n1          3.00   11.00    120.00    440.00    2.10`

const sampleProcNetDev = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo: 5000000    5000    0    0    0     0          0         0  5000000    5000    0    0    0     0       0          0
  eth0: 1000000   98765    0    0    0     0          0         0   500000   56789    0    0    0     0       0          0
 wlan0:  250000   12000    0    0    0     0          0         0   250000   11000    0    0    0     0       0          0`

const sampleDarwinTop = `Processes: 412 total, 2 running, 410 sleeping, 2102 threads
Load Avg: 2.11, 2.20, 2.35
CPU usage: 7.89% user, 10.52% sys, 81.57% idle
PhysMem: 15G used (2123M wired), 1160M unused.`

const sampleVMStat = `Mach Virtual Memory Statistics: (page size of 16384 bytes)
Pages free:                               70911.
Pages active:                            400000.
Pages inactive:                          250000.
Pages speculative:                        10000.
Pages wired down:                        100000.
Pages occupied by compressor:             50000.
hw.memsize: 17179869184`

const sampleDarwinIostat = `              disk0               disk1
    KB/t  tps  MB/s     KB/t  tps  MB/s
   23.44   41  0.94    11.02    4  0.04
   18.20   12  0.21     8.00    2  0.02`

const sampleNetstatIB = `Name  Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
lo0   16384 <Link#1>                         81801     0   50000000    81801     0   50000000     0
en0   1500  <Link#4>    a4:83:e7:01:02:03  1200000     0  900000000   800000     0  100000000     0
en0   1500  192.168.1     192.168.1.5      1200000     -  900000000   800000     -  100000000     -`

func TestParseLinuxCPU(t *testing.T) {
	pct, err := parseLinuxCPU(sampleLinuxTop)
	require.NoError(t, err)
	assert.InDelta(t, 8.8, pct, 0.01) // 100 - 91.2
}

func TestParseLinuxCPUOldFormat(t *testing.T) {
	old := "Cpu(s):  3.5%us,  1.0%sy,  0.0%ni, 94.0%id,  1.5%wa,  0.0%hi,  0.0%si,  0.0%st"
	pct, err := parseLinuxCPU(old)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, pct, 0.01)
}

func TestParseLinuxCPUMissing(t *testing.T) {
	_, err := parseLinuxCPU("Tasks: 10 total")
	assert.Error(t, err)

	_, err = parseLinuxCPU("")
	assert.Error(t, err)
}

func TestParseFreeMemory(t *testing.T) {
	pct, err := parseFreeMemory(sampleFree)
	require.NoError(t, err)
	assert.InDelta(t, 8659192.0/16278948.0*100, pct, 0.01)
}

func TestParseFreeMemoryBad(t *testing.T) {
	_, err := parseFreeMemory("Swap: 0 0 0")
	assert.Error(t, err)

	_, err = parseFreeMemory("Mem: abc def ghi")
	assert.Error(t, err)
}

func TestParseLinuxDisk(t *testing.T) {
	util, err := parseLinuxDisk(sampleIostat)
	require.NoError(t, err)
	// Highest %util from the final interval, not the first
	assert.InDelta(t, 2.10, util, 0.001)
}

func TestParseLinuxDiskEmpty(t *testing.T) {
	_, err := parseLinuxDisk("")
	assert.Error(t, err)

	// header only, no device rows
	_, err = parseLinuxDisk("Device r/s w/s %util")
	assert.Error(t, err)
}

func TestParseNetCounters(t *testing.T) {
	total, err := parseNetCounters(sampleProcNetDev)
	require.NoError(t, err)
	// eth0 + wlan0 rx+tx, loopback excluded
	assert.Equal(t, int64(1000000+500000+250000+250000), total)
}

func TestParseNetCountersNoInterfaces(t *testing.T) {
	_, err := parseNetCounters("header\nheader2\n")
	assert.Error(t, err)
}

func TestParseDarwinCPU(t *testing.T) {
	pct, err := parseDarwinCPU(sampleDarwinTop)
	require.NoError(t, err)
	assert.InDelta(t, 18.43, pct, 0.01)
}

func TestParseDarwinMemory(t *testing.T) {
	pct, err := parseDarwinMemory(sampleVMStat)
	require.NoError(t, err)
	// (400000+100000+50000) pages * 16384 / 17179869184
	expected := float64((400000+100000+50000)*16384) / 17179869184.0 * 100
	assert.InDelta(t, expected, pct, 0.01)
}

func TestParseDarwinMemoryNoTotal(t *testing.T) {
	_, err := parseDarwinMemory("Pages active: 100.")
	assert.Error(t, err)
}

func TestParseDarwinDisk(t *testing.T) {
	mbs, err := parseDarwinDisk(sampleDarwinIostat)
	require.NoError(t, err)
	assert.InDelta(t, 0.23, mbs, 0.001)
}

func TestParseDarwinNet(t *testing.T) {
	total, err := parseDarwinNet(sampleNetstatIB)
	require.NoError(t, err)
	// en0 Link row only, lo0 and the duplicate address row excluded
	assert.Equal(t, int64(900000000+100000000), total)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-3))
	assert.Equal(t, 50.0, clampPercent(50))
	assert.Equal(t, 100.0, clampPercent(100.4))
}
