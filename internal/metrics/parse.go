package metrics

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// clampPercent bounds a percentage reading to [0,100]. OS tools
// occasionally report 100.1 or small negatives under rounding.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// parseLinuxCPU extracts CPU utilization from the header of `top -bn1`.
// The Cpu(s) line reports per-state percentages; utilization is 100 - idle.
func parseLinuxCPU(topOutput string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(topOutput))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Cpu(s)") {
			continue
		}

		// Everything after the colon is "1.2 us,  0.5 sy, ... 97.8 id, ..."
		colonIdx := strings.Index(line, ":")
		if colonIdx < 0 {
			continue
		}

		for _, part := range strings.Split(line[colonIdx+1:], ",") {
			part = strings.TrimSpace(part)
			if !strings.HasSuffix(part, "id") {
				continue
			}
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			// Older tops print "97.8%id" rather than "97.8 id"
			idleStr := strings.TrimSuffix(fields[0], "%id")
			idleStr = strings.TrimSuffix(idleStr, "%")
			idle, err := strconv.ParseFloat(idleStr, 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse idle value %q: %w", fields[0], err)
			}
			return clampPercent(100 - idle), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning top output: %w", err)
	}
	return 0, fmt.Errorf("no Cpu(s) line in top output")
}

// parseFreeMemory extracts used-memory percent from `free` output.
func parseFreeMemory(freeOutput string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(freeOutput))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Mem") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return 0, fmt.Errorf("short Mem line in free output: %s", line)
		}

		total, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse total memory %q: %w", fields[1], err)
		}
		used, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse used memory %q: %w", fields[2], err)
		}

		if total <= 0 {
			return 0, fmt.Errorf("non-positive total memory in free output")
		}
		return clampPercent(used / total * 100), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning free output: %w", err)
	}
	return 0, fmt.Errorf("no Mem line in free output")
}

// parseLinuxDisk extracts device utilization from `iostat -x 1 2` output.
// The second reporting interval reflects current activity; %util is the
// last column of each device row. Returns the highest %util across devices
// in the final interval.
func parseLinuxDisk(iostatOutput string) (float64, error) {
	lines := nonEmptyLines(iostatOutput)
	if len(lines) == 0 {
		return 0, fmt.Errorf("empty iostat output")
	}

	// Find the last "Device" header; rows after it belong to the final
	// sampling interval.
	lastHeader := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "Device") {
			lastHeader = i
		}
	}
	if lastHeader < 0 || lastHeader == len(lines)-1 {
		return 0, fmt.Errorf("no device rows in iostat output")
	}

	maxUtil := -1.0
	for _, line := range lines[lastHeader+1:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		util, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			continue
		}
		if util > maxUtil {
			maxUtil = util
		}
	}

	if maxUtil < 0 {
		return 0, fmt.Errorf("no parsable device rows in iostat output")
	}
	return clampPercent(maxUtil), nil
}

// parseNetCounters sums receive and transmit byte counters across all
// non-loopback interfaces in /proc/net/dev. The result is cumulative;
// callers derive rates from deltas between reads.
func parseNetCounters(procNetDev string) (int64, error) {
	scanner := bufio.NewScanner(strings.NewReader(procNetDev))

	var total int64
	found := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Two header lines precede the interface rows
		if lineNum <= 2 {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		if name == "lo" {
			continue
		}

		fields := strings.Fields(parts[1])
		if len(fields) < 9 {
			continue
		}

		rx, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse rx bytes for %s: %w", name, err)
		}
		tx, err := strconv.ParseInt(fields[8], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse tx bytes for %s: %w", name, err)
		}

		total += rx + tx
		found = true
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning /proc/net/dev: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("no interface rows in /proc/net/dev")
	}
	return total, nil
}

// parseDarwinCPU extracts CPU utilization from `top -l 1` output.
func parseDarwinCPU(topOutput string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(topOutput))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "CPU usage:") {
			continue
		}

		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if !strings.Contains(part, "idle") {
				continue
			}
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			idle, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse idle value %q: %w", fields[0], err)
			}
			return clampPercent(100 - idle), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning top output: %w", err)
	}
	return 0, fmt.Errorf("no CPU usage line in top output")
}

// parseDarwinMemory extracts used-memory percent from vm_stat plus
// `sysctl hw.memsize` output. Used = active + wired + compressor pages.
func parseDarwinMemory(vmStatOutput string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(vmStatOutput))

	pageSize := int64(16384)
	var pagesActive, pagesWired, pagesCompressed int64
	var totalBytes int64

	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "page size of") {
			start := strings.Index(line, "page size of")
			rest := strings.TrimSpace(line[start+len("page size of"):])
			fields := strings.Fields(rest)
			if len(fields) >= 1 {
				if size, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
					pageSize = size
				}
			}
			continue
		}

		// sysctl output: "hw.memsize: 17179869184"
		if strings.HasPrefix(line, "hw.memsize:") {
			parts := strings.Split(line, ":")
			if len(parts) == 2 {
				if val, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64); err == nil {
					totalBytes = val
				}
			}
			continue
		}

		colonIdx := strings.Index(line, ":")
		if colonIdx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:colonIdx])
		valStr := strings.TrimSuffix(strings.TrimSpace(line[colonIdx+1:]), ".")
		val, err := strconv.ParseInt(valStr, 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "Pages active":
			pagesActive = val
		case "Pages wired down":
			pagesWired = val
		case "Pages occupied by compressor":
			pagesCompressed = val
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning vm_stat output: %w", err)
	}

	if totalBytes <= 0 {
		return 0, fmt.Errorf("no hw.memsize in vm_stat output")
	}

	usedBytes := (pagesActive + pagesWired + pagesCompressed) * pageSize
	return clampPercent(float64(usedBytes) / float64(totalBytes) * 100), nil
}

// parseDarwinDisk extracts combined disk throughput in MB/s from
// `iostat -d -c 2` output. Rows are "KB/t tps MB/s" triples per disk; the
// last row is the current interval.
func parseDarwinDisk(iostatOutput string) (float64, error) {
	lines := nonEmptyLines(iostatOutput)
	if len(lines) < 3 {
		return 0, fmt.Errorf("short iostat output")
	}

	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) < 3 {
		return 0, fmt.Errorf("short iostat row: %s", lines[len(lines)-1])
	}

	var total float64
	found := false
	// MB/s is every third column, one triple per disk
	for i := 2; i < len(fields); i += 3 {
		mbs, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse MB/s field %q: %w", fields[i], err)
		}
		total += mbs
		found = true
	}
	if !found {
		return 0, fmt.Errorf("no MB/s columns in iostat row")
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

// parseDarwinNet sums receive and transmit byte counters from
// `netstat -ib` output, taking the Link# row per interface and skipping
// loopback. The result is cumulative, like parseNetCounters.
func parseDarwinNet(netstatOutput string) (int64, error) {
	scanner := bufio.NewScanner(strings.NewReader(netstatOutput))

	headerSkipped := false
	seen := make(map[string]bool)
	var total int64
	found := false

	for scanner.Scan() {
		line := scanner.Text()

		if !headerSkipped {
			if strings.HasPrefix(line, "Name") {
				headerSkipped = true
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 10 {
			continue
		}

		name := fields[0]
		if seen[name] || name == "lo0" {
			continue
		}

		isLinkRow := false
		for _, f := range fields {
			if strings.HasPrefix(f, "<Link#") {
				isLinkRow = true
				break
			}
		}
		if !isLinkRow {
			continue
		}
		seen[name] = true

		var numeric []int64
		for i := 1; i < len(fields); i++ {
			if val, err := strconv.ParseInt(fields[i], 10, 64); err == nil {
				numeric = append(numeric, val)
			}
		}

		// Numeric columns: mtu ipkts ierrs ibytes opkts oerrs obytes coll
		if len(numeric) >= 7 {
			total += numeric[3] + numeric[6]
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning netstat output: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("no interface rows in netstat output")
	}
	return total, nil
}

// nonEmptyLines splits s into trimmed, non-empty lines.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
