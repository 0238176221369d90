package handlers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func ParseMeta(metaPath string) (Meta, error) {
	metaContent, err := os.ReadFile(metaPath)
	if err != nil {
		return Meta{}, fmt.Errorf("reading meta file: %w", err)
	}
	return parseMeta(string(metaContent)), nil
}

func parseMeta(content string) Meta {
	var meta Meta
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "status":
			meta.Status = value
		case "message":
			meta.Message = value
		case "killed":
			meta.Killed = atoi(value)
		case "exitcode":
			meta.ExitCode = atoi(value)
		case "exitsig":
			meta.ExitSig = atoi(value)
		case "time":
			meta.Time = atof(value)
		case "time-wall":
			meta.Time_Wall = atof(value)
		case "max-rss":
			meta.Max_RSS = atof(value)
		case "cg-mem":
			meta.CG_Mem = atof(value)
		case "cg-oom-killed":
			meta.CG_OOM_Killed = atoi(value)
		case "csw-voluntary":
			meta.CSW_Voluntary = atoi(value)
		case "csw-forced":
			meta.CSW_Forced = atoi(value)
		}
	}
	return meta
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}

// Outcome returns the verdict decided by the sandbox alone, or "" when the
// program exited cleanly and its output has to be checked.
func (m Meta) Outcome() string {
	if m.CG_OOM_Killed == 1 {
		return VerdictMemoryLimit
	}

	if m.Killed == 1 && m.Status == "TO" {
		return VerdictTimeLimit
	}

	switch m.Status {
	case "":
	case "RE", "SG":
		return VerdictRuntimeError
	case "TO":
		return VerdictTimeLimit
	default:
		return VerdictInternalError
	}

	if m.ExitCode != 0 {
		return VerdictRuntimeError
	}
	return ""
}
