package ingest

import (
	"fmt"
	"runtime"
	"strings"

	"llmapi/internal/common/fsutil"
)

// Detector reports whether accelerated (GPU-class) hardware is available.
type Detector interface {
	Accelerated() bool
}

// Fixed is a Detector with a constant answer.
type Fixed bool

func (f Fixed) Accelerated() bool { return bool(f) }

// nvidiaProbes are files present when an NVIDIA driver is loaded.
var nvidiaProbes = []string{"/proc/driver/nvidia/version", "/dev/nvidia0"}

// AutoDetector probes for an NVIDIA driver or Apple Silicon.
type AutoDetector struct {
	// Probes overrides nvidiaProbes when non-empty.
	Probes []string
	// GOOS and GOARCH override the runtime values when set.
	GOOS, GOARCH string
}

func (d AutoDetector) Accelerated() bool {
	goos, goarch := d.GOOS, d.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	if goos == "darwin" && goarch == "arm64" {
		return true
	}
	probes := d.Probes
	if len(probes) == 0 {
		probes = nvidiaProbes
	}
	return fsutil.AnyExists(probes...)
}

// ParseDetector maps a configuration mode (auto|on|off) to a Detector.
func ParseDetector(mode string) (Detector, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return AutoDetector{}, nil
	case "on", "true", "gpu":
		return Fixed(true), nil
	case "off", "false", "cpu":
		return Fixed(false), nil
	default:
		return nil, fmt.Errorf("unknown accelerator mode %q", mode)
	}
}
