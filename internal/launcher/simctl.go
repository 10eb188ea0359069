package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

// URLOpener dispatches a URL scheme against a running target environment.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// SimctlDispatcher opens URL schemes on an iOS simulator via xcrun simctl.
// It boots the best available iPhone first when none is booted.
type SimctlDispatcher struct{}

// NewSimctlDispatcher creates a simulator dispatcher.
func NewSimctlDispatcher() *SimctlDispatcher {
	return &SimctlDispatcher{}
}

// Open ensures a booted iPhone and opens the URL on it.
func (d *SimctlDispatcher) Open(ctx context.Context, url string) error {
	if err := d.ensureBooted(ctx); err != nil {
		return err
	}
	logger.Debug("simctl openurl booted %s", url)
	if out, err := run(ctx, "xcrun", "simctl", "openurl", "booted", url); err != nil {
		return fmt.Errorf("simctl openurl failed: %w: %s", err, out)
	}
	return nil
}

// NopDispatcher skips dispatch entirely. Used by --dry-run, where the
// decision and URL are reported but nothing is launched.
type NopDispatcher struct{}

func (NopDispatcher) Open(context.Context, string) error { return nil }

// device is one simulator entry from `simctl list devices available -j`.
type device struct {
	Name        string `json:"name"`
	UDID        string `json:"udid"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
}

var reIPhoneNumber = regexp.MustCompile(`iPhone\s+(\d+)`)

// rank orders iPhones newest/best first: model number, then
// Pro Max > Pro > Plus > base. SE and other non-numbered models sort last.
func rank(name string) (int, int) {
	m := reIPhoneNumber.FindStringSubmatch(name)
	if m == nil {
		return 0, -1
	}
	number, _ := strconv.Atoi(m[1])
	low := strings.ToLower(name)
	switch {
	case strings.Contains(low, "pro max") || strings.Contains(low, "promax"):
		return number, 3
	case strings.Contains(low, "pro"):
		return number, 2
	case strings.Contains(low, "plus"):
		return number, 1
	}
	return number, 0
}

func betterRanked(a, b string) bool {
	an, at := rank(a)
	bn, bt := rank(b)
	if an != bn {
		return an > bn
	}
	return at > bt
}

func (d *SimctlDispatcher) ensureBooted(ctx context.Context) error {
	out, err := run(ctx, "xcrun", "simctl", "list", "devices", "booted")
	if err == nil && strings.Contains(out, "Booted") {
		return nil
	}
	_, err = d.bootBestAvailable(ctx)
	return err
}

func (d *SimctlDispatcher) listAvailableIPhones(ctx context.Context) ([]device, error) {
	out, err := run(ctx, "xcrun", "simctl", "list", "devices", "available", "-j")
	if err != nil {
		return nil, fmt.Errorf("simctl list devices failed: %w", err)
	}

	var payload struct {
		Devices map[string][]device `json:"devices"`
	}
	if err := json.UnmarshalString(out, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse simctl device list: %w", err)
	}

	var devices []device
	for _, list := range payload.Devices {
		for _, dev := range list {
			if strings.HasPrefix(dev.Name, "iPhone") && dev.IsAvailable {
				devices = append(devices, dev)
			}
		}
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return betterRanked(devices[i].Name, devices[j].Name)
	})
	return devices, nil
}

// bootBestAvailable boots the best available iPhone, newest first, trying
// each candidate until one boots. Returns the UDID that ends up booted.
func (d *SimctlDispatcher) bootBestAvailable(ctx context.Context) (string, error) {
	devices, err := d.listAvailableIPhones(ctx)
	if err != nil {
		return "", err
	}
	if len(devices) == 0 {
		return "", fmt.Errorf("no available iPhone simulators found")
	}

	for _, dev := range devices {
		if dev.State == "Booted" {
			return dev.UDID, nil
		}
	}

	var lastErr error
	for _, dev := range devices {
		logger.Info("booting %s (%s)", dev.Name, dev.UDID)
		if _, err := run(ctx, "xcrun", "simctl", "boot", dev.UDID); err != nil {
			logger.Warn("could not boot %s: %v", dev.Name, err)
			lastErr = err
			continue
		}
		if _, err := run(ctx, "open", "-a", "Simulator"); err != nil {
			logger.Warn("could not open Simulator app: %v", err)
		}
		if _, err := run(ctx, "xcrun", "simctl", "bootstatus", dev.UDID, "-b"); err != nil {
			logger.Warn("boot status wait failed for %s: %v", dev.Name, err)
			lastErr = err
			continue
		}
		return dev.UDID, nil
	}
	return "", fmt.Errorf("failed to boot any iPhone simulator: %w", lastErr)
}

func run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
