package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

// AppSchemes describes the URL schemes an installed app registers.
type AppSchemes struct {
	BundleID string
	Name     string
	Schemes  []string
}

// DiscoverSchemes scans the booted simulator's installed apps for registered
// URL schemes. Best-effort: apps whose Info.plist cannot be read are skipped.
func DiscoverSchemes(ctx context.Context) ([]AppSchemes, error) {
	udid, err := bootedUDID(ctx)
	if err != nil {
		return nil, err
	}

	paths := listAppPaths(ctx, udid)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no installed apps found on simulator %s", udid)
	}

	var out []AppSchemes
	for _, appPath := range paths {
		info, err := readInfoPlist(ctx, filepath.Join(appPath, "Info.plist"))
		if err != nil {
			logger.Debug("skipping %s: %v", appPath, err)
			continue
		}
		entry := AppSchemes{
			BundleID: stringField(info, "CFBundleIdentifier"),
			Name:     appDisplayName(info, appPath),
			Schemes:  extractSchemes(info),
		}
		if entry.BundleID == "" {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BundleID < out[j].BundleID })
	return out, nil
}

func bootedUDID(ctx context.Context) (string, error) {
	out, err := run(ctx, "xcrun", "simctl", "list", "devices", "booted", "--json")
	if err != nil {
		return "", fmt.Errorf("simctl list devices failed: %w", err)
	}
	var payload struct {
		Devices map[string][]device `json:"devices"`
	}
	if err := json.UnmarshalString(out, &payload); err != nil {
		return "", fmt.Errorf("failed to parse simctl device list: %w", err)
	}
	for _, list := range payload.Devices {
		for _, dev := range list {
			if dev.State == "Booted" {
				return dev.UDID, nil
			}
		}
	}
	return "", fmt.Errorf("no booted simulator found, boot one and retry")
}

// listAppPaths prefers simctl listapps (Xcode 15+) and falls back to
// scanning the device's application container directory.
func listAppPaths(ctx context.Context, udid string) []string {
	if paths := listAppsViaSimctl(ctx, udid); len(paths) > 0 {
		return paths
	}
	return listAppPathsByScanning(udid)
}

func listAppsViaSimctl(ctx context.Context, udid string) []string {
	out, err := run(ctx, "xcrun", "simctl", "listapps", udid)
	if err != nil || out == "" {
		return nil
	}
	converted, err := plistToJSON(ctx, out)
	if err != nil {
		return nil
	}
	var apps map[string]map[string]interface{}
	if err := json.UnmarshalString(converted, &apps); err != nil {
		return nil
	}
	var paths []string
	for _, info := range apps {
		for _, key := range []string{"Path", "Bundle", "bundlePath"} {
			if p, ok := info[key].(string); ok && strings.HasSuffix(p, ".app") {
				if _, err := os.Stat(p); err == nil {
					paths = append(paths, p)
					break
				}
			}
		}
	}
	sort.Strings(paths)
	return paths
}

func listAppPathsByScanning(udid string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(home, "Library/Developer/CoreSimulator/Devices", udid,
		"data/Containers/Bundle/Application")
	var paths []string
	for _, pattern := range []string{"*/*.app", "*/*/*.app"} {
		matches, _ := filepath.Glob(filepath.Join(base, pattern))
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths
}

// readInfoPlist reads a (usually binary) plist by converting it to JSON with
// plutil, which ships with macOS alongside simctl.
func readInfoPlist(ctx context.Context, path string) (map[string]interface{}, error) {
	out, err := run(ctx, "plutil", "-convert", "json", "-o", "-", path)
	if err != nil {
		return nil, fmt.Errorf("plutil convert failed: %w", err)
	}
	var info map[string]interface{}
	if err := json.UnmarshalString(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse converted plist: %w", err)
	}
	return info, nil
}

func plistToJSON(ctx context.Context, plist string) (string, error) {
	cmd := exec.CommandContext(ctx, "plutil", "-convert", "json", "-o", "-", "--", "-")
	cmd.Stdin = strings.NewReader(plist)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func stringField(info map[string]interface{}, key string) string {
	s, _ := info[key].(string)
	return s
}

func appDisplayName(info map[string]interface{}, appPath string) string {
	if name := stringField(info, "CFBundleDisplayName"); name != "" {
		return name
	}
	if name := stringField(info, "CFBundleName"); name != "" {
		return name
	}
	return strings.TrimSuffix(filepath.Base(appPath), ".app")
}

func extractSchemes(info map[string]interface{}) []string {
	types, _ := info["CFBundleURLTypes"].([]interface{})
	seen := make(map[string]struct{})
	for _, t := range types {
		entry, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		schemes, _ := entry["CFBundleURLSchemes"].([]interface{})
		for _, s := range schemes {
			if str, ok := s.(string); ok && str != "" {
				seen[str] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
