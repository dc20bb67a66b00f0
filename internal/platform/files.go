package platform

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// TorrentExtension is the extension of files the converter accepts
const TorrentExtension = ".torrent"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// IsTorrentFile reports whether path has a .torrent extension (case-insensitive).
func IsTorrentFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), TorrentExtension)
}

// CollectTorrentFiles expands dropped paths into the ordered list of .torrent
// files they refer to. Directories are walked recursively in lexical order.
// Paths that are neither directories nor .torrent files are returned in skipped.
func CollectTorrentFiles(paths []string) (files []string, skipped []string, err error) {
	for _, p := range paths {
		info, statErr := os.Stat(p)
		if statErr != nil || !info.IsDir() {
			// Missing files are left to the converter, which reports them per file.
			if IsTorrentFile(p) {
				files = append(files, p)
			} else {
				skipped = append(skipped, p)
			}
			continue
		}

		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if IsTorrentFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return files, skipped, fmt.Errorf("failed to scan directory %s: %w", p, walkErr)
		}
	}
	return files, skipped, nil
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	cmd := exec.Command(XDGOpenCommand, dir)
	if err := cmd.Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
