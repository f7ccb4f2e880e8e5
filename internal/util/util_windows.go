//go:build windows

package util

import (
	"log/slog"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
)

// Shells whose child processes count as CLI launches.
var shellNames = map[string]bool{
	"cmd.exe":             true,
	"powershell.exe":      true,
	"pwsh.exe":            true,
	"wt.exe":              true,
	"conhost.exe":         true,
	"windowsterminal.exe": true,
}

// IsRunFromGUI reports whether the process was most likely started by a
// double click rather than from a shell. Without an attached console it
// always was; with one, the parent process name decides.
func IsRunFromGUI() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	parent := parentExecutable()
	slog.Debug("startup origin", "console", hwnd != 0, "parent", parent)

	if hwnd == 0 {
		return true
	}
	if shellNames[strings.ToLower(parent)] {
		return false
	}
	return strings.EqualFold(parent, "explorer.exe")
}

// parentExecutable resolves the parent process image name from a process
// snapshot in one pass.
func parentExecutable() string {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snapshot)

	self := uint32(os.Getpid())
	names := make(map[uint32]string)
	var parent uint32

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err := windows.Process32First(snapshot, &pe); err == nil; err = windows.Process32Next(snapshot, &pe) {
		names[pe.ProcessID] = windows.UTF16ToString(pe.ExeFile[:])
		if pe.ProcessID == self {
			parent = pe.ParentProcessID
		}
	}
	if parent == 0 {
		return ""
	}
	return names[parent]
}
