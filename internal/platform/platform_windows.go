//go:build windows

package platform

import (
	"fmt"
	"syscall"
)

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procOpenProcess      = kernel32.NewProc("OpenProcess")
	procTerminateProcess = kernel32.NewProc("TerminateProcess")
	procCloseHandle      = kernel32.NewProc("CloseHandle")
)

const (
	processTerminate        = 0x0001
	processQueryInformation = 0x0400
)

type windowsAPI struct{}

func newAPI() API { return windowsAPI{} }

func (windowsAPI) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	h, err := openProcess(processQueryInformation, uint32(pid))
	if err != nil {
		return false
	}
	_ = closeHandle(h)
	return true
}

func (windowsAPI) FindByName(name string) []int { return listByName(name) }

func (windowsAPI) FindByPort(port int) (int, error) { return listenerOnPort(port) }

// Terminate has no graceful mode on Windows without a console to signal;
// both modes call TerminateProcess, matching taskkill semantics.
func (windowsAPI) Terminate(pid int, force bool) error {
	if pid <= 0 {
		return nil
	}
	h, err := openProcess(processTerminate, uint32(pid))
	if err != nil {
		// Unopenable PIDs are typically already gone; report success so
		// terminate stays idempotent against dead processes.
		return nil
	}
	defer func() { _ = closeHandle(h) }()
	ret, _, callErr := procTerminateProcess.Call(uintptr(h), uintptr(1))
	if ret == 0 {
		return fmt.Errorf("terminate pid %d: %w", pid, callErr)
	}
	return nil
}

func openProcess(access uint32, pid uint32) (syscall.Handle, error) {
	ret, _, err := procOpenProcess.Call(uintptr(access), uintptr(0), uintptr(pid))
	if ret == 0 {
		return 0, err
	}
	return syscall.Handle(ret), nil
}

func closeHandle(h syscall.Handle) error {
	ret, _, err := procCloseHandle.Call(uintptr(h))
	if ret == 0 {
		return err
	}
	return nil
}
