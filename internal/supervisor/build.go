package supervisor

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Build compiles the server binary with the external Go toolchain. The
// toolchain is an opaque command: devctl only relays its diagnostics.
func (s *Supervisor) Build() error {
	goBin, err := exec.LookPath("go")
	if err != nil {
		return fmt.Errorf("%w: go toolchain not found on PATH", ErrToolUnavailable)
	}
	s.log.Info("building server", "package", s.cfg.BuildPackage)
	cmd := exec.Command(goBin, "build", "-o", s.cfg.ServerBinary(), s.cfg.BuildPackage)
	cmd.Dir = s.cfg.ProjectRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v\n%s", ErrBuildFailed, err, stderr.String())
	}
	return nil
}
