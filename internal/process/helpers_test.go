package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// Shell scripts standing in for pyobs. They are run through /bin/sh, which
// takes the interpreter slot, and receive the config base name as $1.
const (
	cooperativeScript = `echo "started $1" >&2
echo "" >&2
echo "   padded   " >&2
trap 'echo "shutting down" >&2; exit 0' TERM
echo ready >&2
while true; do sleep 0.05; done
`
	stubbornScript = `trap '' TERM
echo ready >&2
while true; do sleep 0.05; done
`
	countingScript = `i=0
while [ $i -lt 200 ]; do
  echo "line $i" >&2
  [ $((i % 10)) -eq 0 ] && echo "   " >&2
  i=$((i+1))
done
echo "to stdout"
`
	pwdScript = `pwd -P >&2
`
	exitScript = `echo "bye" >&2
exit 3
`
	oversizedScript = `head -c 1100000 /dev/zero | tr '\0' x >&2
echo >&2
echo after >&2
`
)

const (
	testTimeout = 5 * time.Second
	testTick    = 10 * time.Millisecond
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("supervisor tests drive /bin/sh children")
	}
}

// fixture writes script as the fake pyobs and a config file named cfgName
// in its own directory. It returns the Options and config path to use.
func fixture(t *testing.T, script, cfgName string, killTimeout time.Duration) (Options, string) {
	t.Helper()
	requireUnix(t)

	binDir := t.TempDir()
	pyobs := filepath.Join(binDir, "pyobs.sh")
	if err := os.WriteFile(pyobs, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	cfgDir := t.TempDir()
	cfg := filepath.Join(cfgDir, cfgName)
	if err := os.WriteFile(cfg, []byte("class: pyobs.modules.Module\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return Options{Pyobs: pyobs, Python: "/bin/sh", KillTimeout: killTimeout}, cfg
}

func sinkContains(s *LogSink, want string) bool {
	for _, line := range s.Lines() {
		if line == want {
			return true
		}
	}
	return false
}

// cleanupSupervisor makes sure no child outlives the test.
func cleanupSupervisor(t *testing.T, s *Supervisor) {
	t.Cleanup(func() {
		if pid := s.PID(); pid > 0 && s.Running() {
			_ = killProcess(pid)
			select {
			case <-s.Done():
			case <-time.After(testTimeout):
			}
		}
	})
}
