package builder

import (
	"os"
	"os/exec"
)

var (
	commonCxxCompilers = []string{"clang++", "g++", "icpx", "icpc", "cl"}
	cmakeTools         = []string{"cmake"}
)

// Toolchain is what is needed on the host to build a generated project.
// Empty fields were not found.
type Toolchain struct {
	CMake string
	CXX   string
}

// FindToolchain looks up CMake and a C++ compiler, honoring $CMAKE and $CXX.
func FindToolchain() Toolchain {
	return Toolchain{
		CMake: findTool("CMAKE", cmakeTools),
		CXX:   findTool("CXX", commonCxxCompilers),
	}
}

func findTool(envVar string, candidates []string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	for _, tool := range candidates {
		if path, err := exec.LookPath(tool); err == nil {
			return path
		}
	}
	return ""
}
