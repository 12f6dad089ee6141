package scraper

import (
	"fmt"
	"sync"
)

// portManager leases local ports to concurrent chromedriver sessions
type portManager struct {
	basePort  int
	portRange int
	inUse     map[int]bool
	mu        sync.Mutex
}

var (
	globalPortManager *portManager
	portManagerOnce   sync.Once
)

func initPortManager(basePort, portRange int) {
	portManagerOnce.Do(func() {
		globalPortManager = newPortManager(basePort, portRange)
	})
}

func newPortManager(basePort, portRange int) *portManager {
	inUse := make(map[int]bool, portRange)
	for i := 0; i < portRange; i++ {
		inUse[basePort+i] = false
	}
	return &portManager{basePort: basePort, portRange: portRange, inUse: inUse}
}

// GetPort claims the first free port in the range
func (pm *portManager) GetPort() (int, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for i := 0; i < pm.portRange; i++ {
		port := pm.basePort + i
		if !pm.inUse[port] {
			pm.inUse[port] = true
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available ports in range %d-%d", pm.basePort, pm.basePort+pm.portRange-1)
}

// ReleasePort returns a port to the pool
func (pm *portManager) ReleasePort(port int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.inUse[port] = false
}
