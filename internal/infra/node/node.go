package node

import (
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node describes the running api process. It is reported by /healthz and
// attached to the root logger.
type Node struct {
	ID         string    `json:"id"`
	Hostname   string    `json:"hostname"`
	IPAddress  string    `json:"ip_address"`
	Version    string    `json:"version"`
	CommitHash string    `json:"commit_hash"`
	StartedAt  time.Time `json:"started_at"`
}

// set through -ldflags at build time
var Version = "development"
var CommitHash = "unknown"

var (
	current     *Node
	currentOnce sync.Once
)

func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		current = &Node{
			ID:         uuid.NewString(),
			Hostname:   hostname(),
			IPAddress:  outboundIP(),
			Version:    Version,
			CommitHash: CommitHash,
			StartedAt:  time.Now().UTC(),
		}
	})
	return current
}

func (n *Node) Uptime() time.Duration {
	return time.Since(n.StartedAt)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}

func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
