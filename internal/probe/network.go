package probe

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/monify-labs/hostfetch/pkg/models"
	gopsutilNet "github.com/shirou/gopsutil/v4/net"
	"github.com/sirupsen/logrus"
)

var errNoAddress = errors.New("no usable IPv4 address")

// virtualPrefixes name bridge and container interfaces, used only when
// nothing physical has an address
var virtualPrefixes = []string{"docker", "veth", "br-", "virbr", "cni", "flannel", "vxlan", "vmnet", "vboxnet"}

// NetworkProbe resolves the primary local IPv4 address
type NetworkProbe struct {
	interfaces func(context.Context) (gopsutilNet.InterfaceStatList, error)
	log        logrus.FieldLogger
}

// NewNetworkProbe creates a probe backed by gopsutil interface enumeration
func NewNetworkProbe(log logrus.FieldLogger) *NetworkProbe {
	return &NetworkProbe{
		interfaces: gopsutilNet.InterfacesWithContext,
		log:        log,
	}
}

// LocalIP returns the best non-loopback IPv4 address or "Unknown IP"
func (n *NetworkProbe) LocalIP(ctx context.Context) string {
	ifaces, err := n.interfaces(ctx)
	if err != nil {
		logProbeFailure(n.log, "network", err)
		return models.UnknownIP
	}

	ip := primaryIPv4(ifaces)
	if ip == "" {
		logProbeFailure(n.log, "network", errNoAddress)
		return models.UnknownIP
	}
	return ip
}

// primaryIPv4 ranks candidate addresses: up interfaces before down ones,
// physical before virtual, private ranges before anything else. Ties
// keep enumeration order.
func primaryIPv4(ifaces gopsutilNet.InterfaceStatList) string {
	best := ""
	bestScore := -1

	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") {
			continue
		}

		for _, addr := range iface.Addrs {
			// Parse IP from CIDR notation
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil {
				// Try parsing as plain IP
				ip = net.ParseIP(addr.Addr)
			}
			if ip == nil || ip.To4() == nil {
				continue
			}
			if ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
				continue
			}

			score := 0
			if hasFlag(iface.Flags, "up") {
				score += 4
			}
			if !isVirtualInterface(iface.Name) {
				score += 2
			}
			if ip.IsPrivate() {
				score++
			}

			if score > bestScore {
				best = ip.String()
				bestScore = score
			}
		}
	}

	return best
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func isVirtualInterface(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
