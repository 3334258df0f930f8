package auth

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/rs/zerolog/log"
)

// IPWhitelist decides which client addresses may reach admin endpoints.
type IPWhitelist struct {
	prefixes   []netip.Prefix
	trustProxy bool
}

// NewIPWhitelist builds a whitelist from single addresses and CIDR ranges.
// When trustProxy is set the client address is taken from proxy headers.
func NewIPWhitelist(entries []string, trustProxy bool) (*IPWhitelist, error) {
	w := &IPWhitelist{trustProxy: trustProxy}
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid whitelist range %q: %w", entry, err)
			}
			w.prefixes = append(w.prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid whitelist address %q: %w", entry, err)
		}
		addr = addr.Unmap()
		w.prefixes = append(w.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return w, nil
}

// GetClientIP resolves the caller's address: first X-Forwarded-For hop, then
// X-Real-IP, then the socket address.
func (w *IPWhitelist) GetClientIP(r *http.Request) string {
	if w.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if first != "" {
				return first
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IsIPAllowed reports whether ip falls inside any whitelist entry. Unparseable
// input is never allowed.
func (w *IPWhitelist) IsIPAllowed(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		log.Debug().Str("ip", ip).Msg("Rejecting unparseable client address")
		return false
	}
	addr = addr.Unmap()
	for _, p := range w.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
