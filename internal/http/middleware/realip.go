package middleware

import (
	"fmt"
	"net"

	echo "github.com/labstack/echo/v4"
)

// ClientIP picks how c.RealIP() finds the visitor. Without a proxy in front,
// only the connection address counts and X-Forwarded-For is ignored. Behind
// a proxy, X-Forwarded-For is walked back through the trusted ranges only.
func ClientIP(behindProxy bool, trusted []string) (echo.IPExtractor, error) {
	if !behindProxy {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
