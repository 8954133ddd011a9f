// Package discovery finds geoadmin development backends on the LAN over
// multicast DNS, and announces them.
//
// geoadmin-server registers itself as a "_geoadmin._tcp" service with TXT
// records describing the API. The client browses for that service type so
// `geoadmin discover` and the --discover flag can pick an API URL without
// configuration.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	backends, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, b := range backends {
//	    fmt.Println(b.Instance, b.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Client and backend must share a network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
