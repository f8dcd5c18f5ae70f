package util

import "net"

// CIDRContains reports whether ip falls inside the prefix's numeric range.
// A malformed prefix or a malformed/empty IP never matches.
func CIDRContains(prefix, ip string) bool {
	if ip == "" {
		return false
	}
	_, ipNet, err := net.ParseCIDR(prefix)
	if err != nil {
		return false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return ipNet.Contains(parsed)
}

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

// IsValidCIDR checks if a string is valid CIDR notation
func IsValidCIDR(cidr string) bool {
	_, _, err := net.ParseCIDR(cidr)
	return err == nil
}
