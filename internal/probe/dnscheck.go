package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

const (
	DNSResolves    = "RESOLVES"
	DNSNXDomain    = "NXDOMAIN"
	DNSNoARecord   = "NO_A_RECORD"
	DNSServfail    = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName = "INVALID_NAME"
)

type DNSStatus struct {
	Domain        string
	HasAOrAAAA    bool
	IPs           []net.IP
	CNAME         string
	HasNS         bool
	Nameservers   []string
	Class         string
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// CheckDNS explains why a host could not be fetched. Hosts that resolve
// point at a transport or TLS problem instead.
func CheckDNS(ctx context.Context, domain string) DNSStatus {
	s := DNSStatus{Domain: strings.TrimSpace(domain)}
	if ip := net.ParseIP(s.Domain); ip != nil {
		s.HasAOrAAAA = true
		s.IPs = []net.IP{ip}
		s.Class = DNSResolves
		return s
	}
	if s.Domain == "" || strings.ContainsAny(s.Domain, "/: \t") {
		s.Class = DNSInvalidName
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()
	r := &net.Resolver{} // OS resolver

	ips, err := r.LookupIP(ctx, "ip", s.Domain)
	if err == nil && len(ips) > 0 {
		s.HasAOrAAAA = true
		s.IPs = ips
		s.Class = DNSResolves
	} else if err != nil {
		var de *net.DNSError
		s.ResolverError = err.Error()
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				s.Class = DNSServfail
			}
		}
	}

	if cname, err := r.LookupCNAME(ctx, s.Domain); err == nil && !strings.EqualFold(cname, s.Domain+".") {
		s.CNAME = strings.TrimSuffix(cname, ".")
	}

	if ns, err := r.LookupNS(ctx, s.Domain); err == nil && len(ns) > 0 {
		s.HasNS = true
		for _, n := range ns {
			s.Nameservers = append(s.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		if s.Class == DNSNXDomain {
			s.Class = DNSNoARecord
		}
	}

	if s.Class == "" {
		if s.HasAOrAAAA {
			s.Class = DNSResolves
		} else if s.HasNS {
			s.Class = DNSNoARecord
		} else if s.ResolverError != "" {
			s.Class = DNSServfail
		} else {
			s.Class = DNSNXDomain
		}
	}
	return s
}
