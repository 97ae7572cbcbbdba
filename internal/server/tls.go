package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"net"
	"strings"
	"time"

	qxerrors "github.com/qxad-lang/qxad/internal/errors"
)

const selfSignedLifetime = 30 * 24 * time.Hour

// tlsConfig picks the certificate for a listener bound to addr: the
// configured files first, then a generated one when SelfSigned is set.
// A nil config means plain HTTP.
func (s *Server) tlsConfig(addr net.Addr) (*tls.Config, error) {
	var cert tls.Certificate
	switch {
	case s.cfg.HasCertFiles():
		var err error
		cert, err = tls.LoadX509KeyPair(s.cfg.CertFile, s.cfg.KeyFile)
		if err != nil {
			return nil, qxerrors.ConfigInvalid(s.cfg.CertFile, err)
		}
	case s.cfg.CertFile != "" || s.cfg.KeyFile != "":
		return nil, qxerrors.ConfigInvalid("server", errors.New("cert_file and key_file must be set together"))
	case s.cfg.SelfSigned:
		hosts := certHosts(addr)
		var err error
		cert, err = selfSignedCert(hosts, time.Now())
		if err != nil {
			return nil, qxerrors.SystemFailure("generate certificate", err)
		}
		s.logger.Warn("using a self-signed certificate for %s", strings.Join(hosts, ", "))
	default:
		return nil, nil
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS13}, nil
}

// certHosts lists the names a development certificate should cover:
// the loopback names plus the bound IP when it is a concrete address.
func certHosts(addr net.Addr) []string {
	hosts := []string{"localhost", "127.0.0.1", "::1"}
	if addr == nil {
		return hosts
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return hosts
	}
	if ip := net.ParseIP(host); ip != nil && !ip.IsUnspecified() && !ip.IsLoopback() {
		hosts = append(hosts, ip.String())
	}
	return hosts
}

// selfSignedCert creates an ECDSA P-256 certificate valid from now for
// selfSignedLifetime. It never touches disk.
func selfSignedCert(hosts []string, now time.Time) (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return tls.Certificate{}, err
	}

	tmpl := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"qxad development"}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(selfSignedLifetime),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
			continue
		}
		tmpl.DNSNames = append(tmpl.DNSNames, h)
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, key.Public(), key)
	if err != nil {
		return tls.Certificate{}, err
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key, Leaf: leaf}, nil
}
