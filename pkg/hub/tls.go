package hub

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrCertificateMismatch indicates the hub presented a certificate other
// than the pinned one.
var ErrCertificateMismatch = errors.New("hub certificate does not match pinned certificate")

// TLSConfig returns the TLS settings for talking to the hub.
//
// The hub serves a self-signed certificate whose subject does not match its
// LAN address, so chain and host name verification cannot succeed. With no
// certPEM, any certificate is accepted and the bearer token is the only
// protection. With certPEM, the handshake succeeds only if the hub presents
// exactly that certificate.
func TLSConfig(certPEM []byte) (*tls.Config, error) {
	if len(certPEM) == 0 {
		return &tls.Config{InsecureSkipVerify: true}, nil //nolint:gosec // self-signed hub certificate
	}

	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("pinned hub certificate: no PEM certificate block")
	}
	pinned, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("pinned hub certificate: %w", err)
	}

	return &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // replaced by the exact-match check below
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if len(rawCerts) == 0 || !bytes.Equal(rawCerts[0], pinned.Raw) {
				return ErrCertificateMismatch
			}
			return nil
		},
	}, nil
}
