// Package certview summarizes PEM-encoded X.509 certificates for the hub's
// admin tooling.
package certview

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"
)

var ErrNoCertificates = errors.New("no certificates found in PEM input")

// Summary is the human-facing view of one certificate.
type Summary struct {
	Subject      string
	Issuer       string
	SerialNumber string
	NotBefore    time.Time
	NotAfter     time.Time
	DNSNames     []string
	IsCA         bool
	Expired      bool
}

// Parse extracts every CERTIFICATE block from pemData and summarizes it.
// Non-certificate blocks are skipped.
func Parse(pemData []byte) ([]Summary, error) {
	return parseAt(pemData, time.Now())
}

func parseAt(pemData []byte, now time.Time) ([]Summary, error) {
	var out []Summary

	rest := pemData
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate: %w", err)
		}

		out = append(out, Summary{
			Subject:      cert.Subject.String(),
			Issuer:       cert.Issuer.String(),
			SerialNumber: cert.SerialNumber.String(),
			NotBefore:    cert.NotBefore,
			NotAfter:     cert.NotAfter,
			DNSNames:     cert.DNSNames,
			IsCA:         cert.IsCA,
			Expired:      now.After(cert.NotAfter),
		})
	}

	if len(out) == 0 {
		return nil, ErrNoCertificates
	}
	return out, nil
}
