// Package caclient defines the collaborator interface a certificate-
// authority protocol client would satisfy. Issuing and renewing
// certificates is out of scope for this repository; this package exists
// only so internal/webplugin has something concrete to depend on when
// demonstrating how a config-mutating orchestrator wraps its edits in
// checkpoints.
package caclient

import "context"

// Certificate is the minimal result an issuance or renewal call hands
// back to the caller that installs it into a web-server configuration.
type Certificate struct {
	Domain   string
	CertPEM  []byte
	KeyPEM   []byte
	ChainPEM []byte
}

// Client is the subset of ACME-style operations a web-server plugin
// needs in order to obtain a certificate worth installing. No protocol
// implementation is provided; production callers supply their own.
type Client interface {
	RequestCertificate(ctx context.Context, domain string) (*Certificate, error)
}
