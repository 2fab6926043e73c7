package llm

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

// TLSMode is the transport-security policy a connection strategy applies
// when talking to a provider.
type TLSMode string

const (
	// TLSInsecure disables certificate verification entirely. Tried first
	// on the ladder: in restricted corporate networks the blocking
	// condition is usually certificate interception, not malice.
	TLSInsecure TLSMode = "insecure"

	// TLSDefault uses the system certificate pool.
	TLSDefault TLSMode = "default"

	// TLSCustomCA trusts only the CA bundle named by the caBundle path.
	TLSCustomCA TLSMode = "custom"
)

// NewHTTPClient builds an *http.Client for the given transport-security
// policy and timeout. Proxy endpoint variables (HTTPS_PROXY etc.) are
// honored through http.ProxyFromEnvironment. caBundle is only consulted
// for TLSCustomCA.
func NewHTTPClient(mode TLSMode, caBundle string, timeout time.Duration) (*http.Client, error) {
	tlsCfg, err := tlsConfigFor(mode, caBundle)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSClientConfig:     tlsCfg,
		TLSHandshakeTimeout: timeout,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

func tlsConfigFor(mode TLSMode, caBundle string) (*tls.Config, error) {
	switch mode {
	case TLSInsecure:
		return &tls.Config{InsecureSkipVerify: true}, nil

	case TLSDefault:
		return nil, nil

	case TLSCustomCA:
		if caBundle == "" {
			return nil, fmt.Errorf("custom TLS mode requires a CA bundle path")
		}
		pem, err := os.ReadFile(caBundle)
		if err != nil {
			return nil, fmt.Errorf("read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("CA bundle %s contains no valid certificates", caBundle)
		}
		return &tls.Config{RootCAs: pool}, nil

	default:
		return nil, fmt.Errorf("unknown TLS mode: %q", mode)
	}
}
