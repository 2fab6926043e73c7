package llm

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// A self-signed certificate is enough to exercise PEM parsing; it is
// never used to establish a connection in these tests.
const testCertPEM = `-----BEGIN CERTIFICATE-----
MIIBhTCCASugAwIBAgIQIRi6zePL6mKjOipn+dNuaTAKBggqhkjOPQQDAjASMRAw
DgYDVQQKEwdBY21lIENvMB4XDTE3MTAyMDE5NDMwNloXDTE4MTAyMDE5NDMwNlow
EjEQMA4GA1UEChMHQWNtZSBDbzBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IABD0d
7VNhbWvZLWPuj/RtHFjvtJBEwOkhbN/BnnE8rnZR8+sbwnc/KhCk3FhnpHZnQz7B
5aETbbIgmuvewdjvSBSjYzBhMA4GA1UdDwEB/wQEAwICpDATBgNVHSUEDDAKBggr
BgEFBQcDATAPBgNVHRMBAf8EBTADAQH/MCkGA1UdEQQiMCCCDmxvY2FsaG9zdDo1
NDUzgg4xMjcuMC4wLjE6NTQ1MzAKBggqhkjOPQQDAgNIADBFAiEA2zpJEPQyz6/l
Wf86aX6PepsntZv2GYlA5UpabfT2EZICICpJ5h/iI+i341gBmLiAFQOyTDT+/wQc
6MF9+Yw1Yy0t
-----END CERTIFICATE-----`

func TestNewHTTPClient_Insecure(t *testing.T) {
	client, err := NewHTTPClient(TLSInsecure, "", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport := client.Transport.(*http.Transport)
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Fatal("expected certificate verification to be disabled")
	}
	if client.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", client.Timeout)
	}
}

func TestNewHTTPClient_Default(t *testing.T) {
	client, err := NewHTTPClient(TLSDefault, "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport := client.Transport.(*http.Transport)
	if transport.TLSClientConfig != nil {
		t.Fatal("expected default TLS config (nil)")
	}
}

func TestNewHTTPClient_CustomCA(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(bundle, []byte(testCertPEM), 0o600); err != nil {
		t.Fatal(err)
	}

	client, err := NewHTTPClient(TLSCustomCA, bundle, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport := client.Transport.(*http.Transport)
	if transport.TLSClientConfig == nil || transport.TLSClientConfig.RootCAs == nil {
		t.Fatal("expected custom root CA pool")
	}
	if transport.TLSClientConfig.InsecureSkipVerify {
		t.Fatal("custom CA mode must keep verification enabled")
	}
}

func TestNewHTTPClient_CustomCAMissingBundle(t *testing.T) {
	if _, err := NewHTTPClient(TLSCustomCA, "", time.Second); err == nil {
		t.Fatal("expected error for missing bundle path")
	}
	if _, err := NewHTTPClient(TLSCustomCA, "/nonexistent/ca.pem", time.Second); err == nil {
		t.Fatal("expected error for unreadable bundle")
	}
}

func TestNewHTTPClient_CustomCAInvalidPEM(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(bundle, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewHTTPClient(TLSCustomCA, bundle, time.Second); err == nil {
		t.Fatal("expected error for invalid PEM")
	}
}

func TestNewHTTPClient_UnknownMode(t *testing.T) {
	if _, err := NewHTTPClient(TLSMode("paranoid"), "", time.Second); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
