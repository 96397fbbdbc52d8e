package proxy

import (
	"math/rand"
	"net/http"
	"net/url"

	"github.com/williampepple1/similar-pages/internal/config"
)

// Manager picks the outbound proxy for the search client and title scraper
type Manager struct {
	Config *config.ProxyConfig
}

// NewManager creates a new proxy manager
func NewManager(config *config.ProxyConfig) *Manager {
	return &Manager{
		Config: config,
	}
}

// URL returns the proxy to use, or nil when proxying is off
func (m *Manager) URL() (*url.URL, error) {
	if m == nil || m.Config == nil || !m.Config.Enabled || len(m.Config.List) == 0 {
		return nil, nil
	}

	raw := m.Config.List[0]
	if m.Config.Rotate && len(m.Config.List) > 1 {
		raw = m.Config.List[rand.Intn(len(m.Config.List))]
	}

	proxyURL, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if m.Config.Auth.Username != "" && m.Config.Auth.Password != "" {
		proxyURL.User = url.UserPassword(m.Config.Auth.Username, m.Config.Auth.Password)
	}

	return proxyURL, nil
}

// Transport returns a transport routed through the selected proxy, plus the proxy
// address (empty when none is used)
func (m *Manager) Transport() (*http.Transport, string, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	proxyURL, err := m.URL()
	if err != nil {
		return nil, "", err
	}
	if proxyURL == nil {
		return transport, "", nil
	}

	transport.Proxy = http.ProxyURL(proxyURL)
	return transport, proxyURL.Redacted(), nil
}
