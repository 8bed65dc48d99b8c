// Package clipboard abstracts the host clipboard behind a small
// provider interface so the engine never talks to the OS directly.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
)

// Provider supplies plain-string clipboard storage.
type Provider interface {
	Get() (string, error)
	Set(text string) error
}

// System routes through the OS clipboard via atotto/clipboard.
type System struct{}

// Get reads the OS clipboard.
func (System) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the OS clipboard.
func (System) Set(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is an in-process register used when the system clipboard is
// disabled or unavailable (headless sessions, tests).
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// New picks the system clipboard when requested and supported, falling
// back to the in-memory register otherwise.
func New(system bool) Provider {
	if system && !clipboard.Unsupported {
		return System{}
	}
	if system {
		logger.Warnf("Clipboard: system clipboard unsupported on this platform, using internal register")
	}
	return &Memory{}
}
