package vendors

import (
	"context"
	"fmt"
)

// MockGenerator is a canned-response Generator for tests and dry runs.
type MockGenerator struct {
	// VendorName is reported by Name. Defaults to "mock".
	VendorName string

	// Responses maps a prompt substring to the canned response. When no
	// entry matches, Fallback (or a generic echo) is returned.
	Responses map[string]string
	Fallback  string

	// Err, when set, is returned by every Generate call.
	Err error

	// Calls records every prompt received, in order.
	Calls []string
}

func (m *MockGenerator) Name() string {
	if m.VendorName == "" {
		return "mock"
	}
	return m.VendorName
}

func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	for needle, response := range m.Responses {
		if needle != "" && containsFold(prompt, needle) {
			return response, nil
		}
	}
	if m.Fallback != "" {
		return m.Fallback, nil
	}
	return fmt.Sprintf("Mock response for: %s", prompt), nil
}
