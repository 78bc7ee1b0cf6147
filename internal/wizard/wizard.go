// Package wizard provides the interactive form behind `retain keys`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/dialectlab/retain/internal/vendors"
)

// KeySpec holds the API keys collected during the interactive wizard,
// keyed by vendor name. Vendors left blank are omitted.
type KeySpec struct {
	Keys map[string]string
}

// RunKeysWizard runs an interactive huh form that asks for one API key
// per registered vendor. Existing environment values pre-populate the
// fields.
func RunKeysWizard(in io.Reader, out io.Writer) (*KeySpec, error) {
	names := vendors.Names()
	values := make([]string, len(names))
	fields := make([]huh.Field, 0, len(names))

	for i, name := range names {
		values[i] = os.Getenv(vendors.EnvKey(name))
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("%s API key", name)).
			Description(fmt.Sprintf("Stored as %s (leave blank to skip)", vendors.EnvKey(name))).
			EchoMode(huh.EchoModePassword).
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec := &KeySpec{Keys: make(map[string]string)}
	for i, name := range names {
		if v := strings.TrimSpace(values[i]); v != "" {
			spec.Keys[name] = v
		}
	}
	return spec, nil
}

// RenderEnv renders the collected keys as dotenv lines, one vendor per
// line in sorted order.
func (s *KeySpec) RenderEnv() string {
	names := make([]string, 0, len(s.Keys))
	for name := range s.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", vendors.EnvKey(name), s.Keys[name])
	}
	return b.String()
}
