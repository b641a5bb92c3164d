package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// dateValue is a pflag.Value holding a YYYY-MM-DD date. Empty means today.
type dateValue struct{ s string }

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string { return d.s }
func (d *dateValue) Type() string   { return "date" }

func (d *dateValue) Set(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	d.s = s
	return nil
}

// monthValue is a pflag.Value holding a YYYY-MM month.
type monthValue struct{ s string }

var _ pflag.Value = (*monthValue)(nil)

func (m *monthValue) String() string { return m.s }
func (m *monthValue) Type() string   { return "month" }

func (m *monthValue) Set(s string) error {
	if _, err := domain.ParseMonth(s); err != nil {
		return fmt.Errorf("use YYYY-MM")
	}
	m.s = s
	return nil
}

// planValue is a pflag.Value restricted to the subscription plans.
type planValue struct{ plan domain.SubscriptionPlan }

var _ pflag.Value = (*planValue)(nil)

func (p *planValue) String() string { return string(p.plan) }
func (p *planValue) Type() string   { return "plan" }

func (p *planValue) Set(s string) error {
	switch plan := domain.SubscriptionPlan(s); plan {
	case domain.PlanMonthly, domain.PlanYearly:
		p.plan = plan
		return nil
	}
	return fmt.Errorf("choose monthly or yearly")
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// decodeDocument parses YAML (or JSON, which is valid YAML) into T using
// T's JSON field names.
func decodeDocument[T any](data []byte) (T, error) {
	var out T
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return out, fmt.Errorf("parsing document: %w", err)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return out, fmt.Errorf("parsing document: %w", err)
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, fmt.Errorf("document does not match the expected shape: %w", err)
	}
	return out, nil
}

func loadDocument[T any](path string, stdin io.Reader) (T, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeDocument[T](data)
}
