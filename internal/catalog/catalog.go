// Package catalog loads the read-only vaccine and outbreak tables.
//
// Both files may be YAML or JSON. A missing or unreadable file yields an
// empty catalog so lookups report "not found" instead of stopping the process.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"health-assistant/internal/domain"
)

type vaccineFile struct {
	Vaccines []domain.VaccineEntry `yaml:"vaccines"`
}

type outbreakFile struct {
	Alerts []domain.OutbreakAlert `yaml:"alerts"`
}

// Vaccines is the ordered vaccination table.
type Vaccines []domain.VaccineEntry

// Outbreaks is the district alert table.
type Outbreaks []domain.OutbreakAlert

// LoadVaccines reads the vaccine table at path. Entries that do not have
// exactly one offset unit are dropped with a warning.
func LoadVaccines(path string, logger *slog.Logger) Vaccines {
	logger = orDefault(logger)
	var f vaccineFile
	if err := readFile(path, &f); err != nil {
		logger.Warn("vaccine catalog unavailable, using empty catalog", "path", path, "err", err)
		return Vaccines{}
	}

	out := make(Vaccines, 0, len(f.Vaccines))
	for i, v := range f.Vaccines {
		if err := validateVaccine(v); err != nil {
			logger.Warn("skipping vaccine entry", "index", i, "err", err)
			continue
		}
		if strings.TrimSpace(v.DueLabel) == "" {
			v.DueLabel = defaultDueLabel(v)
		}
		out = append(out, v)
	}
	logger.Info("vaccine catalog loaded", "path", path, "entries", len(out))
	return out
}

// LoadOutbreaks reads the outbreak table at path.
func LoadOutbreaks(path string, logger *slog.Logger) Outbreaks {
	logger = orDefault(logger)
	var f outbreakFile
	if err := readFile(path, &f); err != nil {
		logger.Warn("outbreak catalog unavailable, using empty catalog", "path", path, "err", err)
		return Outbreaks{}
	}

	out := make(Outbreaks, 0, len(f.Alerts))
	for i, a := range f.Alerts {
		if strings.TrimSpace(a.District) == "" {
			logger.Warn("skipping outbreak entry without district", "index", i)
			continue
		}
		out = append(out, a)
	}
	logger.Info("outbreak catalog loaded", "path", path, "entries", len(out))
	return out
}

// Lookup returns the first alert whose district matches, ignoring case and
// surrounding whitespace.
func (o Outbreaks) Lookup(district string) (domain.OutbreakAlert, bool) {
	district = strings.TrimSpace(district)
	if district == "" {
		return domain.OutbreakAlert{}, false
	}
	for _, a := range o {
		if strings.EqualFold(strings.TrimSpace(a.District), district) {
			return a, true
		}
	}
	return domain.OutbreakAlert{}, false
}

func defaultDueLabel(v domain.VaccineEntry) string {
	switch {
	case v.DueWeeks != nil && *v.DueWeeks == 0:
		return "At birth"
	case v.DueWeeks != nil:
		return fmt.Sprintf("%d weeks", *v.DueWeeks)
	default:
		return fmt.Sprintf("%d months", *v.DueMonths)
	}
}

func validateVaccine(v domain.VaccineEntry) error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("catalog: vaccine name is empty")
	}
	if (v.DueWeeks == nil) == (v.DueMonths == nil) {
		return fmt.Errorf("catalog: vaccine %q must set exactly one of due_weeks and due_months", v.Name)
	}
	if (v.DueWeeks != nil && *v.DueWeeks < 0) || (v.DueMonths != nil && *v.DueMonths < 0) {
		return fmt.Errorf("catalog: vaccine %q has a negative offset", v.Name)
	}
	return nil
}

func readFile(path string, into any) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("catalog: path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("catalog: %s not found", path)
		}
		return fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
