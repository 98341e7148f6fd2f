// Package messages holds the fixed, localized replies of the assistant.
package messages

import (
	"fmt"
	"strings"

	"health-assistant/internal/domain"
)

// Templates is the full set of fixed replies for one language. Fields ending
// in Fmt take fmt arguments as documented.
type Templates struct {
	DOBPrompt           string
	DateFormatError     string
	ScheduleHeaderFmt   string // date of birth
	ScheduleLineFmt     string // vaccine, due label, due date
	ScheduleEmpty       string
	DistrictHelp        string
	DistrictSavedFmt    string // district
	DistrictFormatError string
	DistrictRequired    string
	NoAlertsFmt         string // district
	FeedbackSaved       string
	FeedbackFormatError string
	ImageError          string
	GenericError        string
	Unavailable         string
	NotInKnowledgeBase  string
}

func (t Templates) fields() map[string]string {
	return map[string]string{
		"DOBPrompt":           t.DOBPrompt,
		"DateFormatError":     t.DateFormatError,
		"ScheduleHeaderFmt":   t.ScheduleHeaderFmt,
		"ScheduleLineFmt":     t.ScheduleLineFmt,
		"ScheduleEmpty":       t.ScheduleEmpty,
		"DistrictHelp":        t.DistrictHelp,
		"DistrictSavedFmt":    t.DistrictSavedFmt,
		"DistrictFormatError": t.DistrictFormatError,
		"DistrictRequired":    t.DistrictRequired,
		"NoAlertsFmt":         t.NoAlertsFmt,
		"FeedbackSaved":       t.FeedbackSaved,
		"FeedbackFormatError": t.FeedbackFormatError,
		"ImageError":          t.ImageError,
		"GenericError":        t.GenericError,
		"Unavailable":         t.Unavailable,
		"NotInKnowledgeBase":  t.NotInKnowledgeBase,
	}
}

// Catalog maps every supported language to a complete Templates set.
type Catalog struct {
	byLang map[domain.Language]Templates
}

// NewCatalog validates that every supported language has every template.
func NewCatalog(byLang map[domain.Language]Templates) (*Catalog, error) {
	var missing []string
	for _, lang := range domain.SupportedLanguages {
		t, ok := byLang[lang]
		if !ok {
			missing = append(missing, string(lang))
			continue
		}
		for name, v := range t.fields() {
			if strings.TrimSpace(v) == "" {
				missing = append(missing, string(lang)+"."+name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("messages: missing templates: %s", strings.Join(missing, ", "))
	}
	copied := make(map[domain.Language]Templates, len(byLang))
	for k, v := range byLang {
		copied[k] = v
	}
	return &Catalog{byLang: copied}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// For returns the templates for lang, falling back to the default language.
func (c *Catalog) For(lang domain.Language) Templates {
	if t, ok := c.byLang[lang]; ok {
		return t
	}
	return c.byLang[domain.DefaultLanguage]
}

var defaultCatalog = mustCatalog(builtin)

func mustCatalog(byLang map[domain.Language]Templates) *Catalog {
	c, err := NewCatalog(byLang)
	if err != nil {
		panic(err)
	}
	return c
}
