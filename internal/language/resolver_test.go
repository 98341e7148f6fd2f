package language

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"health-assistant/internal/domain"
)

type stubDetector struct {
	lang  domain.Language
	err   error
	calls int
}

func (s *stubDetector) Detect(string) (domain.Language, error) {
	s.calls++
	return s.lang, s.err
}

func TestResolve_SkipUsesStoredLanguage(t *testing.T) {
	d := &stubDetector{lang: domain.LangHindi}
	r := NewResolver(d, nil)

	res := r.Resolve(domain.LangBengali, "alert", true)
	require.Equal(t, Resolution{Reply: domain.LangBengali}, res)
	require.Zero(t, d.calls)
}

func TestResolve_NewSupportedLanguageIsPersisted(t *testing.T) {
	r := NewResolver(&stubDetector{lang: domain.LangOdia}, nil)

	res := r.Resolve(domain.LangEnglish, "ଶିଶୁର ଟୀକା", false)
	require.Equal(t, Resolution{Reply: domain.LangOdia, Persist: true}, res)
}

func TestResolve_SameLanguageNotPersisted(t *testing.T) {
	r := NewResolver(&stubDetector{lang: domain.LangHindi}, nil)

	res := r.Resolve(domain.LangHindi, "नमस्ते", false)
	require.Equal(t, Resolution{Reply: domain.LangHindi}, res)
}

func TestResolve_DetectionFailureKeepsStoredLanguage(t *testing.T) {
	for _, lang := range domain.SupportedLanguages {
		r := NewResolver(&stubDetector{err: ErrUndetectable}, nil)
		res := r.Resolve(lang, "12345", false)
		require.Equal(t, Resolution{Reply: lang}, res, "stored=%s", lang)
	}
}

func TestResolve_UnsupportedCodeIgnored(t *testing.T) {
	r := NewResolver(&stubDetector{lang: domain.Language("fr")}, nil)

	res := r.Resolve(domain.LangBengali, "bonjour tout le monde", false)
	require.Equal(t, Resolution{Reply: domain.LangBengali}, res)
}

func TestResolve_EmptyStoredDefaultsToEnglish(t *testing.T) {
	r := NewResolver(&stubDetector{err: errors.New("boom")}, nil)

	res := r.Resolve("", "???", false)
	require.Equal(t, domain.LangEnglish, res.Reply)
	require.False(t, res.Persist)
}

func TestResolve_NilDetector(t *testing.T) {
	r := NewResolver(nil, nil)
	require.Equal(t, Resolution{Reply: domain.LangHindi}, r.Resolve(domain.LangHindi, "hello there", false))
}
