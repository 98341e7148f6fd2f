package language

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"

	"health-assistant/internal/domain"
)

const defaultMinConfidence = 0.5

var (
	// ErrUndetectable means no language could be identified in the text.
	ErrUndetectable = errors.New("language: undetectable")
	// ErrUnsupported means a language was identified but is not one we answer in.
	ErrUnsupported = errors.New("language: unsupported")
	// ErrLowConfidence means the detector was not sure enough to change anything.
	ErrLowConfidence = errors.New("language: low confidence")
)

var whatlangCodes = map[whatlanggo.Lang]domain.Language{
	whatlanggo.Eng: domain.LangEnglish,
	whatlanggo.Hin: domain.LangHindi,
	whatlanggo.Ben: domain.LangBengali,
	whatlanggo.Ori: domain.LangOdia,
}

// WhatlangDetector identifies the language of short chat messages using
// trigram and script statistics.
type WhatlangDetector struct {
	minConfidence float64
}

type DetectorOption func(*WhatlangDetector)

// WithMinConfidence overrides the confidence a detection must reach.
func WithMinConfidence(c float64) DetectorOption {
	return func(d *WhatlangDetector) {
		d.minConfidence = c
	}
}

func NewWhatlangDetector(opts ...DetectorOption) *WhatlangDetector {
	d := &WhatlangDetector{minConfidence: defaultMinConfidence}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *WhatlangDetector) Detect(text string) (domain.Language, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrUndetectable)
	}
	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return "", fmt.Errorf("%w: no script", ErrUndetectable)
	}
	lang, ok := whatlangCodes[info.Lang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, info.Lang.String())
	}
	if info.Confidence < d.minConfidence {
		return "", fmt.Errorf("%w: %s at %.2f", ErrLowConfidence, lang, info.Confidence)
	}
	return lang, nil
}
