// Package language decides which language a reply is written in.
package language

import (
	"log/slog"

	"health-assistant/internal/domain"
)

// Detector identifies the language of a message.
type Detector interface {
	Detect(text string) (domain.Language, error)
}

// Resolution is the outcome for a single message.
type Resolution struct {
	// Reply is the language to answer this message in.
	Reply domain.Language
	// Persist is true when Reply differs from the stored preference and
	// should be saved.
	Persist bool
}

type Resolver struct {
	detector Detector
	logger   *slog.Logger
}

func NewResolver(d Detector, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{detector: d, logger: logger}
}

// Resolve picks the reply language. When skip is set (the message is a
// command keyword or continues a multi-turn flow) detection is not run.
// Detection failures never change the stored language.
func (r *Resolver) Resolve(stored domain.Language, text string, skip bool) Resolution {
	stored = stored.OrDefault()
	if skip || r.detector == nil {
		return Resolution{Reply: stored}
	}

	detected, err := r.detector.Detect(text)
	if err != nil {
		r.logger.Debug("language detection skipped", "err", err)
		return Resolution{Reply: stored}
	}
	lang, ok := domain.ParseLanguage(string(detected))
	if !ok || lang == stored {
		return Resolution{Reply: stored}
	}
	return Resolution{Reply: lang, Persist: true}
}
