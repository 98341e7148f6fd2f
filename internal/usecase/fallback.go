package usecase

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"health-assistant/internal/domain"
)

func (r *Router) fallback(ctx context.Context, lang domain.Language, msg domain.InboundMessage) (string, error) {
	if msg.HasMedia() {
		return r.analyzeImage(ctx, lang, msg)
	}
	return r.answerText(ctx, lang, strings.TrimSpace(msg.Body))
}

// answerText answers a free-form question from the knowledge corpus only.
// There are no retries.
func (r *Router) answerText(ctx context.Context, lang domain.Language, question string) (string, error) {
	if question == "" {
		return "", newError(ErrorEmptyAIResponse, "empty_question", nil)
	}
	if err := r.ensureKnowledge(ctx); err != nil {
		return "", newError(ErrorAIService, "knowledge_load_error", err)
	}

	r.cacheMu.RLock()
	knowledge := r.knowledge
	r.cacheMu.RUnlock()

	sentinel := r.messages.For(lang).NotInKnowledgeBase
	out, err := r.ai.Generate(ctx, buildGroundedRequest(knowledge, question, lang, sentinel))
	if err != nil {
		return "", newError(ErrorAIService, "grounded_answer_error", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", newError(ErrorEmptyAIResponse, "grounded_answer_empty", nil)
	}
	return out, nil
}

func (r *Router) analyzeImage(ctx context.Context, lang domain.Language, msg domain.InboundMessage) (string, error) {
	contentType, data, err := r.media.Fetch(ctx, msg.MediaURL)
	if err != nil {
		return "", newError(ErrorAttachmentFetch, "media_fetch_error", err)
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = msg.MediaContentType
	}
	mediaType, ok := imageMediaType(contentType)
	if !ok {
		return "", newError(ErrorUnsupportedMedia, "not_an_image", fmt.Errorf("content type %q", contentType))
	}
	if len(data) == 0 {
		return "", newError(ErrorAttachmentFetch, "media_empty", nil)
	}

	out, err := r.ai.Generate(ctx, buildImageRequest(strings.TrimSpace(msg.Body), lang, domain.Image{
		MIMEType: mediaType,
		Data:     data,
	}))
	if err != nil {
		return "", newError(ErrorAIService, "image_analysis_error", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", newError(ErrorEmptyAIResponse, "image_analysis_empty", nil)
	}
	return out, nil
}

// imageMediaType strips parameters and reports whether the type is image/*.
func imageMediaType(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType, strings.HasPrefix(mediaType, "image/")
}

func (r *Router) ensureKnowledge(ctx context.Context) error {
	r.cacheMu.RLock()
	if r.cacheLoaded {
		r.cacheMu.RUnlock()
		return nil
	}
	r.cacheMu.RUnlock()

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if r.cacheLoaded {
		return nil
	}

	knowledge, err := r.params.GetParameter(ctx, r.paramPrefix+"/knowledge_base")
	if err != nil {
		return fmt.Errorf("usecase: load knowledge base: %w", err)
	}
	r.knowledge = knowledge
	r.cacheLoaded = true
	return nil
}
