package usecase

import (
	"fmt"
	"strings"

	"health-assistant/internal/domain"
)

func buildGroundedRequest(knowledge, question string, lang domain.Language, sentinel string) domain.GenerateRequest {
	instruction := strings.Join([]string{
		"Role:",
		"You are a public health information assistant for families in India.",
		"",
		"Task:",
		"Answer the user's question using only the Knowledge Base below.",
		"",
		"Behavior Rules:",
		strings.Join([]string{
			"1) Use only facts stated in the Knowledge Base. Do not add outside medical knowledge.",
			fmt.Sprintf("2) Write the entire answer in %s.", lang.Name()),
			"3) Keep the answer short and simple enough to read on a phone.",
			"4) Do not diagnose or prescribe. Suggest visiting a health worker for personal medical advice.",
			fmt.Sprintf("5) If the Knowledge Base does not contain the answer, respond exactly: %q", sentinel),
		}, "\n"),
		"",
		"Knowledge Base:",
		strings.TrimSpace(knowledge),
	}, "\n")

	return domain.GenerateRequest{
		Instruction: instruction,
		Prompt:      question,
	}
}

func buildAlertRequest(alert domain.OutbreakAlert, lang domain.Language) domain.GenerateRequest {
	instruction := strings.Join([]string{
		"Role:",
		"You write short public health alerts for a chat assistant.",
		"",
		"Behavior Rules:",
		strings.Join([]string{
			"1) Use only the alert fields provided. Do not invent numbers, places, or advice.",
			fmt.Sprintf("2) Write the message in %s.", lang.Name()),
			"3) Mention the district, the disease, the severity, and the recommendation.",
			"4) Keep it under 80 words.",
		}, "\n"),
	}, "\n")

	prompt := fmt.Sprintf(
		"District: %s\nDisease: %s\nSeverity: %s\nRecommendation: %s",
		normalizePromptInput(alert.District),
		normalizePromptInput(alert.Disease),
		normalizePromptInput(alert.Severity),
		normalizePromptInput(alert.Recommendation),
	)
	return domain.GenerateRequest{Instruction: instruction, Prompt: prompt}
}

func buildImageRequest(caption string, lang domain.Language, img domain.Image) domain.GenerateRequest {
	instruction := strings.Join([]string{
		"Role:",
		"You describe images sent to a public health information assistant.",
		"",
		"Task:",
		"If the image shows packaged medicine, report these fields, one per line:",
		"Name, Active ingredients, Strength, Manufacturer, Expiry date, Usage as printed on the pack.",
		"Write \"not visible\" for any field you cannot read. Do not guess.",
		"Otherwise, describe what the image shows in a few sentences.",
		"",
		"Behavior Rules:",
		strings.Join([]string{
			fmt.Sprintf("1) Write the entire answer in %s.", lang.Name()),
			"2) Do not diagnose or recommend doses beyond what is printed.",
			"3) If the user asked a question in the caption, answer it from what is visible.",
		}, "\n"),
	}, "\n")

	prompt := "Analyze this image."
	if caption != "" {
		prompt = "Caption from the user: " + caption
	}
	return domain.GenerateRequest{
		Instruction: instruction,
		Prompt:      prompt,
		Image:       &img,
	}
}

func normalizePromptInput(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}
