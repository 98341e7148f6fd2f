package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"health-assistant/internal/domain"
	"health-assistant/internal/schedule"
)

const displayDateLayout = "02-01-2006"

func (r *Router) startSchedule(ctx context.Context, p domain.Profile, lang domain.Language) (string, error) {
	state := domain.StateAwaitingDOB
	if err := r.store.UpdateProfile(ctx, p.SenderID, domain.ProfileUpdate{State: &state}); err != nil {
		return "", newError(ErrorStoreUnavailable, "state_write_error", err)
	}
	return r.messages.For(lang).DOBPrompt, nil
}

// continueSchedule consumes a message sent while awaiting a date of birth.
// Both the success and the parse-failure path clear the conversation state.
func (r *Router) continueSchedule(ctx context.Context, p domain.Profile, lang domain.Language, text string) (string, error) {
	none := domain.StateNone
	dob, err := schedule.ParseDate(text)
	if err != nil {
		if werr := r.store.UpdateProfile(ctx, p.SenderID, domain.ProfileUpdate{State: &none}); werr != nil {
			r.logger.Error("state clear failed", "sender", p.SenderID, "err", werr)
		}
		return "", newError(ErrorDateParse, "dob_parse_error", err)
	}

	entries := schedule.Compute(dob, r.vaccines)
	update := domain.ProfileUpdate{
		State:       &none,
		Schedule:    &entries,
		DateOfBirth: &dob,
	}
	if err := r.store.UpdateProfile(ctx, p.SenderID, update); err != nil {
		// The schedule is still worth sending even if it could not be saved.
		r.logger.Error("schedule persist failed", "sender", p.SenderID, "err", err)
	}
	return r.formatSchedule(lang, dob, entries), nil
}

func (r *Router) formatSchedule(lang domain.Language, dob time.Time, entries []domain.ScheduleEntry) string {
	t := r.messages.For(lang)
	if len(entries) == 0 {
		return t.ScheduleEmpty
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf(t.ScheduleHeaderFmt, dob.Format(displayDateLayout)))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(t.ScheduleLineFmt, e.Vaccine, e.DueLabel, e.DueDate.Format(displayDateLayout)))
	}
	return strings.Join(lines, "\n")
}

// showDistrictHelp needs no profile, so it is served even when the store is down.
func (r *Router) showDistrictHelp(lang domain.Language) string {
	return r.messages.For(lang).DistrictHelp
}

func (r *Router) setDistrict(ctx context.Context, p domain.Profile, lang domain.Language, district string) (string, error) {
	t := r.messages.For(lang)
	district = strings.TrimSpace(district)
	if district == "" {
		return t.DistrictFormatError, nil
	}
	if err := r.store.UpdateProfile(ctx, p.SenderID, domain.ProfileUpdate{District: &district}); err != nil {
		return "", newError(ErrorStoreUnavailable, "district_write_error", err)
	}
	return fmt.Sprintf(t.DistrictSavedFmt, district), nil
}

// lookupAlert finds the sender's district alert in the static catalog. The
// model only phrases the alert; it never supplies the alert data.
func (r *Router) lookupAlert(ctx context.Context, p domain.Profile, lang domain.Language) (string, error) {
	t := r.messages.For(lang)
	district := strings.TrimSpace(p.District)
	if district == "" {
		return t.DistrictRequired, nil
	}
	alert, ok := r.outbreaks.Lookup(district)
	if !ok {
		return fmt.Sprintf(t.NoAlertsFmt, district), nil
	}

	out, err := r.ai.Generate(ctx, buildAlertRequest(alert, lang))
	if err != nil {
		return "", newError(ErrorAIService, "alert_phrasing_error", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", newError(ErrorEmptyAIResponse, "alert_phrasing_empty", nil)
	}
	return strings.TrimSpace(out), nil
}

func (r *Router) recordFeedback(ctx context.Context, p domain.Profile, lang domain.Language, text string) (string, error) {
	t := r.messages.For(lang)
	text = strings.TrimSpace(strings.TrimLeft(text, " :-"))
	if text == "" {
		return t.FeedbackFormatError, nil
	}
	record := domain.FeedbackRecord{
		SenderID:  p.SenderID,
		Message:   text,
		Timestamp: r.now().UTC(),
	}
	if err := r.store.AppendFeedback(ctx, record); err != nil {
		return "", newError(ErrorStoreUnavailable, "feedback_write_error", err)
	}
	return t.FeedbackSaved, nil
}
