package engine

import (
	"fmt"

	"github.com/bocho8/chronos/internal/models"
)

// Compliance aggregates a subject's placements within one group against its
// guideline. When a candidate is supplied its effect is included, so the
// detector can decide whether to block before anything is committed.
// excludeID drops an existing assignment from the aggregate (edits).
//
// Findings, in order: days above guideline max (error), days below guideline
// min (warning), hours below the subject's weekly target (warning), exact
// target within day bounds (info, no action needed). A subject without a
// guideline yields no findings.
func (d *Detector) Compliance(groupID, subjectID string, cand *Candidate, excludeID string) (models.ComplianceReport, []models.Conflict) {
	report := models.ComplianceReport{GroupID: groupID, SubjectID: subjectID}

	daySet := make(map[models.Weekday]struct{})
	hours := 0
	for _, a := range d.grid.FindByGroupSubject(groupID, subjectID) {
		if a.ID == excludeID {
			continue
		}
		daySet[a.Day] = struct{}{}
		hours++
	}
	if cand != nil && cand.GroupID == groupID && cand.SubjectID == subjectID {
		daySet[cand.Day] = struct{}{}
		hours++
	}

	for _, day := range models.Weekdays() {
		if _, ok := daySet[day]; ok {
			report.DaysUsed = append(report.DaysUsed, day)
		}
	}
	report.HoursAssigned = hours

	subject, ok := d.catalog.Subject(subjectID)
	if !ok {
		return report, nil
	}
	guideline, ok := d.catalog.GuidelineForSubject(subject)
	if !ok {
		return report, nil
	}
	report.GuidelineID = &guideline.ID

	days := len(report.DaysUsed)
	var conflicts []models.Conflict

	if days > guideline.MaxDays {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictMaxDaysExceeded,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("subject spans %d days, guideline %q allows at most %d", days, guideline.Name, guideline.MaxDays),
		})
	}
	if days < guideline.MinDays {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictMinDaysNotMet,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("subject spans %d days, guideline %q requires at least %d; add a session on an unused day", days, guideline.Name, guideline.MinDays),
		})
	}
	if hours < subject.WeeklyHours {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictHoursBelowTarget,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("%d of %d weekly hours assigned", hours, subject.WeeklyHours),
		})
	}
	if hours == subject.WeeklyHours && days >= guideline.MinDays && days <= guideline.MaxDays {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictCompliant,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("weekly hours target met across %d days, within guideline %q", days, guideline.Name),
		})
	}

	return report, conflicts
}
