package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursedraft/internal/domain"
)

// FormatHistory renders recent save attempts, newest first, relative to now.
func FormatHistory(records []*domain.SaveRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No saves recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			HumanTimestampFrom(r.CreatedAt, now),
			r.Step.Title(),
			OutcomeIndicator(r.Outcome),
			TruncID(r.CourseID),
			FormatLatency(r.LatencyMs),
			Truncate(r.Message, 60),
		})
	}
	return RenderTable([]string{"WHEN", "STEP", "OUTCOME", "COURSE", "LATENCY", "MESSAGE"}, rows)
}

// FormatOutcomeCounts renders a one-line tally such as "3 saved · 1 failed".
func FormatOutcomeCounts(counts map[domain.SaveOutcome]int) string {
	order := []domain.SaveOutcome{domain.OutcomeSaved, domain.OutcomeRejected, domain.OutcomeFailed}
	parts := make([]string, 0, len(order))
	for _, o := range order {
		if n := counts[o]; n > 0 {
			parts = append(parts, OutcomeStyle(o).Render(fmt.Sprintf("%d %s", n, o)))
		}
	}
	if len(parts) == 0 {
		return Dim("no saves")
	}
	return strings.Join(parts, Dim(" · "))
}
