package digest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/axp8948/prodify/internal/domain"
)

// dateLayout is fixed so digests stay byte-identical across deployments.
const dateLayout = "Jan 2, 2006"

func (b *Builder) date(t time.Time) string {
	return t.In(b.loc).Format(dateLayout)
}

// amount renders like the SPA shows numbers: no trailing zeros, no grouping.
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkbox(done bool) string {
	if done {
		return "✅"
	}
	return "⏳"
}

func lines(entries []string) string {
	if len(entries) == 0 {
		return placeholderNone
	}
	return strings.Join(entries, "\n")
}

func (b *Builder) formatClassSessions(docs []domain.ClassSession) string {
	entries := make([]string, 0, len(docs))
	for _, s := range docs {
		entries = append(entries, fmt.Sprintf("- %s: %d mins (%s)", b.date(s.SessionDate), s.TotalTime, s.SessionType))
	}
	return lines(entries)
}

func (b *Builder) formatClassReminders(docs []domain.ClassReminder) string {
	entries := make([]string, 0, len(docs))
	for _, r := range docs {
		entries = append(entries, fmt.Sprintf("- %s %s: %s (due %s)", checkbox(r.IsCompleted), r.Title, r.Description, b.date(r.ReminderAt)))
	}
	return lines(entries)
}

func formatClassNotes(docs []domain.ClassNote) string {
	entries := make([]string, 0, len(docs))
	for _, n := range docs {
		content := n.Content
		if content == "" {
			content = "(no content)"
		}
		entries = append(entries, "- "+content)
	}
	return lines(entries)
}

func formatGeneralTasks(docs []domain.GeneralTask) string {
	entries := make([]string, 0, len(docs))
	for _, t := range docs {
		mark := "❌"
		if t.IsCompleted {
			mark = "✅"
		}
		entries = append(entries, fmt.Sprintf("- %s %s", mark, t.Text))
	}
	return lines(entries)
}

func (b *Builder) formatGeneralReminders(docs []domain.GeneralReminder) string {
	entries := make([]string, 0, len(docs))
	for _, r := range docs {
		entries = append(entries, fmt.Sprintf("- %s %s: %s (due %s)", checkbox(r.IsDone), r.Title, r.Description, b.date(r.DueAt)))
	}
	return lines(entries)
}

func formatGeneralNotes(docs []domain.GeneralNote) string {
	entries := make([]string, 0, len(docs))
	for _, n := range docs {
		entries = append(entries, "- "+n.Text)
	}
	return lines(entries)
}

func formatIncomes(docs []domain.FinanceIncome) string {
	entries := make([]string, 0, len(docs))
	for _, i := range docs {
		entries = append(entries, fmt.Sprintf("- $%s (%s)", amount(i.Amount), i.Category))
	}
	return lines(entries)
}

func formatExpenses(docs []domain.FinanceExpense) string {
	entries := make([]string, 0, len(docs))
	for _, e := range docs {
		entries = append(entries, fmt.Sprintf("- $%s (%s)", amount(e.Amount), e.Category))
	}
	return lines(entries)
}

func formatSteps(docs []domain.PhysicalSteps) string {
	entries := make([]string, 0, len(docs))
	for _, s := range docs {
		entries = append(entries, fmt.Sprintf("- %d steps", s.StepsCount))
	}
	return lines(entries)
}

func formatGymDurations(docs []domain.PhysicalGymDuration) string {
	entries := make([]string, 0, len(docs))
	for _, g := range docs {
		entries = append(entries, fmt.Sprintf("- %d mins", g.Duration))
	}
	return lines(entries)
}

func (b *Builder) formatGymCheckins(docs []domain.PhysicalGymCheckin) string {
	entries := make([]string, 0, len(docs))
	for _, c := range docs {
		entries = append(entries, fmt.Sprintf("- Checked in on %s", b.date(c.CreatedAt)))
	}
	return lines(entries)
}

func formatOtherActivities(docs []domain.PhysicalOther) string {
	entries := make([]string, 0, len(docs))
	for _, o := range docs {
		entries = append(entries, fmt.Sprintf("- %s for %d mins", o.ActivityName, o.Duration))
	}
	return lines(entries)
}

func formatSessionTotals(docs []domain.ClassSessionTotals) string {
	if len(docs) == 0 {
		return placeholderNone
	}
	t := docs[0]
	return strings.Join([]string{
		fmt.Sprintf("- Lectures total: %d", t.LectureTotal),
		fmt.Sprintf("- Homework total: %d", t.HomeworkTotal),
		fmt.Sprintf("- Other sessions total: %d", t.OthersTotal),
	}, "\n")
}

// sectionWriter joins labeled sections with blank lines and trims the result.
type sectionWriter struct {
	sb strings.Builder
}

func (w *sectionWriter) section(header, body string) {
	if w.sb.Len() > 0 {
		w.sb.WriteString("\n\n")
	}
	w.sb.WriteString(header)
	w.sb.WriteString("\n")
	w.sb.WriteString(body)
}

func (w *sectionWriter) String() string {
	return strings.TrimSpace(w.sb.String())
}
