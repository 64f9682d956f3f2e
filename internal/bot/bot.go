package bot

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mummayiz/SmartLearning/internal/config"
	"github.com/Mummayiz/SmartLearning/internal/export"
	"github.com/Mummayiz/SmartLearning/internal/model"
	"github.com/Mummayiz/SmartLearning/internal/repository"
	"github.com/Mummayiz/SmartLearning/internal/service"
)

const dateLayout = "2006-01-02"

const helpText = `📚 <b>Smart Learning planner</b>

/add subject | topic | minutes | difficulty | priority | deadline [| window]
/tasks — pending backlog
/today — what is scheduled for today
/plan — run the adaptive scheduler
/replan — re-place missed tasks
/done &lt;id&gt; [actual minutes] — finish a task
/missed &lt;id&gt; — flag a task as missed
/stats — totals, time per subject, speed suggestions
/quiz [topic] — quiz topics / questions
/check &lt;question id&gt; &lt;answer&gt; — answer a quiz question
/export csv|ics — download the task table or calendar

Example:
/add Mathematics | Integrals | 60 | 4 | 5 | 2026-09-15 | morning`

// Bot is the Telegram surface over the planner, stats and store.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	planner  *service.PlannerService
	stats    *service.StatsService
	tasks    *repository.TaskRepository
	sessions *repository.SessionRepository
	progress *repository.ProgressRepository
	quizzes  *repository.QuizRepository
}

func New(token string, cfg *config.Config, planner *service.PlannerService, stats *service.StatsService,
	tasks *repository.TaskRepository, sessions *repository.SessionRepository,
	progress *repository.ProgressRepository, quizzes *repository.QuizRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		cfg:      cfg,
		planner:  planner,
		stats:    stats,
		tasks:    tasks,
		sessions: sessions,
		progress: progress,
		quizzes:  quizzes,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, "I only understand commands; see /help.")
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		return b.sendText(msg.Chat.ID, helpText)
	case "add":
		return b.handleAdd(ctx, msg.Chat.ID, args)
	case "tasks":
		return b.handleTasks(ctx, msg.Chat.ID)
	case "today":
		return b.handleToday(ctx, msg.Chat.ID)
	case "plan":
		return b.handlePlan(ctx, msg.Chat.ID)
	case "replan":
		return b.handleReplan(ctx, msg.Chat.ID)
	case "done":
		return b.handleDone(ctx, msg.Chat.ID, args)
	case "missed":
		return b.handleMissed(ctx, msg.Chat.ID, args)
	case "stats":
		return b.handleStats(ctx, msg.Chat.ID)
	case "quiz":
		return b.handleQuiz(ctx, msg.Chat.ID, args)
	case "check":
		return b.handleCheck(ctx, msg.Chat.ID, args)
	case "export":
		return b.handleExport(ctx, msg.Chat.ID, args)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command; see /help.")
	}
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) error {
	task, err := parseAddArguments(args)
	if err != nil {
		return b.sendText(chatID, "⚠️ "+html.EscapeString(err.Error()))
	}
	if err := b.tasks.Create(ctx, task); err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("Task #%d added: <b>%s</b> — %s (%d min, due %s)",
		task.ID, html.EscapeString(task.Subject), html.EscapeString(task.Topic),
		task.Minutes, task.Deadline.Format(dateLayout)))
}

// parseAddArguments reads "subject | topic | minutes | difficulty | priority
// | deadline [| window]".
func parseAddArguments(args string) (*model.Task, error) {
	parts := strings.Split(args, "|")
	if len(parts) < 6 || len(parts) > 7 {
		return nil, fmt.Errorf("expected: subject | topic | minutes | difficulty | priority | deadline [| window]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	minutes, err := strconv.Atoi(parts[2])
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("minutes must be a positive number, got %q", parts[2])
	}
	difficulty, err := strconv.Atoi(parts[3])
	if err != nil || difficulty < 1 || difficulty > 5 {
		return nil, fmt.Errorf("difficulty must be 1-5, got %q", parts[3])
	}
	priority, err := strconv.Atoi(parts[4])
	if err != nil || priority < 1 || priority > 5 {
		return nil, fmt.Errorf("priority must be 1-5, got %q", parts[4])
	}
	deadline, err := time.ParseInLocation(dateLayout, parts[5], time.UTC)
	if err != nil {
		return nil, fmt.Errorf("deadline must be YYYY-MM-DD, got %q", parts[5])
	}

	window := model.WindowAny
	if len(parts) == 7 && parts[6] != "" {
		switch parts[6] {
		case model.WindowAny, model.WindowMorning, model.WindowAfternoon, model.WindowEvening:
			window = parts[6]
		default:
			return nil, fmt.Errorf("window must be any, morning, afternoon or evening")
		}
	}

	if parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("subject and topic are required")
	}

	return &model.Task{
		Subject:    parts[0],
		Topic:      parts[1],
		Minutes:    minutes,
		Difficulty: difficulty,
		Priority:   priority,
		Deadline:   deadline,
		TimeWindow: window,
		Status:     model.StatusPending,
	}, nil
}

func (b *Bot) handleTasks(ctx context.Context, chatID int64) error {
	tasks, err := b.tasks.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "No pending tasks. Add one with /add.")
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Pending tasks</b>\n")
	for _, task := range tasks {
		sb.WriteString(formatTask(task))
	}
	return b.sendText(chatID, sb.String())
}

func (b *Bot) handleToday(ctx context.Context, chatID int64) error {
	today := dayOf(time.Now())
	tasks, err := b.tasks.ListScheduledWithin(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "Nothing scheduled for today. Try /plan.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 <b>Today (%s)</b>\n", today.Format(dateLayout)))
	for _, task := range tasks {
		sb.WriteString(formatTask(task))
	}
	return b.sendText(chatID, sb.String())
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64) error {
	scheduled, report, err := b.planner.Schedule(ctx, b.cfg.DailyMinutes, b.cfg.ReviewOffsets, b.cfg.LookaheadDays)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("✅ Scheduled %d task(s); created %d review task(s).", scheduled, report.Created())
	if failed := report.Failed(); failed > 0 {
		text += fmt.Sprintf("\n⚠️ Review generation failed for %d subject(s):", failed)
		for _, outcome := range report.Outcomes {
			if outcome.Err != nil {
				text += fmt.Sprintf("\n• %s: %s", html.EscapeString(outcome.Subject), html.EscapeString(outcome.Err.Error()))
			}
		}
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleReplan(ctx context.Context, chatID int64) error {
	rescheduled, err := b.planner.RescheduleMissed(ctx, b.cfg.DailyMinutes, b.cfg.LookaheadDays)
	if err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("♻️ Rescheduled %d missed task(s).", rescheduled))
}

func (b *Bot) handleDone(ctx context.Context, chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return b.sendText(chatID, "Usage: /done <task id> [actual minutes]")
	}
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return b.sendText(chatID, "Task id must be a number.")
	}

	task, err := b.tasks.FindByID(ctx, uint(id))
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Task %d not found.", id))
	}

	actual := task.Minutes
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
			actual = n
		}
	}

	session := model.Session{TaskID: task.ID, DurationMinutes: actual, Timestamp: time.Now()}
	if err := b.sessions.Create(ctx, &session); err != nil {
		return err
	}
	if err := b.tasks.UpdateStatus(ctx, task.ID, model.StatusDone); err != nil {
		return err
	}
	if err := b.progress.MarkCompleted(ctx, task.Topic, 0); err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("🎉 Done: <b>%s</b> (%d min logged). The planner learns from this.",
		html.EscapeString(task.Topic), actual))
}

func (b *Bot) handleMissed(ctx context.Context, chatID int64, args string) error {
	id, err := strconv.ParseUint(strings.TrimSpace(args), 10, 32)
	if err != nil {
		return b.sendText(chatID, "Usage: /missed <task id>")
	}
	task, err := b.tasks.FindByID(ctx, uint(id))
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Task %d not found.", id))
	}
	if err := b.tasks.UpdateStatus(ctx, task.ID, model.StatusMissed); err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("Marked <b>%s</b> as missed. Run /replan to re-place it.",
		html.EscapeString(task.Topic)))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	overview, err := b.stats.Overview(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("📊 <b>Dashboard</b>\n")
	sb.WriteString(fmt.Sprintf("Total %d · Done %d · Missed %d · Pending %d\n",
		overview.Total, overview.Done, overview.Missed, overview.Pending))

	if len(overview.TimeSpent) > 0 {
		sb.WriteString("\n⏱ <b>Time spent per subject</b>\n")
		for _, subject := range sortedKeys(overview.TimeSpent) {
			sb.WriteString(fmt.Sprintf("• %s: %d min\n", html.EscapeString(subject), overview.TimeSpent[subject]))
		}
	}

	suggestions, err := b.stats.Suggestions(ctx)
	if err != nil {
		return err
	}
	if len(suggestions) > 0 {
		sb.WriteString("\n💡 <b>Speed calibration</b>\n")
		for _, s := range suggestions {
			note := ""
			switch {
			case s.Faster():
				note = " — faster than estimated"
			case s.Slower():
				note = " — needs more time"
			}
			sb.WriteString(fmt.Sprintf("• %s: ×%.2f%s\n", html.EscapeString(s.Subject), s.Multiplier, note))
		}
	}

	deadlines, err := b.stats.UpcomingDeadlines(ctx, 30)
	if err != nil {
		return err
	}
	if len(deadlines) > 0 {
		sb.WriteString("\n⏰ <b>Deadlines in 30 days</b>\n")
		for _, task := range deadlines {
			sb.WriteString(fmt.Sprintf("• %s — %s (due %s, %s)\n",
				html.EscapeString(task.Subject), html.EscapeString(task.Topic),
				task.Deadline.Format(dateLayout), task.Status))
		}
	}

	return b.sendText(chatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) handleQuiz(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		topics, err := b.quizzes.Topics(ctx)
		if err != nil {
			return err
		}
		if len(topics) == 0 {
			return b.sendText(chatID, "No quiz questions yet.")
		}
		var sb strings.Builder
		sb.WriteString("🧠 <b>Quiz topics</b>\n")
		for _, topic := range topics {
			sb.WriteString(fmt.Sprintf("• %s\n", html.EscapeString(topic)))
		}
		sb.WriteString("\nSend /quiz <topic> to get its questions.")
		return b.sendText(chatID, sb.String())
	}

	quizzes, err := b.quizzes.ListByTopic(ctx, args)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		return b.sendText(chatID, "No quiz questions for this topic.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧠 <b>Quiz: %s</b>\n", html.EscapeString(args)))
	for _, quiz := range quizzes {
		sb.WriteString(fmt.Sprintf("Q%d: %s\n", quiz.ID, html.EscapeString(quiz.Question)))
	}
	sb.WriteString("\nAnswer with /check <question id> <answer>.")
	return b.sendText(chatID, sb.String())
}

func (b *Bot) handleCheck(ctx context.Context, chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return b.sendText(chatID, "Usage: /check <question id> <answer>")
	}
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return b.sendText(chatID, "Question id must be a number.")
	}
	quiz, err := b.quizzes.FindByID(ctx, uint(id))
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Question %d not found.", id))
	}

	answer := strings.Join(fields[1:], " ")
	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(quiz.AnswerText))
	score := 0
	if correct {
		score = 1
	}
	if err := b.progress.MarkCompleted(ctx, quiz.Topic, score); err != nil {
		return err
	}

	if correct {
		return b.sendText(chatID, "✅ Correct!")
	}
	return b.sendText(chatID, fmt.Sprintf("❌ Not quite. Correct answer: %s", html.EscapeString(quiz.AnswerText)))
}

func (b *Bot) handleExport(ctx context.Context, chatID int64, args string) error {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "csv":
		tasks, err := b.tasks.ListAll(ctx)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, tasks); err != nil {
			return err
		}
		return b.sendDocument(chatID, "tasks.csv", buf.Bytes())
	case "ics":
		tasks, err := b.tasks.ListScheduled(ctx)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.WriteICS(&buf, tasks); err != nil {
			return err
		}
		return b.sendDocument(chatID, "study_schedule.ics", buf.Bytes())
	default:
		return b.sendText(chatID, "Usage: /export csv or /export ics")
	}
}

func formatTask(task model.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#%d <b>%s</b> — %s (%d min, diff %d, prio %d, due %s",
		task.ID, html.EscapeString(task.Subject), html.EscapeString(task.Topic),
		task.Minutes, task.Difficulty, task.Priority, task.Deadline.Format(dateLayout)))
	if task.ScheduledDate != nil {
		sb.WriteString(fmt.Sprintf(", on %s", task.ScheduledDate.Format(dateLayout)))
	}
	if task.TimeWindow != "" && task.TimeWindow != model.WindowAny {
		sb.WriteString(", " + task.TimeWindow)
	}
	sb.WriteString(")\n")
	return sb.String()
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) sendDocument(chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
