package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"vb-capital-ai/chat"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/events"
	"vb-capital-ai/models"
)

const helpText = `Commands:
  /new              start a new conversation
  /list             list recent conversations
  /open <n|id>      open a recent conversation
  /suggest [n]      show suggested questions, or ask question n
  /theme <name>     switch theme (light, dark, very-dark)
  /good, /bad       rate the last reply
  /help             show this help
  /quit             exit`

type feedbackSender interface {
	SendFeedback(ctx context.Context, content, feedback, sessionID string) (string, error)
}

type repl struct {
	session  *chat.Session
	feedback feedbackSender
	out      io.Writer
	tty      bool
	renderer markdownRenderer
	labels   labelStyles
}

func newREPL(session *chat.Session, feedback feedbackSender, out io.Writer, theme string, tty bool) (*repl, error) {
	style, err := styleFor(theme, tty)
	if err != nil {
		return nil, err
	}
	return &repl{
		session:  session,
		feedback: feedback,
		out:      out,
		tty:      tty,
		renderer: markdownRenderer{style: style},
		labels:   newLabelStyles(tty),
	}, nil
}

// Run reads lines until EOF, /quit or ctx cancellation.
func (r *repl) Run(ctx context.Context, in io.Reader) error {
	r.printTurns(r.session.Turns())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := r.handle(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return false, r.submit(ctx, line)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, helpText)
	case "/new":
		if err := r.session.StartNewConversation(); err != nil {
			return false, err
		}
		r.printTurns(r.session.Turns())
	case "/list":
		r.listConversations()
	case "/open":
		return false, r.open(arg)
	case "/suggest":
		return false, r.suggest(ctx, arg)
	case "/theme":
		style, err := styleFor(arg, r.tty)
		if err != nil {
			return false, err
		}
		r.renderer = markdownRenderer{style: style}
		fmt.Fprintf(r.out, "theme: %s\n", arg)
	case "/good":
		return false, r.rate(ctx, events.FeedbackHelpful)
	case "/bad":
		return false, r.rate(ctx, events.FeedbackNotHelpful)
	default:
		return false, errors.Errorf("unknown command %s (try /help)", cmd)
	}
	return false, nil
}

func (r *repl) submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	fmt.Fprintln(r.out, "VB Capital AI is thinking...")

	result, err := r.session.Submit(ctx, text)
	if errors.Is(err, chat.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		return err
	}

	r.printTurn(result.Reply)
	if result.Failed {
		logger.WarnWithFields("chat exchange failed", logger.Fields{"error": result.Cause.Error()})
	}
	return nil
}

func (r *repl) printTurns(turns []models.Turn) {
	for _, t := range turns {
		r.printTurn(t)
	}
}

func (r *repl) printTurn(t models.Turn) {
	if t.Role == models.RoleUser {
		fmt.Fprintf(r.out, "%s %s %s\n", r.labels.time(t.Timestamp), r.labels.user(), t.Content)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.labels.time(t.Timestamp), r.labels.assistant())
	fmt.Fprint(r.out, r.renderer.Render(t.Content))
}

func (r *repl) listConversations() {
	snap := r.session.Snapshot()
	if len(snap.Conversations) == 0 {
		fmt.Fprintln(r.out, "no conversations yet")
		return
	}
	for i, c := range snap.Conversations {
		marker := " "
		if c.ID == snap.ActiveConversationID {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %d. %s (%s) %s\n", marker, i+1, c.Title, c.LastActivity, c.ID)
	}
}

// open 은 목록 번호나 대화 ID 를 받는다. 없는 대화면 아무것도 바꾸지 않는다.
func (r *repl) open(arg string) error {
	if arg == "" {
		return errors.New("usage: /open <n|id>")
	}
	id := arg
	if n, err := strconv.Atoi(arg); err == nil {
		convs := r.session.Snapshot().Conversations
		if n >= 1 && n <= len(convs) {
			id = convs[n-1].ID
		}
	}
	ok, err := r.session.SelectConversation(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(r.out, "no conversation %s\n", arg)
		return nil
	}
	r.printTurns(r.session.Turns())
	return nil
}

func (r *repl) suggest(ctx context.Context, arg string) error {
	suggestions := r.session.Suggestions()
	if arg == "" {
		for i, s := range suggestions {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, s)
		}
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(suggestions) {
		return errors.Errorf("pick a suggestion between 1 and %d", len(suggestions))
	}
	q := suggestions[n-1]
	fmt.Fprintf(r.out, "%s %s\n", r.labels.user(), q)
	return r.submit(ctx, q)
}

func (r *repl) rate(ctx context.Context, feedback string) error {
	turns := r.session.Turns()
	last := turns[len(turns)-1]
	if last.Role != models.RoleAssistant || len(turns) < 2 {
		return errors.New("nothing to rate yet")
	}
	if r.feedback == nil {
		return errors.New("feedback is not available")
	}
	if _, err := r.feedback.SendFeedback(ctx, last.Content, feedback, r.session.Snapshot().ActiveConversationID); err != nil {
		return errors.Wrap(err, "send feedback")
	}
	fmt.Fprintln(r.out, "thanks for the feedback")
	return nil
}
