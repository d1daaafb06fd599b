package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/musage/internal/agent"
	"github.com/jeanpaul/musage/internal/learning"
)

const banner = `
 _ __ ___  _   _ ___  __ _  __ _  ___
| '_ ` + "`" + ` _ \| | | / __|/ _` + "`" + ` |/ _` + "`" + ` |/ _ \
| | | | | | |_| \__ \ (_| | (_| |  __/
|_| |_| |_|\__,_|___/\__,_|\__, |\___|
                           |___/
`

type repl struct {
	agent    *agent.Agent
	in       *bufio.Scanner
	out      io.Writer
	renderer *glamour.TermRenderer
}

func runREPL(a *agent.Agent) {
	newREPL(a, os.Stdin, os.Stdout).run()
}

func newREPL(a *agent.Agent, in io.Reader, out io.Writer) *repl {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	return &repl{
		agent:    a,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

func (r *repl) run() {
	fmt.Fprintln(r.out, bannerStyle.Render(banner))
	fmt.Fprintln(r.out, methodStyle.Render("Type a question, or /help for commands.\n"))

	for {
		fmt.Fprint(r.out, promptStyle.Render("you> "))
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := r.command(line); quit {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		resp := r.agent.Ask(ctx, line)
		cancel()

		r.printAnswer(resp)

		// Ask about the answer while it is still on screen.
		if resp.Method != agent.MethodConversational && resp.Method != agent.MethodNone {
			r.promptFeedback(line, resp.Answer)
		}
	}
}

func (r *repl) command(line string) (quit bool) {
	switch cmd := strings.Fields(line)[0]; cmd {
	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "Goodbye!")
		return true
	case "/help":
		fmt.Fprintln(r.out, methodStyle.Render(
			"/stats    usage statistics\n"+
				"/export   dump learned answers to learned_answers.yaml\n"+
				"/history  show recent conversation\n"+
				"/clear    wipe conversation history\n"+
				"/quit     exit"))
	case "/stats":
		writeStats(r.out, r.agent.GetStatistics())
	case "/export":
		path := "learned_answers.yaml"
		if parts := strings.Fields(line); len(parts) > 1 {
			path = parts[1]
		}
		if err := r.agent.ExportLearnedYAML(path); err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("export failed: "+err.Error()))
			break
		}
		fmt.Fprintf(r.out, "Exported %d learned answers to %s\n", len(r.agent.ExportLearned()), path)
	case "/history":
		if ctx := r.agent.Conversation().ContextString(5); ctx != "" {
			fmt.Fprint(r.out, methodStyle.Render(ctx))
		} else {
			fmt.Fprintln(r.out, methodStyle.Render("no history yet"))
		}
	case "/clear":
		if err := r.agent.Conversation().Clear(); err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("clear failed: "+err.Error()))
			break
		}
		fmt.Fprintln(r.out, "History cleared.")
	default:
		fmt.Fprintln(r.out, methodStyle.Render("unknown command "+cmd+", try /help"))
	}
	return false
}

// promptFeedback asks whether the previous answer helped. "y" reinforces,
// "n" plus a correction replaces the stored answer, anything else skips.
func (r *repl) promptFeedback(query, answer string) {
	fmt.Fprint(r.out, feedbackStyle.Render("Was that helpful? (y/n/skip) "))
	if !r.in.Scan() {
		return
	}
	switch strings.ToLower(strings.TrimSpace(r.in.Text())) {
	case "y", "yes":
		if err := r.agent.SubmitFeedback(query, answer, true, ""); err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("feedback not saved: "+err.Error()))
		}
	case "n", "no":
		fmt.Fprint(r.out, feedbackStyle.Render("What went wrong? (e.g. 'the correct answer is ...') "))
		comment := ""
		if r.in.Scan() {
			comment = strings.TrimSpace(r.in.Text())
		}
		if err := r.agent.SubmitFeedback(query, answer, false, comment); err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("feedback not saved: "+err.Error()))
		} else if _, ok := learning.ExtractCorrection(comment); ok {
			fmt.Fprintln(r.out, feedbackStyle.Render("Got it, I'll remember that."))
		}
	default:
		r.agent.RecordSkip(query, answer, "")
	}
}

func (r *repl) printAnswer(resp agent.Response) {
	writeAnswer(r.out, r.renderer, resp)
}

func printAnswer(resp agent.Response) {
	writeAnswer(os.Stdout, nil, resp)
}

func writeAnswer(w io.Writer, renderer *glamour.TermRenderer, resp agent.Response) {
	text := resp.Answer
	if renderer != nil && resp.Method == string(learning.MethodWeb) {
		if out, err := renderer.Render(text); err == nil {
			text = strings.TrimSpace(out)
		}
	}
	fmt.Fprintln(w, answerStyle.Render(text))
	if resp.Method != agent.MethodConversational {
		fmt.Fprintln(w, methodStyle.Render("["+resp.Method+"]"))
	}
	for _, src := range resp.Sources {
		fmt.Fprintln(w, sourceStyle.Render("  source: "+src))
	}
	fmt.Fprintln(w)
}

func printStats(s learning.Summary) {
	writeStats(os.Stdout, s)
}

func writeStats(w io.Writer, s learning.Summary) {
	fmt.Fprintln(w, bannerStyle.Render("Usage statistics"))
	fmt.Fprintf(w, "  queries answered: %d\n", s.TotalQueries)
	fmt.Fprintf(w, "  learned answers:  %d\n", s.LearnedPairs)
	for method, n := range s.ByMethod {
		fmt.Fprintf(w, "    %-16s %d\n", method, n)
	}
	if s.Positive+s.Negative > 0 {
		fmt.Fprintf(w, "  satisfaction:     %.0f%% (%d up / %d down)\n",
			s.Satisfaction*100, s.Positive, s.Negative)
	}
	if len(s.TopTopics) > 0 {
		fmt.Fprintln(w, "  top topics:")
		for _, t := range s.TopTopics {
			fmt.Fprintf(w, "    %-16s %d\n", t.Topic, t.Count)
		}
	}
	if !s.FirstUsed.IsZero() {
		fmt.Fprintf(w, "  first used:       %s\n", s.FirstUsed.Format("2006-01-02"))
		fmt.Fprintf(w, "  last used:        %s\n", s.LastUsed.Format("2006-01-02 15:04"))
	}
}
