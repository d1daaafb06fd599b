// Package agent sequences the answer tiers: learned cache, built-in Q&A
// table, then the live web. It owns no knowledge of its own; it only wires
// the collaborators together and records what happened.
package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jeanpaul/musage/internal/config"
	"github.com/jeanpaul/musage/internal/conversation"
	"github.com/jeanpaul/musage/internal/learning"
	"github.com/jeanpaul/musage/internal/webpipe"
)

// SimpleQA is the built-in answer table tier.
type SimpleQA interface {
	Lookup(query string) (string, bool)
}

// WebPipeline is the live web tier.
type WebPipeline interface {
	Answer(ctx context.Context, query string) (*webpipe.Answer, error)
}

// Response is what a single Ask produces.
type Response struct {
	Answer  string
	Method  string
	Sources []string
}

const (
	MethodConversational = "conversational"
	MethodNone           = "none"

	dontKnow = "I don't know the answer to that yet. If you find out, tell me and I'll remember it."
)

type Agent struct {
	learning *learning.System
	qa       SimpleQA
	web      WebPipeline
	conv     *conversation.Manager
	debug    bool
}

// New wires an agent from its collaborators. qa and web may be nil, which
// disables those tiers.
func New(cfg *config.Config, sys *learning.System, qa SimpleQA, web WebPipeline, conv *conversation.Manager) *Agent {
	return &Agent{
		learning: sys,
		qa:       qa,
		web:      web,
		conv:     conv,
		debug:    cfg.Debug,
	}
}

// Ask answers one query, walking the tiers in order and logging the
// outcome. Only the web tier can fail; every other miss just falls
// through.
func (a *Agent) Ask(ctx context.Context, query string) Response {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{Answer: "Ask me something!", Method: MethodConversational}
	}
	if a.conv != nil {
		a.conv.AddUser(query)
	}

	resp := a.answer(ctx, query)

	if a.conv != nil {
		a.conv.AddAssistant(resp.Answer)
	}
	return resp
}

func (a *Agent) answer(ctx context.Context, query string) Response {
	if kind, canned, ok := classifyShortcut(query); ok {
		a.debugf("conversational shortcut: %s", kind)
		return Response{Answer: canned, Method: MethodConversational}
	}

	if rec, ok := a.learning.Retrieve(query); ok {
		a.logQuery(query, rec.Answer, rec.SourceMethod, true)
		return Response{Answer: rec.Answer, Method: string(rec.SourceMethod)}
	}

	if a.qa != nil {
		if answer, ok := a.qa.Lookup(query); ok {
			a.logQuery(query, answer, learning.MethodSimpleQA, true)
			return Response{Answer: answer, Method: string(learning.MethodSimpleQA)}
		}
	}

	if a.web != nil {
		webAns, err := a.web.Answer(ctx, query)
		if err == nil {
			a.logQuery(query, webAns.Text, learning.MethodWeb, true)
			return Response{
				Answer:  webAns.Text,
				Method:  string(learning.MethodWeb),
				Sources: webAns.SourceURLs,
			}
		}
		a.debugf("web tier failed: %v", err)
	}

	a.logQuery(query, "", MethodNone, false)
	return Response{Answer: dontKnow, Method: MethodNone}
}

// SubmitFeedback applies user feedback to the last answer for a query.
// This is where self-correction happens: a negative with a usable
// correction replaces the stored answer.
func (a *Agent) SubmitFeedback(query, answer string, helpful bool, comment string) error {
	return a.learning.ApplyFeedback(query, answer, helpful, comment)
}

// RecordSkip notes that the user dismissed the feedback prompt.
func (a *Agent) RecordSkip(query, answer, comment string) {
	a.learning.RecordSkip(query, answer, comment)
}

// GetStatistics recomputes the usage summary from the logs.
func (a *Agent) GetStatistics() learning.Summary {
	return a.learning.Summarize()
}

// ExportLearned snapshots the learned store as query to answer pairs.
func (a *Agent) ExportLearned() map[string]string {
	return a.learning.ExportLearned()
}

// ExportLearnedYAML writes the snapshot to a portable YAML file.
func (a *Agent) ExportLearnedYAML(path string) error {
	return a.learning.WriteLearnedYAML(path)
}

// Conversation exposes the session history for the presentation layer.
func (a *Agent) Conversation() *conversation.Manager {
	return a.conv
}

func (a *Agent) logQuery(query, answer string, method learning.Method, success bool) {
	err := a.learning.LogQuery(learning.UsageEntry{
		Query:     query,
		Answer:    answer,
		Method:    method,
		Success:   success,
		Timestamp: time.Now(),
	})
	if err != nil {
		a.debugf("usage log append failed: %v", err)
	}
}

func (a *Agent) debugf(format string, args ...any) {
	if a.debug {
		log.Printf(format, args...)
	}
}
