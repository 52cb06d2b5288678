// Package mcp provides an MCP (Model Context Protocol) server that exposes
// msbee's vault operations as tools for AI assistants.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drapaimern/msbee/internal/core"
	"github.com/drapaimern/msbee/internal/storage"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps msbee services and exposes them as MCP tools.
type Server struct {
	server    *gomcp.Server
	extractor *core.Extractor
	vault     storage.VaultStore
	notes     storage.DailyNoteStore
	idGen     core.ShortIDGenerator
}

// NewServer creates an MCP server over the given msbee services.
func NewServer(extractor *core.Extractor, vault storage.VaultStore, notes storage.DailyNoteStore, idGen core.ShortIDGenerator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		extractor: extractor,
		vault:     vault,
		notes:     notes,
		idGen:     idGen,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "msbee", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listEligibleInput struct {
	Date string `json:"date,omitempty" jsonschema:"reference date in YYYY-MM-DD form. Defaults to today."`
}

type eligibleTaskOutput struct {
	Text      string `json:"text"`
	Path      string `json:"path"`
	ID        string `json:"id,omitempty"`
	StartDate string `json:"start_date,omitempty"`
}

type listEligibleOutput struct {
	Tasks []eligibleTaskOutput `json:"tasks"`
	Count int                  `json:"count"`
}

type stampInput struct{}

type stampOutput struct {
	UpdatedFiles []string `json:"updated_files"`
	Count        int      `json:"count"`
}

type updateNoteInput struct {
	Content string `json:"content" jsonschema:"required,markdown content to place between the msbee section markers"`
	Date    string `json:"date,omitempty" jsonschema:"daily note date in YYYY-MM-DD form. Defaults to today."`
}

type updateNoteOutput struct {
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_eligible_tasks",
		Description: "Scan the vault and return the tasks actionable on the given date: not completed, not future-dated, and with no recorded dependencies.",
	}, s.handleListEligible)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "stamp_task_ids",
		Description: "Assign a short identifier to every open task line that lacks one, rewriting only the files that changed.",
	}, s.handleStamp)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_daily_note",
		Description: "Replace the msbee-owned section of the daily note with the given content, creating the section markers if absent.",
	}, s.handleUpdateNote)
}

// --- Tool handlers ---

func (s *Server) handleListEligible(_ context.Context, _ *gomcp.CallToolRequest, input listEligibleInput) (*gomcp.CallToolResult, listEligibleOutput, error) {
	today, err := parseDateOrToday(input.Date)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing date: %s", err)), listEligibleOutput{}, nil
	}

	tasks, err := s.extractor.ExtractTasks(today)
	if err != nil {
		return errorResult(fmt.Sprintf("extracting tasks: %s", err)), listEligibleOutput{}, nil
	}

	out := listEligibleOutput{
		Tasks: make([]eligibleTaskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		item := eligibleTaskOutput{Text: t.RawText, Path: t.Location, ID: t.ID}
		if t.StartDate != nil {
			item.StartDate = t.StartDate.Format("2006-01-02")
		}
		out.Tasks[i] = item
	}
	return nil, out, nil
}

func (s *Server) handleStamp(_ context.Context, _ *gomcp.CallToolRequest, _ stampInput) (*gomcp.CallToolResult, stampOutput, error) {
	updated, err := s.vault.UpdateNotes(func(lines []string) ([]string, bool) {
		return core.StampTaskIDs(lines, s.idGen)
	})
	if err != nil {
		return errorResult(fmt.Sprintf("stamping task IDs: %s", err)), stampOutput{}, nil
	}
	return nil, stampOutput{UpdatedFiles: updated, Count: len(updated)}, nil
}

func (s *Server) handleUpdateNote(_ context.Context, _ *gomcp.CallToolRequest, input updateNoteInput) (*gomcp.CallToolResult, updateNoteOutput, error) {
	if input.Content == "" {
		return errorResult("content is required"), updateNoteOutput{}, nil
	}
	date, err := parseDateOrToday(input.Date)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing date: %s", err)), updateNoteOutput{}, nil
	}

	if err := s.notes.UpdateNote(input.Content, date); err != nil {
		if errors.Is(err, storage.ErrDailyNoteNotFound) {
			return nil, updateNoteOutput{Message: err.Error() + " (nothing written)"}, nil
		}
		return errorResult(fmt.Sprintf("updating daily note: %s", err)), updateNoteOutput{}, nil
	}
	return nil, updateNoteOutput{Message: "msbee section updated in " + s.notes.NotePath(date)}, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
