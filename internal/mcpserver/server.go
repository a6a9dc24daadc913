// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/tracker"
	"github.com/starford/raido/internal/week"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	trk *tracker.Tracker
}

// New creates a new MCP server with all Raido tools registered.
func New(trk *tracker.Tracker) *Server {
	s := &Server{trk: trk}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_value_streams",
		mcp.WithDescription("List all value streams with their tasks and notes."),
	), s.listValueStreams)

	s.mcp.AddTool(mcp.NewTool("list_initiatives",
		mcp.WithDescription("List all initiatives with their emoji, tasks, and notes."),
	), s.listInitiatives)

	s.mcp.AddTool(mcp.NewTool("list_people",
		mcp.WithDescription("List one-on-one records with full session history."),
	), s.listPeople)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add an open task to a value stream or initiative."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Target kind: value-stream or initiative")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the target value stream or initiative")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Task content")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("close_task",
		mcp.WithDescription("Close a task with a mandatory closure comment. "+
			"The comment is required; a blank comment is rejected and the task stays open."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Target kind: value-stream or initiative")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the owning value stream or initiative")),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Id of the task to close")),
		mcp.WithString("comment", mcp.Required(), mcp.Description("Closure comment explaining how the task was resolved")),
	), s.closeTask)

	s.mcp.AddTool(mcp.NewTool("open_actions",
		mcp.WithDescription("List every open action for a person across all recorded one-on-one sessions."),
		mcp.WithString("person_id", mcp.Required(), mcp.Description("Id of the one-on-one record")),
	), s.openActions)

	s.mcp.AddTool(mcp.NewTool("weekly_summary",
		mcp.WithDescription("Summarize the Monday-to-Sunday week: all tasks grouped by day "+
			"plus closed tasks grouped by origin as they will appear in the weekly report."),
		mcp.WithString("date", mcp.Description("Any date inside the wanted week (YYYY-MM-DD); defaults to today")),
	), s.weeklySummary)

	// Resource: weekly report format contract.
	s.mcp.AddResource(
		mcp.NewResource("raido://report-format", "Weekly Report Format",
			mcp.WithResourceDescription("Structure of the weekly PDF report and the rules feeding it."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readReportFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listValueStreams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.trk.ValueStreams()), nil
}

func (s *Server) listInitiatives(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.trk.Initiatives()), nil
}

func (s *Server) listPeople(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.trk.OneOnOnes()), nil
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch kind {
	case "value-stream":
		task, err := s.trk.AddStreamTask(ctx, id, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(task), nil
	case "initiative":
		task, err := s.trk.AddInitiativeTask(ctx, id, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(task), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s (want value-stream or initiative)", kind)), nil
	}
}

func (s *Server) closeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comment, err := req.RequireString("comment")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var pending bool
	switch kind {
	case "value-stream":
		pending, err = s.trk.ToggleStreamTask(ctx, id, taskID)
	case "initiative":
		pending, err = s.trk.ToggleInitiativeTask(ctx, id, taskID)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s (want value-stream or initiative)", kind)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !pending {
		// The task was already closed; the toggle reopened it. Undo is not
		// offered here, report what happened instead.
		return mcp.NewToolResultText(fmt.Sprintf("task %s was already closed and has been reopened", taskID)), nil
	}
	if err := s.trk.ConfirmClosure(ctx, comment); err != nil {
		_ = s.trk.CancelClosure()
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("closed: %s", taskID)), nil
}

func (s *Server) openActions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personID, err := req.RequireString("person_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	actions, err := s.trk.OpenActions(personID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(actions), nil
}

func (s *Server) weeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := time.Now()
	if raw, err := req.RequireString("date"); err == nil && raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return mcp.NewToolResultError("invalid date, want YYYY-MM-DD"), nil
		}
		ref = parsed
	}

	streams := s.trk.ValueStreams()
	initiatives := s.trk.Initiatives()
	start, end := week.Window(ref)
	summary := map[string]any{
		"start":  week.DayKey(start),
		"end":    week.DayKey(end),
		"days":   week.ByDay(week.Collect(streams, initiatives, ref)),
		"closed": week.ExportGroups(streams, initiatives, ref),
	}
	return jsonResult(summary), nil
}

func (s *Server) readReportFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://report-format",
			MIMEType: "text/markdown",
			Text:     ReportFormatContract,
		},
	}, nil
}
