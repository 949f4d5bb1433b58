package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/cobra"

	"spyglass/internal/index"
	"spyglass/internal/search"
	"spyglass/internal/store"
)

// protocolOut is the real stdout; os.Stdout is pointed at stderr while the
// MCP server runs so log lines cannot corrupt the stream.
var protocolOut = os.Stdout

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the file index",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		protocolOut = os.Stdout
		os.Stdout = os.Stderr
		initLogger(flagVerbose)
	},
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.svc.LoadPersistedIndex() {
		logger.Infof("serving %d saved entries", a.svc.IndexedCount())
	}

	s := newMCPServer(a.svc)
	return mcpserver.NewStdioServer(s).Listen(cmd.Context(), os.Stdin, protocolOut)
}

func newMCPServer(svc *index.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("spyglass", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(startIndexBuildTool(), makeStartBuildHandler(svc))
	s.AddTool(getProgressTool(), makeProgressHandler(svc))
	s.AddTool(searchTool(), makeSearchHandler(svc))
	s.AddTool(loadPersistedIndexTool(), makeLoadHandler(svc))
	s.AddTool(getIndexedCountTool(), makeCountHandler(svc))
	return s
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

var mutatingAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(false),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func startIndexBuildTool() mcp.Tool {
	return mcp.NewTool("start_index_build",
		mcp.WithDescription("Start rebuilding the file index in the background. Returns immediately; poll get_progress until is_complete is true. Ignored while a build is already running."),
		mcp.WithToolAnnotation(mutatingAnnotation),
	)
}

func getProgressTool() mcp.Tool {
	return mcp.NewTool("get_progress",
		mcp.WithDescription("Get progress of the current or most recent index build as JSON."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search indexed file and folder names. Exact names rank first, then prefixes, then word boundaries after '-' or '_'. Queries shorter than 2 characters return nothing."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Name or name fragment to look for (case-insensitive)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default and cap %d)", search.DefaultLimit)),
		),
	)
}

func loadPersistedIndexTool() mcp.Tool {
	return mcp.NewTool("load_persisted_index",
		mcp.WithDescription("Replace the live index with the last saved snapshot."),
		mcp.WithToolAnnotation(mutatingAnnotation),
	)
}

func getIndexedCountTool() mcp.Tool {
	return mcp.NewTool("get_indexed_count",
		mcp.WithDescription("Get the number of entries in the live index."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

// --- Handlers ---

func makeStartBuildHandler(svc *index.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !svc.StartIndexBuild() {
			return mcp.NewToolResultText("An index build is already running; call get_progress to follow it."), nil
		}
		return mcp.NewToolResultText("Index build started; call get_progress until is_complete is true."), nil
	}
}

func makeProgressHandler(svc *index.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(svc.Progress())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode progress failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeSearchHandler(svc *index.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		limit := req.GetInt("limit", 0)

		results := svc.Search(query)
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}
		return mcp.NewToolResultText(formatSearchResults(query, results)), nil
	}
}

func makeLoadHandler(svc *index.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !svc.LoadPersistedIndex() {
			return mcp.NewToolResultText(fmt.Sprintf("No saved index at %s. Call start_index_build to create one.", svc.Location())), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Loaded %d entries from %s.", svc.IndexedCount(), svc.Location())), nil
	}
}

func makeCountHandler(svc *index.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(fmt.Sprintf("%d", svc.IndexedCount())), nil
	}
}

// --- Formatting helpers ---

func formatSearchResults(query string, results []store.Entry) string {
	if len(query) < search.MinQueryLen {
		return fmt.Sprintf("Query %q is too short; use at least %d characters.", query, search.MinQueryLen)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search results for %q (%d)\n\n", query, len(results))
	for _, e := range results {
		kind := "file"
		if e.IsDirectory {
			kind = "folder"
		}
		fmt.Fprintf(&sb, "- **%s** (%s, in %s): `%s`\n", e.Name, kind, e.ParentFolder, e.Path)
	}
	return sb.String()
}
