// Package mcp exposes the pipeline to desktop assistants over the Model
// Context Protocol (stdio transport).
package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

type Server struct {
	mcp *server.MCPServer

	ingestor ports.DocumentIngestor
	approver ports.DocumentApprover
	reader   ports.DocumentReader
	watchDir string
}

func NewServer(version string, ingestor ports.DocumentIngestor, approver ports.DocumentApprover, reader ports.DocumentReader, watchDir string) *Server {
	s := &Server{
		mcp:      server.NewMCPServer("docuprocess", version, server.WithToolCapabilities(false)),
		ingestor: ingestor,
		approver: approver,
		reader:   reader,
		watchDir: watchDir,
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving the MCP session on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("upload_document",
		mcp.WithDescription("Upload a PDF or EML document into the processing pipeline."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Document filename, must end in .pdf or .eml")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Base64 encoded file content")),
	), s.uploadDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List recently ingested documents with their statuses."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of documents to return, default 20")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("get_document_status",
		mcp.WithDescription("Get the current pipeline status of one document."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document id")),
	), s.getDocumentStatus)

	s.mcp.AddTool(mcp.NewTool("get_processing_results",
		mcp.WithDescription("Get the latest scoring result of one document."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document id")),
	), s.getProcessingResults)

	s.mcp.AddTool(mcp.NewTool("approve_document",
		mcp.WithDescription("Approve a document waiting in quick or manual review."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document id")),
	), s.approveDocument)
}

func (s *Server) uploadDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// strip any client-supplied directory components
	filename = filepath.Base(filename)
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decode content: %v", err)), nil
	}

	path := filepath.Join(s.watchDir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store document: %v", err)), nil
	}

	if err := s.ingestor.ObserveFile(ctx, path); err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]string{"status": "accepted", "filename": filename})
}

func (s *Server) listDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	docs, err := s.reader.List(ctx, limit)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(docs)
}

func (s *Server) getDocumentStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.reader.GetByID(ctx, documentID)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"document_id":  doc.ID,
		"filename":     doc.Filename,
		"status":       doc.Status,
		"error":        doc.Error,
		"created_at":   doc.CreatedAt,
		"processed_at": doc.ProcessedAt,
	})
}

func (s *Server) getProcessingResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.reader.LatestResult(ctx, documentID)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func (s *Server) approveDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.approver.Approve(ctx, documentID); err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]string{"document_id": documentID, "status": string(domain.StatusManuallyApproved)})
}

func toolError(err error) *mcp.CallToolResult {
	switch {
	case domain.IsKind(err, domain.ErrDocumentNotFound), domain.IsKind(err, domain.ErrResultNotFound):
		return mcp.NewToolResultError(err.Error())
	case domain.IsKind(err, domain.ErrInvalidInput):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError(fmt.Sprintf("internal error: %v", err))
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
