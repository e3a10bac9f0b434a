// Package mcpsrv exposes the advisory pipeline as MCP tools so coding
// assistants can ask for architecture advice and decision records over
// stdio.
package mcpsrv

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/pkg/log"
)

type Server struct {
	mcp     *server.MCPServer
	advisor *advisor.Advisor
	done    chan struct{}
}

func NewServer(adv *advisor.Advisor) *Server {
	s := &Server{
		advisor: adv,
		done:    make(chan struct{}),
	}

	m := server.NewMCPServer(
		core.ArchieName,
		core.ArchieVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(
			"Architecture advisory tools backed by a curated reference corpus. "+
				"Use architecture_advice for recommendations and follow-up questions, "+
				"architecture_report for a full design report, "+
				"and generate_adr to capture a decision as a structured record.",
		),
	)

	advice := newAdviceTool(adv)
	m.AddTool(advice.Definition(), advice.Handle)

	report := newReportTool(adv)
	m.AddTool(report.Definition(), report.Handle)

	record := newADRTool(adv)
	m.AddTool(record.Definition(), record.Handle)

	s.mcp = m
	return s
}

// Start serves MCP over stdio. Logging stays on stderr; stdout belongs
// to the protocol.
func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp server on stdio")
	err := server.ServeStdio(s.mcp)
	close(s.done)
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The stdio server stops when its input closes.
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return nil
}
