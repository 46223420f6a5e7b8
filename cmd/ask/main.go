package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"growthboss-ai-be/internal/bootstrap"
	"growthboss-ai-be/internal/config"
	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	question := flag.String("q", "", "question to ask")
	useCouncil := flag.Bool("council", false, "ask the mentor council instead of the researcher")
	useBrief := flag.Bool("brief", false, "run the full brief pipeline (research, plan, critique)")
	k := flag.Int("k", 0, "number of evidence chunks (0 = default)")
	brandContext := flag.String("context", "", "agency context override")
	sessionID := flag.String("session", "", "existing research session id")
	showDeliberation := flag.Bool("show-deliberation", false, "print individual mentor answers in council mode")
	flag.Parse()

	if *question == "" {
		fmt.Fprintln(os.Stderr, "usage: ask -q \"your question\" [-council | -brief] [-k N] [-context \"...\"]")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.RequireOpenAIKey(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	if container.NatsPublisher != nil {
		defer container.NatsPublisher.Close()
	}
	defer container.Logger.Sync()

	ctx := context.Background()

	switch {
	case *useCouncil:
		runCouncil(ctx, container, *question, *brandContext, *showDeliberation)
	case *useBrief:
		runBrief(ctx, container, *question, *brandContext, *sessionID)
	default:
		runAsk(ctx, container, *question, *k, *sessionID)
	}
}

func runAsk(ctx context.Context, container *bootstrap.Container, question string, k int, sessionID string) {
	req := &dto.AskRequest{Question: question, K: k}
	if id, ok := parseSessionID(sessionID); ok {
		req.SessionId = &id
	}

	res, err := container.ResearchService.Ask(ctx, req)
	if err != nil {
		log.Fatalf("Research failed: %v", err)
	}

	color.New(color.FgCyan, color.Bold).Println("ANSWER")
	fmt.Println(res.Answer)
	printSources(res.Sources)
	color.New(color.FgHiBlack).Printf("\nsession: %s\n", res.SessionId)
}

func runCouncil(ctx context.Context, container *bootstrap.Container, question, brandContext string, showDeliberation bool) {
	res, err := container.CouncilService.Deliberate(ctx, &dto.CouncilRequest{
		Question:         question,
		Context:          brandContext,
		ShowDeliberation: showDeliberation,
	})
	if err != nil {
		log.Fatalf("Council deliberation failed: %v", err)
	}

	if showDeliberation {
		header := color.New(color.FgYellow, color.Bold)
		header.Println(strings.Repeat("=", 80))
		header.Println("MENTOR DELIBERATIONS")
		header.Println(strings.Repeat("=", 80))
		for _, mentor := range res.Deliberation {
			color.New(color.FgGreen, color.Bold).Printf("\n[%s]\n", mentor.Mentor)
			fmt.Println(strings.Repeat("-", 80))
			fmt.Println(mentor.Answer)
		}
		fmt.Println()
	}

	color.New(color.FgCyan, color.Bold).Println("COUNCIL SYNTHESIS")
	fmt.Println(res.Synthesis)
}

func runBrief(ctx context.Context, container *bootstrap.Container, question, brandContext, sessionID string) {
	req := &dto.BriefRequest{Question: question, Context: brandContext}
	if id, ok := parseSessionID(sessionID); ok {
		req.SessionId = &id
	}

	res, err := container.BriefService.CreateBrief(ctx, req)
	if err != nil {
		log.Fatalf("Brief pipeline failed: %v", err)
	}

	color.New(color.FgCyan, color.Bold).Println("RESEARCH SUMMARY")
	fmt.Println(res.ResearchSummary)
	color.New(color.FgCyan, color.Bold).Println("\nPLAN")
	fmt.Println(res.Plan)
	color.New(color.FgCyan, color.Bold).Println("\nIMPROVED PLAN")
	fmt.Println(res.ImprovedPlan)
	printSources(res.Sources)
}

func parseSessionID(sessionID string) (uuid.UUID, bool) {
	if sessionID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		log.Fatalf("Invalid session id: %v", err)
	}
	return id, true
}

func printSources(sources []dto.SourceRef) {
	if len(sources) == 0 {
		return
	}
	color.New(color.FgMagenta, color.Bold).Println("\nSOURCES")
	for _, src := range sources {
		fmt.Printf("  - %s (%s)\n", src.Title, src.Domain)
	}
}
