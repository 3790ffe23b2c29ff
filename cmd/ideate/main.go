// Command ideate develops raw concepts into structured ideas using
// domain-specialized agents, and can serve the same pipeline over MCP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/codescan"
	"github.com/dusk-indust/ideate/internal/config"
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/export"
	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/llm"
	"github.com/dusk-indust/ideate/internal/mcptools"
	"github.com/dusk-indust/ideate/internal/orchestrator"
	"github.com/dusk-indust/ideate/internal/store"
)

// version is set by the linker at build time.
var version = "dev"

const usage = `usage: ideate <command> [flags]

commands:
  develop <concept>   develop a raw concept into a structured idea
  history             list previously developed ideas
  domains             list available specialist domains
  chat                chat with a domain agent
  export              export a developed idea as JSON or Mermaid
  serve               run the MCP server
  version             print version and exit
`

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "develop":
		return runDevelop(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "domains":
		return runDomains(args[1:])
	case "chat":
		return runChat(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "serve":
		return runServe(ctx, args[1:])
	case "version":
		fmt.Println(version)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// app bundles the wired collaborators behind every command.
type app struct {
	cfg       *config.Config
	store     *store.Store
	stepGraph graph.Store
	registry  *agent.Registry
	developer *orchestrator.Developer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.ProviderConfig{
		Provider:   cfg.Provider,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	dataDir := cfg.DataDirOrDefault()
	st, err := store.Open(filepath.Join(dataDir, "ideate.db"))
	if err != nil {
		return nil, err
	}

	stepGraph, err := newStepGraph(dataDir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open step graph: %w", err)
	}
	if err := stepGraph.InitSchema(ctx); err != nil {
		st.Close()
		stepGraph.Close()
		return nil, fmt.Errorf("init step graph: %w", err)
	}

	var images llm.ImageGenerator
	if !cfg.DisableImages {
		images, _ = client.(llm.ImageGenerator)
	}

	registry := agent.NewRegistry(agent.Deps{
		Client:  client,
		Images:  images,
		Scanner: codescan.NewScanner(),
		ChatLog: st,
	})

	ocfg := orchestrator.DefaultConfig()
	if cfg.ConsensusThreshold > 0 {
		ocfg.ConsensusThreshold = cfg.ConsensusThreshold
	}

	developer := orchestrator.NewDeveloper(registry, orchestrator.NewClassifier(client), st, ocfg)
	developer.StepGraph = stepGraph

	return &app{
		cfg:       cfg,
		store:     st,
		stepGraph: stepGraph,
		registry:  registry,
		developer: developer,
	}, nil
}

func (a *app) close() {
	a.stepGraph.Close()
	a.store.Close()
}

func runDevelop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("develop", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "print progress while developing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	concept := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if concept == "" {
		return fmt.Errorf("develop: a concept is required")
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if *verbose || a.cfg.Verbose {
		progress := orchestrator.NewProgressReporter()
		a.developer.Progress = progress
		done := make(chan struct{})
		go func() {
			defer close(done)
			for event := range progress.Subscribe() {
				fmt.Fprintln(os.Stderr, orchestrator.FormatProgress(event))
			}
		}()
		defer func() {
			progress.Close()
			<-done
		}()
	}

	developed, err := a.developer.DevelopIdea(ctx, concept)
	if err != nil {
		return err
	}

	printDeveloped(developed)
	return nil
}

func printDeveloped(developed *domain.DevelopedIdea) {
	dev := &developed.Development
	fmt.Printf("idea #%d  domain=%s  keywords=%s\n",
		developed.ID, developed.Idea.Domain, developed.Idea.DisplayKeywords())
	printSection("suggestions", dev.Suggestions)
	printSection("questions", dev.Questions)
	printSection("related concepts", dev.RelatedConcepts)
	printSection("implementation steps", dev.ImplementationSteps)
	if dev.NextStepsTree != "" {
		fmt.Println("\nnext steps diagram stored (base64 mermaid)")
	}
	if dev.ConceptImage != "" {
		fmt.Println("concept image stored (base64)")
	}
}

func printSection(title string, points []string) {
	if len(points) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, p := range points {
		fmt.Printf("  - %s\n", p)
	}
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "maximum number of ideas to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ideas, err := a.store.IdeaHistory(ctx, *limit)
	if err != nil {
		return err
	}
	if len(ideas) == 0 {
		fmt.Println("no ideas developed yet")
		return nil
	}

	for _, rec := range ideas {
		fmt.Printf("#%-4d %-14s %s  (%s)\n",
			rec.ID, rec.Domain, rec.Concept, rec.Timestamp.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDomains(args []string) error {
	fs := flag.NewFlagSet("domains", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Listing domains needs no provider or storage.
	registry := agent.NewRegistry(agent.Deps{})
	for _, d := range registry.Domains() {
		fmt.Println(d)
	}
	return nil
}

func runChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	domainName := fs.String("domain", "", "domain agent to chat with")
	session := fs.String("session", "", "chat session to continue")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if *domainName == "" || message == "" {
		return fmt.Errorf("chat: -domain and a message are required")
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	svc := mcptools.NewIdeateService(a.developer, a.store, a.stepGraph, a.registry)
	_, out, err := svc.AgentChat(ctx, nil, mcptools.AgentChatInput{
		Domain:    *domainName,
		Message:   message,
		SessionID: *session,
	})
	if err != nil {
		return err
	}

	fmt.Println(out.Reply)
	fmt.Fprintf(os.Stderr, "session: %s\n", out.SessionID)
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	id := fs.Int64("id", 0, "idea to export")
	format := fs.String("format", "json", "output format: json or mermaid")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("export: -id is required")
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	switch *format {
	case "json":
		out, err := export.ExportIdea(ctx, a.store, a.stepGraph, *id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "mermaid":
		doc, err := export.StepGraphMermaid(ctx, a.stepGraph, *id)
		if err != nil {
			return err
		}
		if doc == "" {
			return fmt.Errorf("export: idea %d has no step graph", *id)
		}
		fmt.Print(doc)
		return nil
	default:
		return fmt.Errorf("export: unknown format %q", *format)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8137", "address to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	svc := mcptools.NewIdeateService(a.developer, a.store, a.stepGraph, a.registry)
	fmt.Fprintf(os.Stderr, "ideate MCP server listening on %s\n", *addr)
	return mcptools.RunMCPServer(ctx, svc, *addr)
}
