package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kbygtools/eventscout/internal/ai"
	"github.com/kbygtools/eventscout/internal/config"
	"github.com/kbygtools/eventscout/internal/history"
	"github.com/kbygtools/eventscout/internal/hostprofile"
	"github.com/kbygtools/eventscout/internal/logging"
	"github.com/kbygtools/eventscout/internal/notify"
	"github.com/kbygtools/eventscout/internal/pipeline"
	"github.com/kbygtools/eventscout/internal/scrape"
	"github.com/kbygtools/eventscout/internal/telemetry"
)

var (
	pageURL      = flag.String("url", "", "(-u) URL of the event page to analyze")
	configPath   = flag.String("config", "", "(-c) Path to the YAML config file (default: eventscout.yaml if present)")
	force        = flag.Bool("force", false, "(-f) Re-analyze even if the page was already analyzed today")
	skipPreCheck = flag.Bool("skip-precheck", false, "Skip the single-event page classifier and analyze unconditionally")

	coachQuestion = flag.String("coach", "", "Ask a one-shot engagement question about the analyzed event")
	coachTarget   = flag.String("coach-target", "", "Person or persona the coaching question is about (default: top persona)")

	smtpServer = flag.String("smtp-server", "", "SMTP server address (overrides config)")
	smtpPort   = flag.Int("smtp-port", 0, "SMTP server port (overrides config)")
	smtpUser   = flag.String("smtp-user", "", "SMTP username (overrides config)")
	smtpPass   = flag.String("smtp-pass", "", "SMTP password or App Password (overrides config)")
	toEmail    = flag.String("to-email", "", "Recipient email address (overrides config)")
	fromEmail  = flag.String("from-email", "", "Sender email address (default: smtp-user)")
)

func init() {
	flag.StringVar(pageURL, "u", "", "(-u) URL of the event page to analyze (shorthand)")
	flag.StringVar(configPath, "c", "", "(-c) Path to the YAML config file (shorthand)")
	flag.BoolVar(force, "f", false, "(-f) Re-analyze even if the page was already analyzed today (shorthand)")

	flag.Usage = func() {
		flagSet := flag.CommandLine
		fmt.Printf("Usage of %s:\n", "eventscout")

		order := []string{
			"url",
			"config",
			"force",
			"skip-precheck",
			"coach",
			"coach-target",
			"smtp-server",
			"smtp-port",
			"smtp-user",
			"smtp-pass",
			"to-email",
			"from-email",
		}

		for _, name := range order {
			f := flagSet.Lookup(name)
			if f != nil {
				fmt.Printf("  -%s\n", f.Name)
				fmt.Printf("    %s\n", f.Usage)
			}
		}
	}
}

func main() {
	flag.Parse()

	if *pageURL == "" {
		fmt.Println("Error: An event page URL is required.")
		fmt.Println("Usage: eventscout -url 'https://example.com/event' [-c eventscout.yaml] [--to-email=...]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Fatal error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(&cfg)

	logging.Init(false, logging.ParseLevel(cfg.LogLevel))

	if cfg.Gemini.APIKey == "" {
		fmt.Println("Error: A Gemini API key is required (config gemini.apiKey or EVENTSCOUT_GEMINI_API_KEY).")
		os.Exit(1)
	}

	historyManager, err := history.NewManager(cfg.Timezone, slog.Default())
	if err != nil {
		fmt.Printf("Fatal error setting up history: %v\n", err)
		os.Exit(1)
	}

	if !*force && historyManager.AlreadyAnalyzed(*pageURL) {
		fmt.Println("This page was already analyzed today. Use -f to re-analyze.")
		return
	}

	fmt.Printf("Fetching event page: %s\n", *pageURL)

	sig, err := scrape.FetchSignals(*pageURL)
	if err != nil {
		fmt.Printf("Fatal error fetching page: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	aiClient, err := ai.NewClient(ctx, ai.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		fmt.Printf("Fatal error creating model client: %v\n", err)
		os.Exit(1)
	}

	analyzer := pipeline.New(
		aiClient,
		buildHostProfileService(cfg),
		buildTelemetryReporter(cfg),
		userProfile(cfg),
		slog.Default(),
	)

	if !*skipPreCheck {
		check, err := analyzer.PreCheck(ctx, sig)
		if err != nil {
			fmt.Printf("Fatal error during page pre-check: %v\n", err)
			os.Exit(1)
		}
		if !check.IsEvent || check.Confidence != "high" {
			fmt.Println("\n-------------------------------------------")
			fmt.Println("This page does not look like a dedicated event page.")
			fmt.Printf("Classifier verdict: isEvent=%t confidence=%s\n", check.IsEvent, check.Confidence)
			fmt.Println("Use --skip-precheck to analyze anyway.")
			fmt.Println("-------------------------------------------")
			return
		}
		slog.Info("pre-check passed", "eventName", check.EventName, "eventDate", check.EventDate)
	}

	record, err := analyzer.Analyze(ctx, sig)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	notify.ReportBrief(record, *pageURL)

	if *coachQuestion != "" {
		advice, err := analyzer.Coach(ctx, record, *coachTarget, *coachQuestion)
		if err != nil {
			fmt.Printf("Coaching failed: %v\n", err)
		} else {
			fmt.Println("\n-------------------------------------------")
			fmt.Println("ENGAGEMENT COACH")
			fmt.Println(advice)
			fmt.Println("-------------------------------------------")
		}
	}

	emailConfig := notify.EmailConfig{
		SMTPServer: cfg.Email.SMTPServer,
		SMTPPort:   cfg.Email.SMTPPort,
		SMTPUser:   cfg.Email.SMTPUser,
		SMTPPass:   cfg.Email.SMTPPass,
		FromEmail:  cfg.Email.FromEmail,
		ToEmail:    cfg.Email.ToEmail,
		Enabled: cfg.Email.Enabled &&
			cfg.Email.SMTPServer != "" && cfg.Email.SMTPUser != "" && cfg.Email.SMTPPass != "" && cfg.Email.ToEmail != "",
	}
	if emailConfig.FromEmail == "" && emailConfig.SMTPUser != "" {
		emailConfig.FromEmail = emailConfig.SMTPUser
	}
	if emailConfig.Enabled {
		if err := notify.EmailBrief(record, *pageURL, emailConfig); err != nil {
			slog.Warn("failed to email event brief", "error", err)
		}
	}

	historyManager.RecordAnalysis(*pageURL, record.EventName, record.StartDate)
	fmt.Printf("Analysis complete. History saved to %s.\n", historyManager.HistoryFilePath())
}

func applyFlagOverrides(cfg *config.Config) {
	if *smtpServer != "" {
		cfg.Email.SMTPServer = *smtpServer
	}
	if *smtpPort != 0 {
		cfg.Email.SMTPPort = *smtpPort
	}
	if *smtpUser != "" {
		cfg.Email.SMTPUser = *smtpUser
	}
	if *smtpPass != "" {
		cfg.Email.SMTPPass = *smtpPass
	}
	if *toEmail != "" {
		cfg.Email.ToEmail = *toEmail
	}
	if *fromEmail != "" {
		cfg.Email.FromEmail = *fromEmail
	}
}

func buildHostProfileService(cfg config.Config) *hostprofile.Service {
	var fetcher hostprofile.Fetcher
	if cfg.Backend.ProfileEndpoint != "" {
		fetcher = hostprofile.NewHTTPFetcher(cfg.Backend.ProfileEndpoint, cfg.Backend.AuthToken)
	}
	return hostprofile.NewService(fetcher)
}

func buildTelemetryReporter(cfg config.Config) *telemetry.Reporter {
	var sink telemetry.Sink
	if cfg.Telemetry.Endpoint != "" {
		sink = telemetry.NewHTTPSink(cfg.Telemetry.Endpoint, cfg.Telemetry.AuthToken)
	}
	return telemetry.NewReporter(sink, cfg.Telemetry.SampleRate, slog.Default())
}

func userProfile(cfg config.Config) ai.UserProfile {
	return ai.UserProfile{
		CompanyName:      cfg.Profile.CompanyName,
		Role:             cfg.Profile.Role,
		Product:          cfg.Profile.Product,
		ValueProp:        cfg.Profile.ValueProp,
		TargetPersonas:   cfg.Profile.TargetPersonas,
		TargetIndustries: cfg.Profile.TargetIndustries,
		Competitors:      cfg.Profile.Competitors,
		Notes:            cfg.Profile.Notes,
	}
}
