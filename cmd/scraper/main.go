package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobhawk-automation/internal/apply"
	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/criteria"
	"go-jobhawk-automation/internal/database"
	"go-jobhawk-automation/internal/dedup"
	"go-jobhawk-automation/internal/orchestrate"
	"go-jobhawk-automation/internal/reporter"
	"go-jobhawk-automation/internal/scraper"
	"go-jobhawk-automation/internal/sysinfo"
	"go-jobhawk-automation/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	platformsFlag := flag.String("platforms", "", "comma-separated platform override (linkedin,indeed,glassdoor)")
	applyFlag := flag.Bool("apply", false, "hand accepted listings to the applier")
	flag.Parse()
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		*configPath = env
	}

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *platformsFlag != "" {
		picked := strings.Split(*platformsFlag, ",")
		cfg.LinkedIn.Enabled = contains(picked, "linkedin")
		cfg.Indeed.Enabled = contains(picked, "indeed")
		cfg.Glassdoor.Enabled = contains(picked, "glassdoor")
	}
	if *applyFlag {
		cfg.Behavior.AutoApply = true
	}
	log.Printf("🔧 Config loaded. Search terms: %v", cfg.Search.Terms.Match)

	//init telegram reporter (optional; runs headless-silent without it)
	var tg *reporter.TelegramReporter
	if cfg.TelegramToken != "" {
		tg, err = reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to init Telegram reporter: %v", err)
		}
		log.Println("🤖 Telegram reporter initialized.")
	} else {
		log.Println("⚠️ No Telegram token set. Operator alerts disabled.")
	}

	//ctrl-c cancels the run but still writes the run record
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Println("🚀 Starting JobHawk Automation...")

	//connect database and make sure the schema exists
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ Failed to ensure schema: %v", err)
	}
	log.Println("🗄️ Database ready.")

	//init playwright manager
	pwManager, err := browser.NewPlaywright()
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	//close playwright manager when application stops
	defer pwManager.Close()

	//load cookies
	cookieFiles := map[string]string{
		"linkedin":  filepath.Join(cfg.CookiesPath, "cookies-linkedin.json"),
		"indeed":    filepath.Join(cfg.CookiesPath, "cookies-indeed.json"),
		"glassdoor": filepath.Join(cfg.CookiesPath, "cookies-glassdoor.json"),
	}
	var allCookies []playwright.OptionalCookie
	for name, cookieFile := range cookieFiles {
		cookies, err := browser.LoadCookies(cookieFile)
		if err != nil {
			log.Printf("⚠️ Could not load %s cookies: %v. Continuing.", name, err)
			continue
		}
		log.Printf("🍪 Loaded %s cookies (%d)", name, len(cookies))
		allCookies = append(allCookies, cookies...)
	}

	//create new browser context with cookies
	browserCtx, err := pwManager.NewContext(allCookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	//create new page
	pwPage, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	page := browser.WrapPage(pwPage)
	log.Println("✅ Browser initialized successfully!")

	//shared collaborators: one dedup session and one criteria checker
	//span all platforms so the same posting never gets processed twice
	var operator orchestrate.Operator
	if tg != nil {
		operator = tg
	}
	var applier scraper.Applier
	if cfg.Behavior.AutoApply {
		applier = apply.LogOnly{}
	}
	deps := orchestrate.Deps{
		Config:   cfg,
		Checker:  criteria.NewChecker(cfg),
		Store:    repo,
		Session:  dedup.NewSession(),
		Applier:  applier,
		Limits:   repo,
		Operator: operator,
		MemUsed:  sysinfo.MemoryUsedPercent,
		Address:  sysinfo.DefaultAddress(),
	}

	var engines []*orchestrate.Engine
	if cfg.LinkedIn.Enabled {
		engines = append(engines, orchestrate.NewLinkedIn(page, deps))
	}
	if cfg.Indeed.Enabled {
		engines = append(engines, orchestrate.NewIndeed(page, deps))
	}
	if cfg.Glassdoor.Enabled {
		engines = append(engines, orchestrate.NewGlassdoor(page, deps))
	}

	startTime := time.Now()
	happyExit := true
	totalParsed := 0
	var platforms []string

	shots, err := utils.NewScreenShotDebugger(filepath.Join("logs", "screenshots"))
	if err != nil {
		log.Printf("⚠️ Screenshot capture disabled: %v", err)
	}
	captureFailure := func(platform string) {
		if shots == nil {
			return
		}
		path, err := shots.Capture(pwPage, platform)
		if err != nil {
			log.Printf("⚠️ %v", err)
			return
		}
		log.Printf("📸 Saved failure screenshot to %s", path)
	}

	//run engines loop
	for _, eng := range engines {
		if ctx.Err() != nil {
			happyExit = false
			break
		}
		log.Printf("\n▶️ Starting platform: %s", eng.Name())
		platforms = append(platforms, string(eng.Name()))

		if err := eng.Login(ctx); err != nil {
			log.Printf("❌ Could not confirm %s session: %v", eng.Name(), err)
			captureFailure(strings.ToLower(string(eng.Name())))
			happyExit = false
			continue
		}
		if err := eng.Scrape(ctx); err != nil {
			log.Printf("❌ %s halted: %v", eng.Name(), err)
			captureFailure(strings.ToLower(string(eng.Name())))
			happyExit = false
		}
		totalParsed += eng.JobsParsed()
		log.Printf("✅ Platform %s finished. Parsed %d listings.", eng.Name(), eng.JobsParsed())
	}

	log.Printf("\n📦 Total listings parsed: %d", totalParsed)

	//write the run record; use a fresh context so a ctrl-c run still logs
	recordCtx, recordCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer recordCancel()
	record := database.RunRecord{
		Address:    deps.Address,
		JobsParsed: totalParsed,
		Platforms:  strings.Join(platforms, ","),
		HappyExit:  happyExit && ctx.Err() == nil,
		StartTime:  startTime,
		EndTime:    time.Now(),
	}
	if err := repo.LogRunRecord(recordCtx, record); err != nil {
		log.Printf("⚠️ Failed to write run record: %v", err)
	}

	//send the run summary with the most common rejection terms
	if tg != nil {
		topIgnores, err := repo.TopIgnoreTerms(recordCtx, 10)
		if err != nil {
			log.Printf("⚠️ Failed to load top ignore terms: %v", err)
		}
		if err := tg.RunSummary(record, topIgnores); err != nil {
			log.Printf("⚠️ Failed to send run summary: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.TrimSpace(strings.ToLower(v)) == want {
			return true
		}
	}
	return false
}
