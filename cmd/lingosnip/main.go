// Command lingosnip resolves translation keys into language-conditional
// template snippets and generates localized templates for deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TessaraLabs/lingosnip"
	"github.com/TessaraLabs/lingosnip/cache"
	"github.com/TessaraLabs/lingosnip/catalog"
	"github.com/TessaraLabs/lingosnip/generator"
	"github.com/TessaraLabs/lingosnip/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("lingosnip", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags override environment configuration
	languages := fs.String("languages", "", "Comma-separated ordered language tags, highest priority first (e.g. fr-FR,en-US)")
	catalogDir := fs.String("catalog-dir", "", "Directory of <language>.json catalog files")
	marker := fs.String("marker", "", "Template variable tested by generated conditionals (default: lang)")
	key := fs.String("key", "", "Resolve a single translation key and print the snippet")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	cacheStrategy := fs.String("cache", "", "Cache strategy: memory, disk, hybrid, redis")
	cacheDir := fs.String("cache-dir", "", "Directory for the disk cache tier")
	cacheTTL := fs.Int("cache-ttl", 0, "Catalog cache TTL in seconds")
	redisURL := fs.String("redis-url", "", "Redis URL for the redis cache strategy")
	fillLang := fs.String("fill", "", "Machine-translate keys this language is missing relative to the default language")
	fillContext := fs.String("context", "", "Context hint for machine translation (e.g. 'login page')")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "", "OpenAI model for --fill")
	diffFile := fs.String("diff", "", "Compare the default language catalog against a previous version file")
	exportCache := fs.String("export-cache", "", "Export the cache to a JSON file and exit")
	importCache := fs.String("import-cache", "", "Import a cache export before running")
	showStats := fs.Bool("stats", false, "Print cache statistics after running")
	jsonOutput := fs.Bool("json", false, "Output results as JSON")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingosnip.Name, lingosnip.FullVersion())
		if lingosnip.BuildDate != "unknown" && lingosnip.BuildDate != "" {
			fmt.Fprintf(stdout, "  built: %s\n", lingosnip.BuildDate)
		}
		return nil
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	applyOverrides(&cfg, overrides{
		languages:     *languages,
		catalogDir:    *catalogDir,
		marker:        *marker,
		cacheStrategy: *cacheStrategy,
		cacheDir:      *cacheDir,
		cacheTTL:      *cacheTTL,
		redisURL:      *redisURL,
		apiKey:        *apiKey,
		model:         *model,
		logLevel:      *logLevel,
	})

	if len(cfg.Languages) == 0 {
		fs.Usage()
		return fmt.Errorf("--languages is required (or set LINGOSNIP_LANGUAGES)")
	}

	logger := newLogger(cfg.LogLevel, stderr)

	svc, err := cache.NewService(cache.Config{
		Strategy:     cache.Strategy(cfg.CacheStrategy),
		Dir:          cfg.CacheDir,
		MaxSizeBytes: cfg.CacheMaxBytes,
		Redis:        cache.RedisConfig{URL: cfg.RedisURL},
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer svc.Close()

	if *importCache != "" {
		result, err := cache.NewImporter(svc).ImportFromFile(*importCache)
		if err != nil {
			return fmt.Errorf("importing cache: %w", err)
		}
		if !*quiet {
			fmt.Fprintf(stderr, "Imported %d cache entries (%d skipped)\n", result.Imported, result.Skipped)
		}
	}

	loader := catalog.NewLoader(catalog.NewDirReader(cfg.CatalogDir),
		catalog.WithCache(svc),
		catalog.WithTTL(cfg.CacheTTL),
		catalog.WithLogger(logger),
	)

	resolver, err := lingosnip.NewResolver(loader, cfg.Languages, lingosnip.WithMarker(cfg.Marker))
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case *exportCache != "":
		err = runExportCache(ctx, svc, loader, cfg.Languages, *exportCache, stderr, *quiet)
	case *diffFile != "":
		err = runDiff(ctx, loader, cfg.Languages[0], *diffFile, stdout, *jsonOutput)
	case *fillLang != "":
		err = runFill(ctx, loader, cfg, *fillLang, *fillContext, *output, stdout, stderr, *quiet)
	case *key != "":
		err = runResolve(ctx, resolver, *key, *output, stdout)
	case fs.NArg() > 0:
		err = runGenerate(ctx, resolver, loader, cfg.Languages, fs.Args(), *output, stdout, stderr, logger, *quiet)
	default:
		fs.Usage()
		return fmt.Errorf("nothing to do: pass template files or one of --key, --fill, --diff, --export-cache")
	}
	if err != nil {
		return err
	}

	if *showStats {
		printStats(stderr, svc.Stats())
	}
	return nil
}

type overrides struct {
	languages     string
	catalogDir    string
	marker        string
	cacheStrategy string
	cacheDir      string
	cacheTTL      int
	redisURL      string
	apiKey        string
	model         string
	logLevel      string
}

func applyOverrides(cfg *config, o overrides) {
	if o.languages != "" {
		parts := strings.Split(o.languages, ",")
		cfg.Languages = cfg.Languages[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Languages = append(cfg.Languages, p)
			}
		}
	}
	if o.catalogDir != "" {
		cfg.CatalogDir = o.catalogDir
	}
	if o.marker != "" {
		cfg.Marker = o.marker
	}
	if o.cacheStrategy != "" {
		cfg.CacheStrategy = o.cacheStrategy
	}
	if o.cacheDir != "" {
		cfg.CacheDir = o.cacheDir
	}
	if o.cacheTTL > 0 {
		cfg.CacheTTL = o.cacheTTL
	}
	if o.redisURL != "" {
		cfg.RedisURL = o.redisURL
	}
	if o.apiKey != "" {
		cfg.OpenAIAPIKey = o.apiKey
	}
	if o.model != "" {
		cfg.OpenAIModel = o.model
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
}

// runResolve resolves one key in strict mode and prints the snippet.
func runResolve(ctx context.Context, resolver *lingosnip.Resolver, key, output string, stdout io.Writer) error {
	snippet, err := resolver.Resolve(ctx, key)
	if err != nil {
		return err
	}
	return writeOutput(output, stdout, snippet+"\n")
}

// runGenerate produces localized copies of the given template files.
func runGenerate(ctx context.Context, resolver *lingosnip.Resolver, loader *catalog.Loader,
	languages, files []string, output string, stdout, stderr io.Writer, logger *slog.Logger, quiet bool,
) error {
	catalogs, err := loader.LoadAll(ctx, languages)
	if err != nil {
		return err
	}

	gen, err := generator.New(resolver, catalogs, languages)
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := os.ReadFile(file) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		start := time.Now()
		var result *generator.Result
		switch strings.ToLower(filepath.Ext(file)) {
		case ".html", ".htm":
			result, err = gen.GenerateHTML(string(data))
		default:
			result, err = gen.Generate(string(data))
		}
		if err != nil {
			return fmt.Errorf("generating %s: %w", file, err)
		}

		for _, missing := range result.Missing {
			logger.Warn("translation missing, placeholder emitted", "template", file, "key", missing)
		}

		if err := writeOutput(output, stdout, result.Content); err != nil {
			return err
		}

		if !quiet {
			fmt.Fprintf(stderr, "%s: %d placeholders resolved, %d keys missing (%v)\n",
				file, result.Resolved, len(result.Missing), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}

// runFill machine-translates the keys target is missing relative to the
// default language and writes the updated catalog.
func runFill(ctx context.Context, loader *catalog.Loader, cfg config,
	targetLang, fillContext, output string, stdout, stderr io.Writer, quiet bool,
) error {
	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("OpenAI API key required (--api-key or OPENAI_API_KEY env)")
	}

	source, err := loader.Load(ctx, cfg.Languages[0])
	if err != nil {
		return err
	}
	target, err := loader.Load(ctx, targetLang)
	if err != nil {
		return err
	}

	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	})
	limited := lingosnip.NewRateLimitedProvider(p, lingosnip.RateLimitConfig{RequestsPerMinute: 60})
	retryable := lingosnip.NewRetryableProvider(limited, lingosnip.DefaultRetryConfig())

	filler := lingosnip.NewFiller(retryable, lingosnip.WithFillContext(fillContext))
	result, err := filler.Fill(ctx, source, target)
	if err != nil {
		return err
	}

	flat := make(map[string]string, len(result.Catalog.Entries))
	for k, e := range result.Catalog.Entries {
		flat[k] = e.Value
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := writeOutput(output, stdout, string(data)+"\n"); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(stderr, "Filled %d keys for %s (%d skipped, completeness %d%%)\n",
			len(result.Filled), targetLang, len(result.Skipped), result.Catalog.Metadata.Completeness)
	}
	return nil
}

// runDiff compares the default language's current catalog with a previous
// version file and reports the keys needing re-translation.
func runDiff(ctx context.Context, loader *catalog.Loader, defaultLang, oldPath string, stdout io.Writer, jsonOut bool) error {
	oldData, err := os.ReadFile(oldPath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading previous version: %w", err)
	}

	// Parse the old file through a one-off in-memory reader so both sides
	// go through identical catalog parsing.
	oldLoader := catalog.NewLoader(catalog.NewMapReader(map[string]string{defaultLang: string(oldData)}))
	oldCat, err := oldLoader.Load(ctx, defaultLang)
	if err != nil {
		return fmt.Errorf("parsing previous version: %w", err)
	}

	newCat, err := loader.Load(ctx, defaultLang)
	if err != nil {
		return err
	}

	diff := lingosnip.DiffCatalogs(oldCat, newCat)
	stats := diff.Stats()

	if jsonOut {
		out := struct {
			Language         string   `json:"language"`
			PreviousFile     string   `json:"previous_file"`
			Added            int      `json:"added"`
			Removed          int      `json:"removed"`
			Changed          int      `json:"changed"`
			Unchanged        int      `json:"unchanged"`
			NeedsTranslation []string `json:"needs_translation"`
		}{
			Language:         defaultLang,
			PreviousFile:     filepath.Base(oldPath),
			Added:            stats.Added,
			Removed:          stats.Removed,
			Changed:          stats.Changed,
			Unchanged:        stats.Unchanged,
			NeedsTranslation: diff.NeedsTranslation(),
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "Catalog diff for %s vs %s\n", defaultLang, filepath.Base(oldPath))
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "  Changed:   %d\n", stats.Changed)
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	if keys := diff.NeedsTranslation(); len(keys) > 0 {
		fmt.Fprintf(stdout, "Needs re-translation:\n")
		for _, k := range keys {
			fmt.Fprintf(stdout, "  - %s\n", k)
		}
	}
	return nil
}

// runExportCache warms the cache with every configured language, then
// exports it. The warm-up makes exports useful as pre-seeded caches for
// CI pipelines that cannot reach the catalog source.
func runExportCache(ctx context.Context, svc *cache.Service, loader *catalog.Loader,
	languages []string, path string, stderr io.Writer, quiet bool,
) error {
	if _, err := loader.LoadAll(ctx, languages); err != nil {
		return err
	}

	meta := map[string]string{
		"tool":      lingosnip.Name,
		"version":   lingosnip.Version,
		"languages": strings.Join(languages, ","),
	}
	if err := cache.NewExporter(svc).ExportToFile(path, meta); err != nil {
		return fmt.Errorf("exporting cache: %w", err)
	}
	if !quiet {
		fmt.Fprintf(stderr, "Cache exported to %s\n", path)
	}
	return nil
}

func printStats(w io.Writer, stats cache.Stats) {
	fmt.Fprintf(w, "Cache stats:\n")
	fmt.Fprintf(w, "  Strategy: %s\n", stats.Strategy)
	fmt.Fprintf(w, "  Entries:  %d\n", stats.Entries)
	fmt.Fprintf(w, "  Size:     %d bytes", stats.SizeBytes)
	if stats.MaxSizeBytes > 0 {
		fmt.Fprintf(w, " / %d max", stats.MaxSizeBytes)
	}
	fmt.Fprintln(w)
}

func writeOutput(path string, stdout io.Writer, content string) error {
	if path == "" {
		_, err := fmt.Fprint(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
