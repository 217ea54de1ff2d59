package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"csvalign/adapters/llm"
	"csvalign/adapters/upload"
	"csvalign/app"
	"csvalign/domain/table"
	"csvalign/internal"
	"csvalign/internal/config"
)

var (
	providerFlag string
	modelFlag    string
	keyFlag      string
	outputFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "csvalign",
	Short: "Align two spreadsheets with a language model",
}

var compareCmd = &cobra.Command{
	Use:          "compare FIRST SECOND",
	Short:        "Compare two spreadsheet files and print the aligned result as CSV",
	Args:         cobra.ExactArgs(2),
	RunE:         runCompare,
	SilenceUsage: true,
}

func init() {
	compareCmd.Flags().StringVar(&providerFlag, "provider", "", "completion provider (openai, anthropic, gemini, deepseek)")
	compareCmd.Flags().StringVar(&modelFlag, "model", "", "model id, defaults to the provider's first catalog entry")
	compareCmd.Flags().StringVar(&keyFlag, "key", "", "API key, falls back to the provider's environment variable, then a prompt")
	compareCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the result CSV to a file instead of stdout")
	rootCmd.AddCommand(compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	// .env is optional for the CLI too.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	catalog, err := llm.LoadCatalog()
	if err != nil {
		return err
	}

	provider := providerFlag
	if provider == "" {
		provider = cfg.AI.DefaultProvider
	}
	if !catalog.HasProvider(provider) {
		return fmt.Errorf("unknown provider %q, pick one of: %s", provider, catalogIDs(catalog))
	}
	model := modelFlag
	if model == "" {
		model = catalog.DefaultModel(provider)
	}

	reader := upload.NewReader()
	var first, second table.Table
	var g errgroup.Group
	g.Go(func() error { return loadFile(reader, args[0], &first) })
	g.Go(func() error { return loadFile(reader, args[1], &second) })
	if err := g.Wait(); err != nil {
		return err
	}

	key := keyFlag
	if key == "" {
		key = cfg.AI.KeyFor(provider)
	}
	if key == "" {
		key, err = promptKey(provider)
		if err != nil {
			return err
		}
	}

	registry := llm.NewRegistry(cfg.AI.Timeout)
	service := app.NewCompareService(registry, cfg.AI, internal.NewDefaultLogger())
	service.LoadTable(app.SlotFirst, first)
	service.LoadTable(app.SlotSecond, second)

	result, err := service.Process(cmd.Context(), app.ProcessRequest{
		Provider:   provider,
		Model:      model,
		Credential: key,
	})
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Fprintln(os.Stderr, "The model returned no text.")
		return nil
	}

	csv, _ := service.DownloadCSV()
	if !strings.HasSuffix(csv, "\n") {
		csv += "\n"
	}
	if outputFlag != "" {
		return os.WriteFile(outputFlag, []byte(csv), 0o644)
	}
	fmt.Print(csv)
	return nil
}

// loadFile reads one spreadsheet from disk into a normalized table.
func loadFile(reader *upload.Reader, path string, dst *table.Table) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	t, err := reader.Read(path, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	*dst = t
	return nil
}

// promptKey asks for the provider key without echoing when stdin is a
// terminal; piped input falls back to a plain line read.
func promptKey(provider string) (string, error) {
	fmt.Fprintf(os.Stderr, "API key for %s: ", provider)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func catalogIDs(catalog *llm.Catalog) string {
	ids := make([]string, 0, len(catalog.Providers))
	for _, p := range catalog.Providers {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ", ")
}
