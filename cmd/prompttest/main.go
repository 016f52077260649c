package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"watchfinder-backend/internal/catalog"
	"watchfinder-backend/internal/filters"
	"watchfinder-backend/internal/llm"
	gemini "watchfinder-backend/internal/llm/gemini"
	openai "watchfinder-backend/internal/llm/openai"
	"watchfinder-backend/internal/recs"
	"watchfinder-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	facetFlags := make(map[string]*string)
	for _, f := range catalog.Facets() {
		facetFlags[f.ID] = flag.String(f.ID, "", fmt.Sprintf("Comma-separated %s values", f.Label))
	}
	priceMin := flag.Float64("price-min", 0, "Minimum price")
	priceMax := flag.Float64("price-max", 5000, "Maximum price")
	caseMin := flag.Float64("case-min", 30, "Minimum case size in mm")
	caseMax := flag.Float64("case-max", 50, "Maximum case size in mm")
	contractVersion := flag.String("contract-version", cfg.ContractVersion, "Output contract version")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	call := flag.Bool("call", false, "Call the provider and validate the response")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	flag.Parse()

	sel := filters.NewSelection()
	for facetID, raw := range facetFlags {
		for _, value := range splitValues(*raw) {
			var err error
			if catalog.IsPreset(facetID, value) {
				err = sel.Toggle(facetID, value)
			} else {
				err = sel.AddCustom(facetID, value)
			}
			if err != nil {
				exitErr(fmt.Sprintf("%s %q: %v", facetID, value, err))
			}
		}
	}
	if err := sel.SetRange(catalog.RangePrice, *priceMin, *priceMax); err != nil {
		exitErr(fmt.Sprintf("price range: %v", err))
	}
	if err := sel.SetRange(catalog.RangeCaseSize, *caseMin, *caseMax); err != nil {
		exitErr(fmt.Sprintf("case size range: %v", err))
	}

	version := llm.NormalizeContractVersion(*contractVersion)
	prompt := llm.BuildSearchPrompt(version, filters.Normalize(sel))
	fmt.Println(prompt)

	if !*call {
		return
	}

	client, err := buildClient(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	raw, err := client.Suggest(context.Background(), llm.SuggestInput{
		Prompt:          prompt,
		ContractVersion: version,
	})
	if err != nil {
		exitErr(fmt.Sprintf("llm suggest: %v", err))
	}

	watches, err := recs.ValidateSuggestions(version, raw)
	if err != nil {
		exitErr(fmt.Sprintf("validate response: %v", err))
	}
	fmt.Fprintf(os.Stderr, "validated %d suggestions\n", len(watches))

	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func buildClient(provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), model)
	case "", "gemini":
		return gemini.NewClient(context.Background(), os.Getenv("GEMINI_API_KEY"), model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func splitValues(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
