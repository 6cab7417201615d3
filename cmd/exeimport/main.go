package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/exe-legacy-converter/converter"
	"github.com/rgonek/exe-legacy-converter/legacy"
)

const defaultConcurrency = 4

// fileConfig is the YAML configuration accepted by -config.
type fileConfig struct {
	DefaultLanguage string `yaml:"defaultLanguage"`
	Concurrency     int    `yaml:"concurrency"`
}

func loadFileConfig(path string) (fileConfig, error) {
	if strings.TrimSpace(path) == "" {
		return fileConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig merges the config file with flags. Flags win when set.
func resolveConfig(file fileConfig, lang string, concurrency int) (converter.Config, int, error) {
	cfg := converter.Config{DefaultLanguage: file.DefaultLanguage}
	if strings.TrimSpace(lang) != "" {
		cfg.DefaultLanguage = lang
	}

	workers := file.Concurrency
	if concurrency != 0 {
		workers = concurrency
	}
	if workers == 0 {
		workers = defaultConcurrency
	}
	if workers < 0 {
		return converter.Config{}, 0, fmt.Errorf("concurrency must be positive, got %d", workers)
	}
	return cfg, workers, nil
}

// component is one iDevice found in a legacy package.
type component struct {
	ID       string
	Class    string
	TypeHint string
	Dict     *legacy.Node
}

var (
	componentIDKeys = []string{"_id", "id"}
	typeHintKeys    = []string{"_iDeviceDir", "iDeviceDir", "_typeName"}
)

// collectComponents returns every iDevice instance under root in document order.
func collectComponents(root *legacy.Node) []component {
	instances := legacy.FindInstances(root, func(n *legacy.Node) bool {
		short := legacy.ShortClass(n.Class)
		return strings.HasSuffix(short, "Idevice") || strings.HasSuffix(short, "IdeviceInc")
	})

	components := make([]component, 0, len(instances))
	for _, inst := range instances {
		id, _ := legacy.FirstString(inst, componentIDKeys)
		if strings.TrimSpace(id) == "" {
			id = uuid.New().String()
		}
		hint, _ := legacy.FirstString(inst, typeHintKeys)
		components = append(components, component{
			ID:       id,
			Class:    inst.Class,
			TypeHint: hint,
			Dict:     inst,
		})
	}
	return components
}

// convertedComponent is one entry of the JSON output.
type convertedComponent struct {
	ID       string           `json:"id"`
	Class    string           `json:"class"`
	TypeHint string           `json:"typeHint,omitempty"`
	Result   converter.Result `json:"result"`
}

// convertAll converts components with at most workers conversions in flight.
// Output order matches input order.
func convertAll(ctx context.Context, conv *converter.Converter, components []component, language string, workers int) ([]convertedComponent, error) {
	out := make([]convertedComponent, len(components))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range components {
		i, c := i, c // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = convertedComponent{
				ID:       c.ID,
				Class:    c.Class,
				TypeHint: c.TypeHint,
				Result: conv.Convert(
					converter.Record{Class: c.Class, Dict: c.Dict, TypeHint: c.TypeHint},
					converter.ConvertOptions{Language: language, ComponentID: c.ID},
				),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	lang := flag.String("lang", "", "Language for default captions, e.g. 'en' or 'es'")
	configPath := flag.String("config", "", "Path to a YAML config file")
	concurrency := flag.Int("concurrency", 0, "Number of components converted in parallel")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: exeimport [options] <contentv3.xml>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	file, err := loadFileConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config file")
	}
	cfg, workers, err := resolveConfig(file, *lang, *concurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}
	logger := log.Logger
	cfg.Logger = &logger

	conv, err := converter.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read package")
	}

	root, err := legacy.Parse(bytes.NewReader(data))
	if err != nil {
		log.Fatal().Err(err).Str("file", args[0]).Msg("failed to parse package")
	}

	components := collectComponents(root)
	log.Info().Int("components", len(components)).Int("workers", workers).Msg("converting package")

	converted, err := convertAll(context.Background(), conv, components, *lang, workers)
	if err != nil {
		log.Fatal().Err(err).Msg("conversion aborted")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(converted); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}
}
