package usecase

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// DefaultSummaries is the standard set of summary tables produced from a
// run. Dimensions reference canonical column names from the data model.
var DefaultSummaries = []domain.SummarySpec{
	{
		Name:    "hh_by_county_size",
		Source:  "households",
		GroupBy: []string{"county", "hh_size"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "households"}},
	},
	{
		Name:    "hh_by_county_autos",
		Source:  "households",
		GroupBy: []string{"county", "autos"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "households"}},
	},
	{
		Name:    "persons_by_type",
		Source:  "persons",
		GroupBy: []string{"person_type"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "persons"}},
	},
	{
		Name:    "tours_by_purpose",
		Source:  "tours",
		GroupBy: []string{"tour_purpose"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "tours"}},
	},
	{
		Name:    "trips_by_mode",
		Source:  "trips",
		GroupBy: []string{"trip_mode"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "trips"}},
	},
	{
		Name:    "trips_by_purpose_mode",
		Source:  "trips",
		GroupBy: []string{"tour_purpose", "trip_mode"},
		Aggs:    []domain.Aggregation{{Kind: domain.AggCount, OutCol: "trips"}},
	},
}

// Summarize reads CTRAMP output tables through the data model and writes
// long summary tables plus a run manifest.
type Summarize struct {
	models ports.DataModelLoader
	tables ports.TableReader
	writer ports.TableWriter
	store  ports.ManifestStore
	newID  func() string
	now    func() time.Time
}

type SummarizeOption func(*Summarize)

// WithIDGenerator overrides run-id generation (useful for tests).
func WithIDGenerator(gen func() string) SummarizeOption {
	return func(uc *Summarize) { uc.newID = gen }
}

// WithClock overrides the clock (useful for tests).
func WithClock(now func() time.Time) SummarizeOption {
	return func(uc *Summarize) { uc.now = now }
}

func NewSummarize(ml ports.DataModelLoader, tr ports.TableReader, tw ports.TableWriter, store ports.ManifestStore, opts ...SummarizeOption) *Summarize {
	uc := &Summarize{
		models: ml,
		tables: tr,
		writer: tw,
		store:  store,
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SummarizeInput names the run to summarize and which specs to produce.
type SummarizeInput struct {
	RunDir string
	Config domain.RunConfig
	Specs  []domain.SummarySpec // defaults to DefaultSummaries
}

// Execute produces every requested summary. Source tables are loaded once
// and reused across specs.
func (uc *Summarize) Execute(ctx context.Context, in SummarizeInput) (domain.RunManifest, error) {
	cfg := in.Config.WithDefaults()
	specs := in.Specs
	if len(specs) == 0 {
		specs = DefaultSummaries
	}

	modelPath := cfg.DataModelPath
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(in.RunDir, modelPath)
	}
	model, err := uc.models.LoadDataModel(modelPath)
	if err != nil {
		return domain.RunManifest{}, err
	}

	vars := domain.PathVars{
		"iteration": strconv.Itoa(cfg.Iteration),
	}

	manifest := domain.RunManifest{
		ID:        uc.newID(),
		RunDir:    in.RunDir,
		Iteration: cfg.Iteration,
		CreatedAt: uc.now().UTC(),
	}

	loaded := map[string]*domain.Table{}
	outDir := filepath.Join(in.RunDir, cfg.SummariesDir)

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return domain.RunManifest{}, err
		}

		src, ok := loaded[spec.Source]
		if !ok {
			src, err = uc.loadSource(in.RunDir, model, vars, spec.Source)
			if err != nil {
				return domain.RunManifest{}, err
			}
			loaded[spec.Source] = src
		}

		out, err := src.GroupBy(spec.GroupBy, spec.Aggs...)
		if err != nil {
			return domain.RunManifest{}, err
		}
		out.Name = spec.Name

		file := filepath.Join(outDir, spec.Name+".csv")
		if err := uc.writer.WriteTable(file, out); err != nil {
			return domain.RunManifest{}, err
		}

		manifest.Summaries = append(manifest.Summaries, domain.SummaryArtifact{
			Name:      spec.Name,
			Source:    spec.Source,
			File:      file,
			Rows:      len(out.Rows),
			CreatedAt: uc.now().UTC(),
		})
	}

	if uc.store != nil {
		if _, err := uc.store.SaveRunManifest(manifest); err != nil {
			return manifest, err
		}
	}
	return manifest, nil
}

func (uc *Summarize) loadSource(runDir string, model domain.DataModel, vars domain.PathVars, source string) (*domain.Table, error) {
	schema, err := model.Schema(source)
	if err != nil {
		return nil, err
	}
	file, err := vars.ResolvePattern(schema.FilePattern)
	if err != nil {
		return nil, err
	}

	t, err := uc.tables.ReadTable(filepath.Join(runDir, "ctramp_output", file))
	if err != nil {
		return nil, err
	}
	if err := schema.Apply(t); err != nil {
		return nil, err
	}
	t.Name = source
	return t, nil
}
