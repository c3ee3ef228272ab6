package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/tag"
	"gopkg.in/yaml.v3"
)

// BackfillResult reports the outcome of a vocabulary backfill run.
type BackfillResult struct {
	Embedded int
	Failed   int
}

// Vocabulary maintains the tag catalog: seeding names and backfilling
// embeddings for tags that lack one.
type Vocabulary struct {
	tags     tag.Store
	embedder classify.Embedder
	logger   *slog.Logger
}

// NewVocabulary creates a new Vocabulary service.
func NewVocabulary(tags tag.Store, embedder classify.Embedder, logger *slog.Logger) *Vocabulary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vocabulary{
		tags:     tags,
		embedder: embedder,
		logger:   logger,
	}
}

// seedFile is the YAML schema for vocabulary seed files.
type seedFile struct {
	Tags []string `yaml:"tags"`
}

// SeedFromFile loads tag names from a YAML file and seeds the catalog.
// Returns the number of names seeded.
func (s *Vocabulary) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if err := s.Seed(ctx, f.Tags); err != nil {
		return 0, err
	}
	return len(f.Tags), nil
}

// Seed inserts tags by name. Names are case-normalized and saves are
// keyed on the normalized name, so re-seeding an existing vocabulary is
// a no-op.
func (s *Vocabulary) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		if tag.NormalizeName(name) == "" {
			continue
		}
		if _, err := s.tags.Save(ctx, tag.New(name)); err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
	}
	return nil
}

// Backfill embeds every tag whose embedding is null, using the tag name
// alone as embedding input. Already-embedded tags are never touched, so
// repeated or concurrent runs converge to the same end state. Individual
// embedding failures are counted and skipped rather than aborting the run.
func (s *Vocabulary) Backfill(ctx context.Context) (BackfillResult, error) {
	pending, err := s.tags.FindUnembedded(ctx)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("find unembedded tags: %w", err)
	}

	var result BackfillResult
	for _, t := range pending {
		vec, err := s.embedder.Embed(ctx, t.Name())
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.WarnContext(ctx, "tag embedding failed",
				slog.String("tag", t.Name()),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}

		if _, err := s.tags.Save(ctx, t.WithEmbedding(vec)); err != nil {
			return result, fmt.Errorf("save tag %q: %w", t.Name(), err)
		}
		result.Embedded++
	}

	if result.Embedded > 0 || result.Failed > 0 {
		s.logger.InfoContext(ctx, "vocabulary backfill finished",
			slog.Int("embedded", result.Embedded),
			slog.Int("failed", result.Failed),
		)
	}
	return result, nil
}

// ListTags returns the whole catalog.
func (s *Vocabulary) ListTags(ctx context.Context) ([]tag.Tag, error) {
	return s.tags.Find(ctx)
}
