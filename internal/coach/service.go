package coach

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/llm"
)

const keyPrefix = "mindcheck:coach:"

// Service writes short personalised notes that accompany a recommendation.
type Service struct {
	provider llm.Provider
	cache    KVStore
	cfg      Config
	log      *zap.Logger
}

// NewService creates a coach note service. cache and log may be nil.
func NewService(provider llm.Provider, cache KVStore, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cache: cache, cfg: cfg, log: log}
}

type noteOutput struct {
	Note  string `json:"note"`
	Focus string `json:"focus"`
}

// Note returns a note for rec and its outcome, serving from the cache when
// an identical record was seen before.
func (s *Service) Note(ctx context.Context, rec *assessment.FeatureRecord, cond assessment.Condition, recommendation string) (string, error) {
	key, err := CacheKey(rec, cond, recommendation)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			return cached, nil
		case !errors.Is(err, ErrCacheMiss):
			s.log.Warn("coach cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	note, err := s.generate(ctx, rec, cond, recommendation)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, note, s.cfg.TTL); err != nil {
			s.log.Warn("coach cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return note, nil
}

func (s *Service) generate(ctx context.Context, rec *assessment.FeatureRecord, cond assessment.Condition, recommendation string) (string, error) {
	ctx = llm.WithPurpose(ctx, "coach-note")

	req := llm.Request{
		System:      noteSystemPrompt,
		Prompt:      buildNoteUserMessage(rec, cond, recommendation),
		Schema:      NoteSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("coach note generation: %w", err)
	}

	var out noteOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse coach note: %w", err)
	}
	note := strings.TrimSpace(out.Note)
	if note == "" {
		return "", &llm.Error{Kind: llm.KindInvalidOutput, Content: resp.Content, Err: errors.New("empty coach note")}
	}
	return note, nil
}

// CacheKey derives the cache key for a record, its outcome and the advice
// text the note builds on. Switching content sets yields new keys.
func CacheKey(rec *assessment.FeatureRecord, cond assessment.Condition, recommendation string) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("fingerprint record: %w", err)
	}
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte{0})
	h.Write([]byte(recommendation))
	sum := h.Sum(nil)
	return keyPrefix + string(cond) + ":" + hex.EncodeToString(sum[:8]), nil
}
