package roast

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// TextGenerator is the external generation backend. It must return
// machine-parseable JSON text for the compiled prompt.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Generator turns an identity and signal text into a Result. It never
// fails: transport errors, unparseable output, missing fields, and an
// unconfigured backend all substitute the fallback, with the specific
// cause logged for operators only.
//
// Parsed output is returned unchanged: the score is not clamped and the
// roast body is not sanitized beyond what the prompt instructs.
type Generator struct {
	backend TextGenerator
	log     *zap.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(backend TextGenerator, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{backend: backend, log: log}
}

// Generate runs the compile-invoke-parse chain and always returns a
// complete Result.
func (g *Generator) Generate(ctx context.Context, identity, signalText string) Result {
	prompt := CompilePrompt(identity, signalText)

	raw, err := g.backend.GenerateJSON(ctx, prompt)
	if err != nil {
		g.log.Warn("roast generation failed, using fallback", zap.Error(err))
		return Fallback()
	}

	result, err := parseResult(raw)
	if err != nil {
		g.log.Warn("roast response unparseable, using fallback",
			zap.Error(err),
			zap.Int("response_len", len(raw)))
		return Fallback()
	}

	return result
}

// resultWire mirrors Result with pointer fields so missing keys are
// distinguishable from zero values, and a json.Number score so
// non-integral values are rejected.
type resultWire struct {
	Headline   *string      `json:"headline"`
	Score      *json.Number `json:"score"`
	RoastBody  *string      `json:"roast_body"`
	DatingLife *string      `json:"dating_life"`
}

func parseResult(raw string) (Result, error) {
	candidates := scanJSONObjects(raw)
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("no JSON object in response")
	}

	var lastErr error
	for _, candidate := range candidates {
		result, err := decodeResult(candidate)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return Result{}, lastErr
}

func decodeResult(candidate string) (Result, error) {
	var wire resultWire
	if err := json.Unmarshal([]byte(candidate), &wire); err != nil {
		return Result{}, fmt.Errorf("invalid JSON: %w", err)
	}

	switch {
	case wire.Headline == nil:
		return Result{}, fmt.Errorf("missing field headline")
	case wire.Score == nil:
		return Result{}, fmt.Errorf("missing field score")
	case wire.RoastBody == nil:
		return Result{}, fmt.Errorf("missing field roast_body")
	case wire.DatingLife == nil:
		return Result{}, fmt.Errorf("missing field dating_life")
	}

	score, err := wire.Score.Int64()
	if err != nil {
		return Result{}, fmt.Errorf("score is not an integer: %w", err)
	}

	return Result{
		Headline:   *wire.Headline,
		Score:      int(score),
		RoastBody:  *wire.RoastBody,
		DatingLife: *wire.DatingLife,
	}, nil
}
