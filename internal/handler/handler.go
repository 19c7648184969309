package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmorgan81/imagegen/internal/image"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const errorNote = "Mock error for testing"

var ErrMissingPrompt = errors.New("prompt is required")

type Input struct {
	Prompt *string `json:"prompt"`
}

func (i Input) toImageParams() image.Params {
	return image.Params{Prompt: lo.FromPtr(i.Prompt)}
}

type Output struct {
	Message     string  `json:"message"`
	Prompt      *string `json:"prompt,omitempty"`
	GeneratedAt string  `json:"generated_at,omitempty"`
	Note        string  `json:"note,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Handler is the mock image endpoint. It never reports failure to its caller:
// internal errors come back as a placeholder URL plus an error field.
type Handler struct {
	generator image.Generator
	width     int
	height    int
	now       func() time.Time
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		generator: do.MustInvoke[image.Generator](i),
		width:     do.MustInvokeNamed[int](i, "image_width"),
		height:    do.MustInvokeNamed[int](i, "image_height"),
		now:       time.Now,
	}, nil
}

func New(generator image.Generator, width, height int) *Handler {
	return &Handler{generator: generator, width: width, height: height, now: time.Now}
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler")
	log.Info("handling generate request", "prompt", lo.FromPtr(input.Prompt))

	out, err := h.generate(ctx, input)
	if err != nil {
		log.Error("generation failed, answering with placeholder", "error", err)
		return h.errorOutput(), nil
	}
	return out, nil
}

// HandleBody decodes a raw request body before handling it. A body that does
// not decode is treated like any other internal error.
func (h *Handler) HandleBody(ctx context.Context, body []byte) Output {
	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		log.FromContextOrDiscard(ctx).WithGroup("Handler").Error("decoding request body", "error", err)
		return h.errorOutput()
	}
	out, _ := h.Handle(ctx, input)
	return out
}

func (h *Handler) generate(ctx context.Context, input Input) (Output, error) {
	if input.Prompt == nil {
		return Output{}, ErrMissingPrompt
	}

	res, err := h.generator.Generate(ctx, input.toImageParams())
	if err != nil {
		return Output{}, fmt.Errorf("generating image: %w", err)
	}

	return Output{
		Message:     res.URL,
		Prompt:      lo.ToPtr(*input.Prompt),
		GeneratedAt: res.GeneratedAt.Format(time.RFC3339Nano),
		Note:        res.Note,
	}, nil
}

func (h *Handler) errorOutput() Output {
	return Output{
		Message: image.ErrorURL(h.width, h.height, h.now().UnixMilli()),
		Error:   errorNote,
	}
}
