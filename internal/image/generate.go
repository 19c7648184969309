package image

import (
	"context"
	"time"
)

type Params struct {
	Prompt string `json:"prompt"`
}

type Result struct {
	URL         string
	GeneratedAt time.Time
	Note        string
}

type Generator interface {
	Generate(context.Context, Params) (Result, error)
}
