package handle

import (
	"time"

	"go.uber.org/zap"

	"image-extractor/api/internal/ocr"
	"image-extractor/api/internal/upload"
)

type Options struct {
	Prompt            string
	MaxSize           int64
	AllowedExtensions []string
	// 0 means the model call is bounded only by the request itself.
	ModelTimeout time.Duration
}

type Handle struct {
	engine  ocr.Engine
	scratch *upload.Scratch
	log     *zap.Logger
	opts    Options
	allowed map[string]struct{}
}

func New(engine ocr.Engine, scratch *upload.Scratch, log *zap.Logger, opts Options) *Handle {
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[ext] = struct{}{}
	}
	return &Handle{
		engine:  engine,
		scratch: scratch,
		log:     log,
		opts:    opts,
		allowed: allowed,
	}
}
