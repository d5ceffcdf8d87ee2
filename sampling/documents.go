package sampling

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SampleDocuments 并发采样多篇文档，结果顺序与 docs 一致。
//
// 每篇文档使用从 s 的随机源派生的独立随机源，派生在并发开始前按顺序完成，
// 因此固定种子下结果与调度无关。第一个错误会取消剩余文档并返回，
// 错误信息带有文档下标。
func (s *Sampler) SampleDocuments(ctx context.Context, docs []string, req Request) ([]*Result, error) {
	ctx, span := s.tracer.Start(ctx, "sampling.SampleDocuments", trace.WithAttributes(
		attribute.Int("documents", len(docs)),
		attribute.String("strategy", req.Strategy.String()),
		attribute.Int("num_anchors", req.NumAnchors),
		attribute.Int("num_positives", req.NumPositives),
	))
	defer span.End()

	fail := func(err error) ([]*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if err := req.Validate(); err != nil {
		return fail(err)
	}

	workers := make([]*Sampler, len(docs))
	for i := range docs {
		workers[i] = s.fork(rand.New(rand.NewSource(int64(s.rng.Intn(math.MaxInt)))))
	}

	results := make([]*Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, dspan := s.tracer.Start(gctx, "sampling.SampleDocument",
				trace.WithAttributes(attribute.Int("document.index", i)))
			defer dspan.End()

			res, err := workers[i].Sample(doc, req)
			if err != nil {
				dspan.RecordError(err)
				dspan.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("document %d: %w", i, err)
			}
			dspan.SetAttributes(attribute.Int("document.tokens", len(res.Tokens)))
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("document sampling failed", zap.Int("documents", len(docs)), zap.Error(err))
		return fail(err)
	}

	s.logger.Debug("document sampling completed", zap.Int("documents", len(docs)))
	return results, nil
}

// fork 返回共享配置、使用独立随机源的副本。
func (s *Sampler) fork(r RandSource) *Sampler {
	w := *s
	w.rng = r
	return &w
}
