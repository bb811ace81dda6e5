package codegen

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

// RunOptions control a generation run.
type RunOptions struct {
	// Workers bounds the number of files rendered concurrently; values below 1 mean 1
	Workers int
	// Verify runs each backend's Verifier on its own output
	Verify bool
}

// job renders one artifact into its slot.
type job struct {
	backend Backend
	kind    ArtifactKind
	message *schema.Message
	enum    *schema.Enum
}

// Run renders every schema of reg with every backend.
//
// Work is split per file and executed concurrently, but each result lands in
// a slot fixed before any work starts, so the artifact order is the same for
// every run. The first error cancels the remaining work and fails the run.
func Run(ctx context.Context, reg *registry.Registry, backends []Backend, opts RunOptions) (*Result, error) {
	log := logger.ComponentLogger("codegen")
	start := time.Now()

	result := &Result{Skipped: make(map[string][]string)}
	var jobs []job

	for _, b := range backends {
		planned := len(jobs)
		// One slot for all well-known files of the backend.
		jobs = append(jobs, job{backend: b, kind: WellKnownFile})

		skipper, canSkip := b.(Skipper)
		for _, msg := range reg.Messages() {
			if canSkip && skipper.Skip(msg) {
				result.Skipped[b.Name()] = append(result.Skipped[b.Name()], msg.Name)
				continue
			}
			jobs = append(jobs, job{backend: b, kind: MessageFile, message: msg})
		}
		for _, e := range enumFiles(reg, b.EnumPlacement()) {
			jobs = append(jobs, job{backend: b, kind: EnumFile, enum: e})
		}
		logger.ChildLogger(log, logger.FieldBackend, b.Name()).Debugw("Planned jobs",
			logger.FieldCount, len(jobs)-planned)
	}

	slots := make([][]Artifact, len(jobs))
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		i, j := i, jobs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			artifacts, err := j.render(opts.Verify)
			if err != nil {
				return err
			}
			slots[i] = artifacts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range slots {
		result.Artifacts = append(result.Artifacts, s...)
	}

	log.Infow("Rendered schemas",
		logger.FieldCount, len(result.Artifacts),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	for name, skipped := range result.Skipped {
		log.Debugw("Skipped messages",
			logger.FieldBackend, name,
			logger.FieldCount, len(skipped))
	}
	return result, nil
}

func (j job) render(verify bool) ([]Artifact, error) {
	b := j.backend
	switch j.kind {
	case WellKnownFile:
		artifacts, err := b.WellKnown()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: render well-known types", b.Name())
		}
		return artifacts, nil

	case MessageFile:
		content, err := b.RenderMessage(j.message)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: render %s", b.Name(), j.message.Name)
		}
		if verify {
			if v, ok := b.(Verifier); ok {
				if err := v.VerifyMessage(j.message, content); err != nil {
					return nil, errors.Wrapf(err, "%s: verify %s", b.Name(), j.message.Name)
				}
			}
		}
		return []Artifact{{
			Backend: b.Name(),
			Name:    j.message.Name,
			Kind:    MessageFile,
			Path:    b.Path(j.message.Name),
			Content: content,
		}}, nil

	case EnumFile:
		content, err := b.RenderEnum(j.enum)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: render enum %s", b.Name(), j.enum.Name)
		}
		return []Artifact{{
			Backend: b.Name(),
			Name:    j.enum.Name,
			Kind:    EnumFile,
			Path:    b.Path(j.enum.Name),
			Content: content,
		}}, nil
	}
	return nil, errors.AssertionFailedf("unknown artifact kind %d", j.kind)
}

// enumFiles returns the enums that get their own file under placement.
func enumFiles(reg *registry.Registry, placement EnumPlacement) []*schema.Enum {
	switch placement {
	case EnumsSeparate:
		return reg.Enums()
	case EnumsWithParent:
		return reg.StandaloneEnums()
	default:
		return nil
	}
}
