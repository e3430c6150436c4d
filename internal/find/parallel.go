package scout

import (
	"context"
	"path/filepath"
	"sync"
)

// parallelWalker fans per-directory visits across a bounded goroutine
// pool. One short-lived goroutine exists per directory in flight; the
// semaphore bounds how many of them list and emit at once, and a
// directory releases its slot before spawning its subdirectories so
// children never deadlock waiting on their ancestors.
type parallelWalker struct {
	*walker
	sem    chan struct{}
	wg     sync.WaitGroup
	emit   func(Entry)
	errc   chan error
	cancel context.CancelFunc
}

// walkParallel runs the parallel traversal with the given worker
// bound, calling emit concurrently for every discovered entry. The
// entry set matches the sequential walk for the same tree and
// options; no ordering is guaranteed. The first non-tolerated error
// cancels the run and is returned once every worker has drained;
// entries already emitted stay emitted.
func (w *walker) walkParallel(ctx context.Context, workers int, emit func(Entry)) error {
	ok, err := w.prepare()
	if !ok {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := &parallelWalker{
		walker: w,
		sem:    make(chan struct{}, workers),
		emit:   emit,
		errc:   make(chan error, 1),
		cancel: cancel,
	}

	p.wg.Add(1)
	go p.visit(runCtx, w.root, 1)
	p.wg.Wait()

	select {
	case err := <-p.errc:
		return err
	default:
	}
	return ctx.Err()
}

// fatal records the first fatal error and cancels the run; later
// fatals are dropped.
func (p *parallelWalker) fatal(err error) {
	select {
	case p.errc <- err:
		p.cancel()
	default:
	}
}

// fail applies the tolerance policy to a classified error.
func (p *parallelWalker) fail(err error) {
	if !p.tolerate(err) {
		p.fatal(err)
	}
}

// visit lists one directory, emits its children, and spawns visits
// for eligible subdirectories. depth is the depth of the children.
func (p *parallelWalker) visit(ctx context.Context, dir string, depth int) {
	defer p.wg.Done()

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}

	ents, err := readDirents(dir)
	if err != nil {
		<-p.sem
		p.fail(classify(dir, err))
		return
	}

	var subdirs []string
	for _, dirent := range ents {
		if ctx.Err() != nil {
			break
		}
		name := dirent.Name()
		path := filepath.Join(dir, name)
		if p.skips(name, path, dirent.IsDir()) {
			continue
		}

		entry, descend, err := p.examine(path, depth, dirent)
		p.emit(entry)
		if err != nil {
			p.fail(err)
			continue
		}
		if descend {
			subdirs = append(subdirs, path)
		}
	}
	<-p.sem

	for _, sub := range subdirs {
		p.wg.Add(1)
		go p.visit(ctx, sub, depth+1)
	}
}
