package microlens

import "golang.org/x/sync/errgroup"

// fanoutDepth is the number of quadtree levels that fork goroutines so that
// at least workers subtrees run concurrently.
func fanoutDepth(workers int) int {
	d := 0
	for n := 1; n < workers; n *= 4 {
		d++
	}
	return d
}

// fork searches the four children concurrently. Each child owns its
// accumulator and terminal list; they are merged in quadrant order once all
// four are done, so the output matches a sequential walk.
func (w *walker) fork(children [4]node) {
	var subs [4]*walker
	var g errgroup.Group
	for i, c := range children {
		sub := &walker{
			field:  w.field,
			source: w.source,
			stats:  NewLevelStats(),
			fanout: w.fanout,
		}
		subs[i] = sub
		g.Go(func() error {
			sub.search(c)
			return nil
		})
	}
	_ = g.Wait()

	for _, sub := range subs {
		w.stats.Merge(sub.stats)
		w.terminals = append(w.terminals, sub.terminals...)
	}
}
