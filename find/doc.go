// Package find exposes the scout file-discovery engine: depth-bounded
// sequential and parallel directory traversal with a composable filter
// pipeline and adaptive worker sizing.
//
// Basic usage:
//
//	opts := find.DefaultOptions()
//	opts.MaxDepth = 3
//
//	name, err := find.NewNameFilter("*.go", false)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entries, err := find.Find(context.Background(), ".", opts, name)
//	for _, e := range entries {
//		fmt.Println(e.Path)
//	}
//
// Parallel traversal with streaming results:
//
//	for res := range find.Stream(context.Background(), "/data", opts) {
//		if res.Err != nil {
//			log.Fatal(res.Err)
//		}
//		fmt.Println(res.Entry.Path)
//	}
//
// The sequential walker yields deterministic pre-order; the parallel
// walker yields the same entry set in no particular order. The walk
// root itself is never reported.
package find
