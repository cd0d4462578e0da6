package acoustics

import "github.com/san-kum/roomsim/internal/geometry"

// Enumerate generates every virtual source up to maxOrder by breadth-first
// mirror reflection across the six walls, in canonical wall order. Order zero
// is the real source. A reflection across the wall used in the immediately
// preceding bounce is skipped: the mirror is an involution, so such a child
// would collapse back onto its grandparent. With that pruning each order k>0
// contributes 6*5^(k-1) sources.
//
// The result is a flat slice ordered by reflection order, deterministic for
// identical inputs. It is rebuilt on every call; nothing is cached.
func Enumerate(room *geometry.Room, source geometry.Point, maxOrder int) []VirtualSource {
	walls := room.Walls()

	all := make([]VirtualSource, 0, Count(maxOrder))
	all = append(all, VirtualSource{Pos: source})

	frontier := all[:1]
	for order := 1; order <= maxOrder; order++ {
		next := make([]VirtualSource, 0, len(frontier)*(geometry.NumWalls-1)+1)
		for _, parent := range frontier {
			last := -1
			if n := len(parent.Walls); n > 0 {
				last = parent.Walls[n-1]
			}
			for _, w := range walls {
				if w.Index == last {
					continue
				}
				seq := make([]int, len(parent.Walls)+1)
				copy(seq, parent.Walls)
				seq[len(parent.Walls)] = w.Index
				next = append(next, VirtualSource{
					Pos:   room.Reflect(parent.Pos, w),
					Walls: seq,
				})
			}
		}
		all = append(all, next...)
		frontier = next
	}

	return all
}

// Count returns the number of virtual sources Enumerate yields for maxOrder:
// 1 + 6*(5^k - 1)/4. Growth is exponential in the order; callers should keep
// maxOrder small (every step past ~8 multiplies the work by five).
func Count(maxOrder int) int {
	if maxOrder <= 0 {
		return 1
	}
	pow := 1
	for i := 0; i < maxOrder; i++ {
		pow *= 5
	}
	return 1 + 6*(pow-1)/4
}
