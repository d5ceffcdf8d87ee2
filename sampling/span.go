package sampling

import "fmt"

// Span 是 token 序列上的半开区间 [Start, End)。
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len 返回片段包含的 token 数。
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Overlaps reports whether s and o share at least one token index.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// spanCount 返回长度为 n 的区域内、长度在 [lo, hi] 的片段总数：
// Σ_{L=lo}^{hi} (n-L+1)。
func spanCount(n, lo, hi int) int {
	if hi > n {
		hi = n
	}
	if lo < 1 {
		lo = 1
	}
	if lo > hi {
		return 0
	}
	m := hi - lo + 1
	return m*(n+1) - (lo+hi)*m/2
}

// nthSpan 返回区域 [offset, offset+n) 内第 k 个片段。
// 枚举顺序：先按长度升序，同长度按起点升序。k 必须小于 spanCount(n, lo, hi)。
func nthSpan(offset, n, lo, hi, k int) Span {
	if lo < 1 {
		lo = 1
	}
	for l := lo; l <= hi && l <= n; l++ {
		c := n - l + 1
		if k < c {
			return Span{Start: offset + k, End: offset + k + l}
		}
		k -= c
	}
	panic(fmt.Sprintf("sampling: span index out of range (n=%d, lo=%d, hi=%d)", n, lo, hi))
}

// drawSpan 在区域 [offset, offset+n) 内均匀抽取一个长度在 [lo, hi] 的片段。
// 调用方保证区域内至少存在一个合法片段。
func drawSpan(r RandSource, offset, n, lo, hi int) Span {
	return nthSpan(offset, n, lo, hi, r.Intn(spanCount(n, lo, hi)))
}

// adjacentStarts 返回长度为 l 的锚点中，左侧或右侧至少剩 m 个 token 的起点个数，
// 以及其中位于左段的个数。左段起点为 [0, left)，右段起点为 [m, m+count-left)；
// 两段相接时 left == count，全部起点都可行。
func adjacentStarts(n, l, m int) (count, left int) {
	last := n - l
	if last < 0 {
		return 0, 0
	}
	left = max(last-m+1, 0)
	if left >= m {
		return last + 1, last + 1
	}
	return 2 * left, left
}

// adjacentAnchorCount 返回区域 [0, n) 内至少一侧能放下长度 lo 片段的锚点总数。
func adjacentAnchorCount(n, lo, hi int) int {
	total := 0
	for l := max(lo, 1); l <= hi && l <= n; l++ {
		c, _ := adjacentStarts(n, l, lo)
		total += c
	}
	return total
}

// nthAdjacentAnchor 返回第 k 个可容纳相邻正样本的锚点，枚举顺序同 nthSpan。
func nthAdjacentAnchor(n, lo, hi, k int) Span {
	for l := max(lo, 1); l <= hi && l <= n; l++ {
		c, left := adjacentStarts(n, l, lo)
		if k < c {
			start := k
			if k >= left {
				start = lo + k - left
			}
			return Span{Start: start, End: start + l}
		}
		k -= c
	}
	panic(fmt.Sprintf("sampling: adjacent anchor index out of range (n=%d, lo=%d, hi=%d)", n, lo, hi))
}
