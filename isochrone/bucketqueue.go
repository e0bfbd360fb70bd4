package isochrone

// bucketCount is the number of buckets the queue keeps live at once. Costs
// are quantized to bucketSize-wide buckets and hashed into the ring by
// (cost / bucketSize) mod bucketCount; a cost that would land beyond the
// live window is parked in the overflow list (see Add) until a rebase.
const bucketCount = 20000

// DoubleBucketQueue is a bucketed priority queue approximating a min-heap
// in O(1) amortized time: elements sharing a cost bucket are visited
// last-in first-out rather than in strict cost order, which is an acceptable
// approximation once costs are quantized to bucketSize-wide buckets.
//
// It is "double" in the sense of the original design: a small set of
// "overflow" elements whose cost exceeds the current live window are kept
// in their own overflow bucket and only redistributed into the main ring
// each time the current bucket wraps around the ring.
type DoubleBucketQueue struct {
	bucketSize float32
	minCost    float32
	currentBucket int

	buckets  [][]int32 // ring of buckets, each a list of label indices
	overflow []int32

	labelCost func(int32) float32
}

func NewDoubleBucketQueue(minCost, bucketSize float32, labelCost func(int32) float32) *DoubleBucketQueue {
	q := &DoubleBucketQueue{
		bucketSize: bucketSize,
		minCost:    minCost,
		buckets:    make([][]int32, bucketCount),
		labelCost:  labelCost,
	}
	return q
}

func (self *DoubleBucketQueue) bucketIndex(cost float32) int {
	return int((cost - self.minCost) / self.bucketSize)
}

// Add inserts a label index at its current cost. Labels whose bucket would
// fall outside the live ring are parked in the overflow list.
func (self *DoubleBucketQueue) Add(labelIdx int32) {
	cost := self.labelCost(labelIdx)
	idx := self.bucketIndex(cost)
	if idx < self.currentBucket {
		idx = self.currentBucket
	}
	if idx-self.currentBucket >= bucketCount {
		self.overflow = append(self.overflow, labelIdx)
		return
	}
	slot := idx % bucketCount
	self.buckets[slot] = append(self.buckets[slot], labelIdx)
}

// Decrease re-files labelIdx after its cost has dropped (a cheaper path was
// found via Relax). The cost change is always a decrease so the label can
// only move to an earlier or equal bucket; since buckets are unsorted lists
// we simply re-add it and let stale copies be skipped at pop time via the
// caller's status check.
func (self *DoubleBucketQueue) Decrease(labelIdx int32) {
	self.Add(labelIdx)
}

// Pop returns the next label index to settle, or -1 if the queue is empty.
// The caller is responsible for checking whether the label is still the
// live one for its edge (EdgeStatus may have moved past it) and skipping
// stale entries.
func (self *DoubleBucketQueue) Pop() int32 {
	for {
		bucket := self.buckets[self.currentBucket%bucketCount]
		if len(bucket) > 0 {
			idx := bucket[len(bucket)-1]
			self.buckets[self.currentBucket%bucketCount] = bucket[:len(bucket)-1]
			return idx
		}
		self.currentBucket++
		if self.currentBucket%bucketCount == 0 {
			self.rebase()
		}
		if self.empty() {
			return -1
		}
	}
}

func (self *DoubleBucketQueue) empty() bool {
	if len(self.overflow) > 0 {
		return false
	}
	for _, b := range self.buckets {
		if len(b) > 0 {
			return false
		}
	}
	return true
}

// rebase redistributes overflow entries back into the ring once the
// current bucket wraps around, mirroring the reference implementation's
// periodic "empties the overflow bucket" behavior.
func (self *DoubleBucketQueue) rebase() {
	if len(self.overflow) == 0 {
		return
	}
	pending := self.overflow
	self.overflow = nil
	for _, idx := range pending {
		self.Add(idx)
	}
}

func (self *DoubleBucketQueue) Clear() {
	for i := range self.buckets {
		self.buckets[i] = nil
	}
	self.overflow = nil
	self.currentBucket = 0
}
