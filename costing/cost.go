package costing

// Cost pairs the two quantities the expanders carry at every label: the
// weighted cost used for ordering and pruning, and the true elapsed seconds
// used for the horizon cutoff and the grid write.
type Cost struct {
	Seconds      float32
	WeightedCost float32
}

func (self Cost) Add(other Cost) Cost {
	return Cost{
		Seconds:      self.Seconds + other.Seconds,
		WeightedCost: self.WeightedCost + other.WeightedCost,
	}
}

var ZeroCost = Cost{}
