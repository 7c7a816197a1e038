package eval

import (
	"golang.org/x/exp/rand"

	"github.com/noisebench/noisebench/internal/simulate"
)

// Split partitions ds into train and test sets. The test set holds
// roughly frac of the noise-free rows, chosen uniformly; rows whose label
// was flipped by noise injection are never eligible for test and always
// land in train. Ground truth in the test set is therefore exact even
// when training labels are corrupted.
func Split(ds simulate.Dataset, frac float64, rng *rand.Rand) (train, test simulate.Dataset) {
	var clean []int
	for i, s := range ds {
		if !s.Noisy {
			clean = append(clean, i)
		}
	}
	rng.Shuffle(len(clean), func(i, j int) {
		clean[i], clean[j] = clean[j], clean[i]
	})

	nTest := int(frac*float64(len(clean)) + 0.5)
	if nTest > len(clean) {
		nTest = len(clean)
	}

	inTest := make(map[int]bool, nTest)
	for _, i := range clean[:nTest] {
		inTest[i] = true
	}

	train = make(simulate.Dataset, 0, len(ds)-nTest)
	test = make(simulate.Dataset, 0, nTest)
	for i, s := range ds {
		if inTest[i] {
			test = append(test, s)
		} else {
			train = append(train, s)
		}
	}
	return train, test
}
